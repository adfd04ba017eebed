package domain

type SpeakRequest struct {
	Text string `json:"text"`
}
