package domain

type ChatRequest struct {
	Query string `json:"query"`
}

type ChatResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
	Query    string `json:"query"`
}

// ChatRule maps a keyword pattern to its canned response. Rules are kept in
// a slice so match order stays stable.
type ChatRule struct {
	Pattern  string
	Response string
}
