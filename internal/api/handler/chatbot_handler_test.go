package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakeResponder struct{}

func (fakeResponder) Reply(query string) (string, string) {
	return "canned response", "normalized " + query
}

func TestChat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/chatbot", NewChatbotHandler(fakeResponder{}).Chat)

	w := postJSON(t, r, "/chatbot", `{"query": "Hello"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["success"] != true {
		t.Errorf("success = %v", body["success"])
	}
	if body["response"] != "canned response" {
		t.Errorf("response = %v", body["response"])
	}
	if body["query"] != "normalized Hello" {
		t.Errorf("query = %v", body["query"])
	}
}

func TestChat_MissingQueryStillAnswers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/chatbot", NewChatbotHandler(fakeResponder{}).Chat)

	w := postJSON(t, r, "/chatbot", `{}`)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, expected 200", w.Code)
	}
}
