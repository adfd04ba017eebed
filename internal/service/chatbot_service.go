package service

import (
	"strings"
	"unicode"

	"github.com/vsingh-08/NetraAI/internal/domain"
)

const defaultChatResponse = "I'm here to help with cab booking, license plate detection, and navigation. " +
	"Try asking 'What does this app do?' or 'Help me' for more information."

// Minimum pattern words that must appear in a query for the keyword
// fallback to accept a rule.
const minKeywordMatches = 2

// chatRules is scanned in order; the first match wins.
var chatRules = []domain.ChatRule{
	{Pattern: "where is my cab", Response: "Your cab should arrive in 2-3 minutes. Please wait at the pickup location."},
	{Pattern: "what does this app do", Response: "Netra AI helps visually impaired users book cabs, detect license plates, navigate, and get assistance through voice commands."},
	{Pattern: "help me", Response: "I can help you with: booking a cab, scanning license plates, navigation, or answering questions. Just ask!"},
	{Pattern: "how to book cab", Response: "Say \"Book a cab\" or tap the Book Ride button. I will generate a cab booking for you."},
	{Pattern: "how to scan plate", Response: "Say \"Scan license plate\" or tap the Scan Plate button to open the camera and detect license plates."},
	{Pattern: "navigation help", Response: "Use the Navigate button to get voice-guided directions to your destination."},
	{Pattern: "app features", Response: "Key features include voice commands, cab booking, license plate detection, navigation, and AI assistance."},
	{Pattern: "emergency", Response: "For emergencies, please contact local emergency services immediately. This app provides mobility assistance only."},
	{Pattern: "voice commands", Response: "Available commands: \"Book a cab\", \"Scan license plate\", \"Navigate me\", \"Help me\", \"Where is my cab\""},
}

// ChatbotService answers queries from a fixed, ordered rule table.
type ChatbotService struct {
	rules []domain.ChatRule
}

func NewChatbotService() *ChatbotService {
	return &ChatbotService{rules: chatRules}
}

// Reply normalizes the query and returns the first matching rule's response
// along with the normalized query. A rule matches when its pattern appears
// verbatim in the query, or, failing that for every rule, when enough of its
// pattern words do ("How do I book a cab" still reaches the booking rule).
// Queries matching nothing get a fixed default response.
func (s *ChatbotService) Reply(query string) (string, string) {
	normalized := strings.ToLower(strings.TrimSpace(query))

	for _, rule := range s.rules {
		if strings.Contains(normalized, rule.Pattern) {
			return rule.Response, normalized
		}
	}

	if response, ok := s.keywordMatch(normalized); ok {
		return response, normalized
	}

	return defaultChatResponse, normalized
}

// keywordMatch scores each rule by how many of its pattern words occur in
// the query and returns the first rule with the highest score, provided at
// least minKeywordMatches words matched.
func (s *ChatbotService) keywordMatch(query string) (string, bool) {
	queryWords := wordSet(query)

	bestScore := 0
	bestResponse := ""
	for _, rule := range s.rules {
		score := 0
		for _, w := range splitWords(rule.Pattern) {
			if queryWords[w] {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			bestResponse = rule.Response
		}
	}

	if bestScore < minKeywordMatches {
		return "", false
	}
	return bestResponse, true
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range splitWords(s) {
		set[w] = true
	}
	return set
}
