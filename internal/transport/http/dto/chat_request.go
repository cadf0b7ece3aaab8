package dto

import "strings"

// ChatMessage is one entry of the client-side transcript forwarded for
// context.
type ChatMessage struct {
	Content string `json:"content"`
	IsUser  bool   `json:"isUser"`
}

type ChatRequest struct {
	Message string        `json:"message" validate:"required"`
	History []ChatMessage `json:"history"`
}

func (r *ChatRequest) Validate() error {
	r.Message = strings.TrimSpace(r.Message)
	return validateStruct(r)
}

// TrimHistory keeps only the most recent n messages.
func (r *ChatRequest) TrimHistory(n int) {
	if n > 0 && len(r.History) > n {
		r.History = r.History[len(r.History)-n:]
	}
}
