package dto

// ChatRequest is a free-text question for the assistant.
type ChatRequest struct {
	UserID   uint   `json:"user_id"`
	Question string `json:"question"`
}

// ChatResponse is a templated natural-language answer plus the raw supporting
// data the answer was built from.
type ChatResponse struct {
	Answer string      `json:"answer"`
	Data   interface{} `json:"data,omitempty"`
}
