package types

// ChatMessage is a single turn in a conversation. HTML carries the rendered
// form of assistant replies for the chat page; user turns leave it empty.
type ChatMessage struct {
	ID      string `json:"id"`
	Role    string `json:"role"`
	Content string `json:"content"`
	HTML    string `json:"html,omitempty"`
}
