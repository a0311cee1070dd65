package models

type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

// ChatMessage is one turn of a wellness conversation. It lives only in
// memory for the length of a chat session.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Text    string   `json:"text"`
	IsError bool     `json:"isError,omitempty"`
}
