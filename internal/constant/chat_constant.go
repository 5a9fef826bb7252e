package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAI        = "ai"
	ChatMessageRoleSystem    = "system"
	ChatMessageRoleAssistant = "assistant"
)
