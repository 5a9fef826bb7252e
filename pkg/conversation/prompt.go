package conversation

import (
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/constant"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/entity"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/pkg/llm"
)

const (
	// SystemPrompt frames every chat turn before any document context.
	SystemPrompt = "You are a professional document assistant."

	// MaxDocumentChars caps how much of the analyzed text is inlined into the
	// prompt so oversized documents cannot blow past the model's context.
	MaxDocumentChars = 120000
)

// BuildMessages assembles the full provider message list for one chat turn:
// the system prompt, the document text as grounding context, the recent
// conversation window and finally the current query.
func BuildMessages(fullText string, newestFirst []*entity.ChatMessage, query string) []llm.Message {
	if len(fullText) > MaxDocumentChars {
		fullText = fullText[:MaxDocumentChars]
	}

	history := Window(newestFirst)

	messages := make([]llm.Message, 0, len(history)+3)
	messages = append(messages, llm.Message{Role: constant.ChatMessageRoleSystem, Content: SystemPrompt})
	messages = append(messages, llm.Message{Role: constant.ChatMessageRoleUser, Content: "Document Content:\n" + fullText})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: constant.ChatMessageRoleUser, Content: query})
	return messages
}
