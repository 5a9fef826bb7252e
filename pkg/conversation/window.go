package conversation

import (
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/constant"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/entity"
	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/pkg/llm"
)

// WindowSize bounds the server-side conversational memory: only the most
// recent turns are replayed into each prompt. Older messages stay stored but
// fall out of model context.
const WindowSize = 6

// Window maps stored chat messages, given newest first, into provider
// messages in chronological order, keeping at most WindowSize of the most
// recent ones.
func Window(newestFirst []*entity.ChatMessage) []llm.Message {
	if len(newestFirst) > WindowSize {
		newestFirst = newestFirst[:WindowSize]
	}

	messages := make([]llm.Message, 0, len(newestFirst))
	for i := len(newestFirst) - 1; i >= 0; i-- {
		role := constant.ChatMessageRoleUser
		if newestFirst[i].Role == constant.ChatMessageRoleAI {
			role = constant.ChatMessageRoleAssistant
		}
		messages = append(messages, llm.Message{
			Role:    role,
			Content: newestFirst[i].Content,
		})
	}
	return messages
}
