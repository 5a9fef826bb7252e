package conversation

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/entity"
)

// storedMessages builds n alternating user/ai messages, newest first, with
// content "msg-0" being the oldest.
func storedMessages(n int) []*entity.ChatMessage {
	messages := make([]*entity.ChatMessage, 0, n)
	base := time.Now()
	for i := n - 1; i >= 0; i-- {
		role := "user"
		if i%2 == 1 {
			role = "ai"
		}
		messages = append(messages, &entity.ChatMessage{
			Id:         uuid.New(),
			DocumentId: uuid.New(),
			Role:       role,
			Content:    fmt.Sprintf("msg-%d", i),
			CreatedAt:  base.Add(time.Duration(i) * time.Second),
		})
	}
	return messages
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name      string
		stored    int
		wantLen   int
		wantFirst string
		wantLast  string
	}{
		{name: "empty history", stored: 0, wantLen: 0},
		{name: "below window size", stored: 3, wantLen: 3, wantFirst: "msg-0", wantLast: "msg-2"},
		{name: "exactly window size", stored: 6, wantLen: 6, wantFirst: "msg-0", wantLast: "msg-5"},
		{name: "above window size keeps newest", stored: 8, wantLen: 6, wantFirst: "msg-2", wantLast: "msg-7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Window(storedMessages(tt.stored))

			assert.Len(t, got, tt.wantLen)
			if tt.wantLen == 0 {
				return
			}
			assert.Equal(t, tt.wantFirst, got[0].Content)
			assert.Equal(t, tt.wantLast, got[len(got)-1].Content)
		})
	}
}

func TestWindowMapsRoles(t *testing.T) {
	stored := []*entity.ChatMessage{
		{Role: "ai", Content: "answer"},
		{Role: "user", Content: "question"},
	}

	got := Window(stored)

	assert.Equal(t, "user", got[0].Role)
	assert.Equal(t, "question", got[0].Content)
	assert.Equal(t, "assistant", got[1].Role)
	assert.Equal(t, "answer", got[1].Content)
}

func TestBuildMessages(t *testing.T) {
	stored := storedMessages(2)

	got := BuildMessages("the document text", stored, "what about chapter 2?")

	assert.Len(t, got, 5)
	assert.Equal(t, "system", got[0].Role)
	assert.Equal(t, SystemPrompt, got[0].Content)
	assert.Equal(t, "user", got[1].Role)
	assert.Equal(t, "Document Content:\nthe document text", got[1].Content)
	assert.Equal(t, "msg-0", got[2].Content)
	assert.Equal(t, "msg-1", got[3].Content)
	assert.Equal(t, "what about chapter 2?", got[4].Content)
}

func TestBuildMessagesTruncatesDocument(t *testing.T) {
	long := make([]byte, MaxDocumentChars+512)
	for i := range long {
		long[i] = 'a'
	}

	got := BuildMessages(string(long), nil, "q")

	assert.Len(t, got[1].Content, len("Document Content:\n")+MaxDocumentChars)
}
