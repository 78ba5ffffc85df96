package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToChatMessages(t *testing.T) {
	tests := []struct {
		name     string
		contents []Turn
		want     []ChatMessage
	}{
		{
			name:     "empty conversation",
			contents: nil,
			want:     []ChatMessage{},
		},
		{
			name: "model role maps to assistant",
			contents: []Turn{
				{Role: "model", Parts: []Part{{Text: "hello"}}},
			},
			want: []ChatMessage{
				{Role: "assistant", Content: "hello"},
			},
		},
		{
			name: "user role maps to user",
			contents: []Turn{
				{Role: "user", Parts: []Part{{Text: "hi"}}},
			},
			want: []ChatMessage{
				{Role: "user", Content: "hi"},
			},
		},
		{
			name: "unknown role maps to user",
			contents: []Turn{
				{Role: "system", Parts: []Part{{Text: "be nice"}}},
				{Role: "", Parts: []Part{{Text: "anything"}}},
			},
			want: []ChatMessage{
				{Role: "user", Content: "be nice"},
				{Role: "user", Content: "anything"},
			},
		},
		{
			name: "turn without parts becomes empty content",
			contents: []Turn{
				{Role: "user"},
			},
			want: []ChatMessage{
				{Role: "user", Content: ""},
			},
		},
		{
			name: "only first part is used",
			contents: []Turn{
				{Role: "user", Parts: []Part{{Text: "first"}, {Text: "second"}}},
			},
			want: []ChatMessage{
				{Role: "user", Content: "first"},
			},
		},
		{
			name: "order is preserved",
			contents: []Turn{
				{Role: "user", Parts: []Part{{Text: "one"}}},
				{Role: "model", Parts: []Part{{Text: "two"}}},
				{Role: "user", Parts: []Part{{Text: "three"}}},
			},
			want: []ChatMessage{
				{Role: "user", Content: "one"},
				{Role: "assistant", Content: "two"},
				{Role: "user", Content: "three"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToChatMessages(tt.contents))
		})
	}
}

func TestFromChatResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Completion
	}{
		{
			name: "complete response",
			body: `{"choices":[{"message":{"content":"hello"},"finish_reason":"length"}]}`,
			want: Completion{Text: "hello", FinishReason: "length"},
		},
		{
			name: "empty choices degrade to defaults",
			body: `{"choices":[]}`,
			want: Completion{Text: "", FinishReason: "STOP"},
		},
		{
			name: "missing choices degrade to defaults",
			body: `{}`,
			want: Completion{Text: "", FinishReason: "STOP"},
		},
		{
			name: "missing message content degrades to empty text",
			body: `{"choices":[{"finish_reason":"stop"}]}`,
			want: Completion{Text: "", FinishReason: "stop"},
		},
		{
			name: "missing finish reason degrades to STOP",
			body: `{"choices":[{"message":{"content":"hi"}}]}`,
			want: Completion{Text: "hi", FinishReason: "STOP"},
		},
		{
			name: "malformed JSON degrades to defaults",
			body: `not json at all`,
			want: Completion{Text: "", FinishReason: "STOP"},
		},
		{
			name: "wrong shape degrades to defaults",
			body: `{"choices":"surprise"}`,
			want: Completion{Text: "", FinishReason: "STOP"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromChatResponse([]byte(tt.body)))
		})
	}
}

func TestCompletion_CandidateResponse(t *testing.T) {
	resp := Completion{Text: "generated", FinishReason: "STOP"}.CandidateResponse()

	assert.Len(t, resp.Candidates, 1)
	assert.Equal(t, "model", resp.Candidates[0].Content.Role)
	assert.Equal(t, []Part{{Text: "generated"}}, resp.Candidates[0].Content.Parts)
	assert.Equal(t, "STOP", resp.Candidates[0].FinishReason)
}

func TestCompletion_CandidateResponse_EmptyCompletion(t *testing.T) {
	// An empty upstream completion still yields one candidate with empty text.
	resp := Completion{FinishReason: "STOP"}.CandidateResponse()

	assert.Len(t, resp.Candidates, 1)
	assert.Equal(t, "", resp.Candidates[0].Content.Parts[0].Text)
}
