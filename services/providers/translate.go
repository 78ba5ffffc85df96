package providers

import "encoding/json"

// defaultFinishReason is substituted whenever the upstream response carries
// no usable finish reason.
const defaultFinishReason = "STOP"

// ChatMessage is a single message in the chat-completion wire format used by
// the translated providers.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completion is the canonical view of an upstream completion: the generated
// text and the reason the model stopped.
type Completion struct {
	Text         string
	FinishReason string
}

// CandidateResponse is the canonical response shape: exactly one candidate
// wrapping the generated text.
type CandidateResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// Candidate pairs generated content with a finish reason.
type Candidate struct {
	Content      Turn   `json:"content"`
	FinishReason string `json:"finishReason"`
}

// chatResponse is the subset of a chat-completion response the relay reads.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// ToChatMessages converts canonical turns to chat-completion messages.
// The "model" role maps to "assistant", every other role to "user"; the first
// text part of each turn becomes the message content, an empty string when
// the turn has no parts. Order is preserved.
func ToChatMessages(contents []Turn) []ChatMessage {
	messages := make([]ChatMessage, 0, len(contents))
	for _, turn := range contents {
		role := "user"
		if turn.Role == "model" {
			role = "assistant"
		}

		text := ""
		if len(turn.Parts) > 0 {
			text = turn.Parts[0].Text
		}

		messages = append(messages, ChatMessage{Role: role, Content: text})
	}
	return messages
}

// FromChatResponse reads the first choice of a chat-completion response body.
// Upstream response shapes vary, so every missing or malformed path degrades
// to an empty text and a "STOP" finish reason instead of failing.
func FromChatResponse(body []byte) Completion {
	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.Choices) == 0 {
		return Completion{FinishReason: defaultFinishReason}
	}

	choice := resp.Choices[0]
	finish := choice.FinishReason
	if finish == "" {
		finish = defaultFinishReason
	}

	return Completion{Text: choice.Message.Content, FinishReason: finish}
}

// CandidateResponse wraps the completion as the canonical single candidate.
func (c Completion) CandidateResponse() CandidateResponse {
	return CandidateResponse{
		Candidates: []Candidate{
			{
				Content: Turn{
					Role:  "model",
					Parts: []Part{{Text: c.Text}},
				},
				FinishReason: c.FinishReason,
			},
		},
	}
}
