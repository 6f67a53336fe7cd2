package llama

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sashabaranov/go-openai"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/interfaces"
	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
	"github.com/NandhaKishorM/electron-app-heart/pkg/utils/logging"
)

var _ interfaces.Generator = (*Client)(nil)

// Generate sends messages to /v1/chat/completions and returns the first
// choice. Image parts are sent as base64 data URIs.
func (c *Client) Generate(ctx context.Context, messages []model.Message, opts model.GenerateOptions) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:     c.model,
		Messages:  toChatMessages(messages),
		MaxTokens: opts.MaxTokens,
		TopP:      float32(opts.TopP),
		Stop:      opts.Stop,
	}
	// temperature is omitted by the OpenAI schema when zero
	ctx = withExtensions(ctx, map[string]any{
		"temperature":    opts.Temperature,
		"repeat_penalty": opts.RepeatPenalty,
		"stream":         false,
	})

	logging.From(ctx).Debug("sending chat completion",
		"messages", len(messages),
		"max_tokens", opts.MaxTokens,
		"temperature", opts.Temperature)

	resp, err := c.chat.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", c.generationError(err, "/v1/chat/completions")
	}
	if len(resp.Choices) == 0 {
		return "", goerr.Wrap(model.ErrGeneration, "no choices in response",
			goerr.V("endpoint", "/v1/chat/completions"))
	}
	return resp.Choices[0].Message.Content, nil
}

func toChatMessages(messages []model.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		msg := openai.ChatCompletionMessage{Role: string(m.Role)}
		if !m.HasImage() {
			for i, p := range m.Parts {
				if i > 0 {
					msg.Content += "\n"
				}
				msg.Content += p.Text
			}
			out = append(out, msg)
			continue
		}

		for _, p := range m.Parts {
			switch p.Type {
			case model.PartTypeImage:
				msg.MultiContent = append(msg.MultiContent, openai.ChatMessagePart{
					Type:     openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{URL: p.DataURI()},
				})
			default:
				msg.MultiContent = append(msg.MultiContent, openai.ChatMessagePart{
					Type: openai.ChatMessagePartTypeText,
					Text: p.Text,
				})
			}
		}
		out = append(out, msg)
	}
	return out
}
