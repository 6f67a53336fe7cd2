package llama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/interfaces"
	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
	"github.com/NandhaKishorM/electron-app-heart/pkg/utils/safe"
)

// ImageData is one image referenced from a /completion prompt as [img-ID].
type ImageData struct {
	Data string `json:"data"`
	ID   int    `json:"id"`
}

type completionRequest struct {
	Prompt        string      `json:"prompt"`
	ImageData     []ImageData `json:"image_data,omitempty"`
	NPredict      int         `json:"n_predict"`
	Temperature   float64     `json:"temperature"`
	TopP          float64     `json:"top_p"`
	RepeatPenalty float64     `json:"repeat_penalty"`
	Stop          []string    `json:"stop,omitempty"`
	Stream        bool        `json:"stream"`
}

type completionResponse struct {
	Content string          `json:"content"`
	Error   json.RawMessage `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
}

// Complete calls the native /completion endpoint with a raw prompt and
// base64 images referenced as [img-N] placeholders.
func (c *Client) Complete(ctx context.Context, prompt string, images []ImageData, opts model.GenerateOptions) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(completionRequest{
		Prompt:        prompt,
		ImageData:     images,
		NPredict:      opts.MaxTokens,
		Temperature:   opts.Temperature,
		TopP:          opts.TopP,
		RepeatPenalty: opts.RepeatPenalty,
		Stop:          opts.Stop,
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to encode completion request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/completion", bytes.NewReader(payload))
	if err != nil {
		return "", goerr.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return "", c.generationError(err, "/completion")
	}
	defer safe.Close(ctx, resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", c.generationError(err, "/completion")
	}

	var out completionResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", goerr.Wrap(model.ErrGeneration, "failed to parse response: "+err.Error(),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", truncateBody(body)))
	}
	if len(out.Error) > 0 && string(out.Error) != "null" {
		msg := string(out.Error)
		var e apiError
		if json.Unmarshal(out.Error, &e) == nil && e.Message != "" {
			msg = e.Message
		}
		return "", goerr.Wrap(model.ErrGeneration, "LlamaServer API error: "+msg,
			goerr.V("status", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return "", goerr.Wrap(model.ErrGeneration, "unexpected status",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", truncateBody(body)))
	}
	return out.Content, nil
}

// CompletionGenerator renders messages into a Gemma chat prompt and sends
// it through /completion, with images passed as image_data.
type CompletionGenerator struct {
	client *Client
}

var _ interfaces.Generator = (*CompletionGenerator)(nil)

// NewCompletionGenerator wraps client.
func NewCompletionGenerator(client *Client) *CompletionGenerator {
	return &CompletionGenerator{client: client}
}

func (g *CompletionGenerator) Generate(ctx context.Context, messages []model.Message, opts model.GenerateOptions) (string, error) {
	prompt, images := RenderPrompt(messages)
	return g.client.Complete(ctx, prompt, images, opts)
}

// RenderPrompt formats messages with Gemma turn markers. Every image part
// becomes an [img-N] placeholder and an ImageData entry with the same N.
func RenderPrompt(messages []model.Message) (string, []ImageData) {
	var sb strings.Builder
	var images []ImageData
	for _, m := range messages {
		role := "user"
		if m.Role == model.RoleAssistant {
			role = "model"
		}
		sb.WriteString("<start_of_turn>" + role + "\n")
		for i, p := range m.Parts {
			if i > 0 {
				sb.WriteString("\n")
			}
			if p.Type == model.PartTypeImage {
				id := len(images)
				images = append(images, ImageData{Data: p.Base64(), ID: id})
				fmt.Fprintf(&sb, "[img-%d]", id)
				continue
			}
			sb.WriteString(p.Text)
		}
		sb.WriteString("<end_of_turn>\n")
	}
	sb.WriteString("<start_of_turn>model\n")
	return sb.String(), images
}

func truncateBody(body []byte) string {
	const limit = 500
	if len(body) > limit {
		return string(body[:limit])
	}
	return string(body)
}
