package model

import "encoding/base64"

// Role is the author of a message
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// PartType is the kind of a message content part
type PartType string

const (
	PartTypeText  PartType = "text"
	PartTypeImage PartType = "image"
)

// ContentPart is one typed piece of message content.
type ContentPart struct {
	Type     PartType
	Text     string
	MIMEType string
	Data     []byte
}

// TextPart returns a text content part.
func TextPart(text string) ContentPart {
	return ContentPart{Type: PartTypeText, Text: text}
}

// ImagePart returns an image content part.
func ImagePart(mimeType string, data []byte) ContentPart {
	return ContentPart{Type: PartTypeImage, MIMEType: mimeType, Data: data}
}

// Base64 returns the image data base64 encoded.
func (p ContentPart) Base64() string {
	return base64.StdEncoding.EncodeToString(p.Data)
}

// DataURI returns the image as a data URI.
func (p ContentPart) DataURI() string {
	return "data:" + p.MIMEType + ";base64," + p.Base64()
}

// Message is one role-tagged turn sent to the generation backend.
type Message struct {
	Role  Role
	Parts []ContentPart
}

// UserMessage builds a single user turn from parts.
func UserMessage(parts ...ContentPart) Message {
	return Message{Role: RoleUser, Parts: parts}
}

// HasImage reports whether any part is an image.
func (m Message) HasImage() bool {
	for _, p := range m.Parts {
		if p.Type == PartTypeImage {
			return true
		}
	}
	return false
}

// DefaultTopP and DefaultStopSequences are sent with every generation request.
const DefaultTopP = 0.9

var DefaultStopSequences = []string{"<end_of_turn>", "<eos>", "\n\n\n"}

// GenerateOptions are the sampling parameters of one generation call.
type GenerateOptions struct {
	MaxTokens     int
	Temperature   float64
	TopP          float64
	RepeatPenalty float64
	Stop          []string
}

// NewGenerateOptions derives request options from resolved settings.
func NewGenerateOptions(s GenerationSettings) GenerateOptions {
	stop := make([]string, len(DefaultStopSequences))
	copy(stop, DefaultStopSequences)
	return GenerateOptions{
		MaxTokens:     s.MaxTokens,
		Temperature:   s.Temperature,
		TopP:          DefaultTopP,
		RepeatPenalty: s.RepeatPenalty,
		Stop:          stop,
	}
}
