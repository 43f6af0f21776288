package core

import "context"

// Blob carries raw media bytes for multimodal requests.
type Blob struct {
	MIMEType string
	Data     []byte
}

// Part is one segment of a request payload: either text or inline media.
type Part struct {
	Text       string
	InlineData *Blob
}

// TextPart wraps a string as a request part.
func TextPart(s string) Part {
	return Part{Text: s}
}

// MediaPart wraps media bytes as a request part.
func MediaPart(mimeType string, data []byte) Part {
	return Part{InlineData: &Blob{MIMEType: mimeType, Data: data}}
}

// Request is a single-turn generation request against one concrete model.
type Request struct {
	Model           string
	SystemPrompt    string
	Parts           []Part
	JSONOutput      bool
	Temperature     float64
	MaxOutputTokens int
}

// Client is a provider-specific generation backend.
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
}
