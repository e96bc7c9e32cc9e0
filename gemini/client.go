// Package gemini wraps the hosted Gemini image-editing model behind a small
// client. The rest of the system only sees EditImage: image bytes in, PNG
// bytes out, or an error it can classify.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// DefaultModel is the image-capable Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash-image"

type Client struct {
	client *genai.Client
	model  string
	log    *zap.SugaredLogger
}

// NewClient builds a Gemini client for the given API key. An empty model
// selects DefaultModel.
func NewClient(ctx context.Context, apiKey, model string, log *zap.SugaredLogger) (*Client, error) {
	if model == "" {
		model = DefaultModel
	}

	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{client: c, model: model, log: log}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// EditImage sends one request carrying the source image and the instruction,
// and returns the bytes of the first inline-image part of the response.
// Regardless of the input media type, the returned bytes are PNG.
//
// Returns ErrNoImage when the model answers without any image-bearing part.
// There is no client-side cancellation or retry beyond ctx; one call, one
// settlement.
func (c *Client) EditImage(ctx context.Context, image []byte, mimeType, instruction string) ([]byte, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(instruction),
		genai.NewPartFromBytes(image, mimeType),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	// First inline-image part wins; remaining parts are ignored.
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				c.log.Debugw("edit produced image",
					"model", c.model,
					"mime", part.InlineData.MIMEType,
					"bytes", len(part.InlineData.Data))
				return part.InlineData.Data, nil
			}
		}
	}

	return nil, ErrNoImage
}

// Disabled stands in for the editor when no API key is configured. The auth
// gate rejects edits before the editor is reached; this is the backstop.
type Disabled struct{}

func (Disabled) EditImage(ctx context.Context, image []byte, mimeType, instruction string) ([]byte, error) {
	return nil, errors.New("no API key configured")
}
