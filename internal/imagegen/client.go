package imagegen

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// pictureModel is the Gemini model with image output enabled.
const pictureModel = "gemini-2.0-flash-preview-image-generation"

// Client generates pictures from text prompts through the Gemini API.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	model := client.GenerativeModel(pictureModel)

	return &Client{
		client: client,
		model:  model,
	}, nil
}

// GeneratePicture returns the raw image bytes for the prompt.
func (c *Client) GeneratePicture(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response from image model")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if blob, ok := part.(genai.Blob); ok && len(blob.Data) > 0 {
			return blob.Data, nil
		}
	}

	return nil, fmt.Errorf("no image content in response")
}

func (c *Client) Close() {
	c.client.Close()
}
