package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultOpenAIEmbedModel = openai.EmbeddingModelTextEmbedding3Small

type openAIEmbedder struct {
	client *openai.Client
	model  string
}

func NewOpenAIEmbedder(apiKey, model string) (Embedder, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultOpenAIEmbedModel
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	return &openAIEmbedder{
		client: &client,
		model:  model,
	}, nil
}

// Embed implements Embedder.
func (o *openAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	// The API rejects empty input.
	if strings.TrimSpace(text) == "" {
		text = " "
	}

	resp, err := o.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfString: openai.String(text)},
		Model: o.model,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if resp == nil || len(resp.Data) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	values := resp.Data[0].Embedding
	vector := make([]float32, len(values))
	for i, v := range values {
		vector[i] = float32(v)
	}

	return vector, nil
}

func (o *openAIEmbedder) Name() string {
	return ProviderOpenAI + "/" + o.model
}
