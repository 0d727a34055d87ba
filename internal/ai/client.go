// Package ai wraps the hosted OpenAI services used by the chat assistant:
// chat completions for replies and the embeddings endpoint for ingestion
// and query vectors.
package ai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/smartlink-app/smartlink/internal/logger"
)

// Client calls the hosted chat-completion and embedding services. Errors are
// propagated to the caller unchanged; no retry happens at this layer.
type Client struct {
	client         *openai.Client
	chatModel      string
	embeddingModel string
	temperature    float32
}

// NewClient builds a Client for the given API key and models. The embedding
// model must stay fixed across ingestion and querying, otherwise stored
// vectors and query vectors stop being comparable.
func NewClient(apiKey, chatModel, embeddingModel string, temperature float32) *Client {
	return &Client{
		client:         openai.NewClient(apiKey),
		chatModel:      chatModel,
		embeddingModel: embeddingModel,
		temperature:    temperature,
	}
}

// Complete sends the prompt as the sole user message and returns the model's
// text reply verbatim. An empty response from the API yields an empty string.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.chatModel,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}

	logger.Debug("chat completion generated",
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)

	return resp.Choices[0].Message.Content, nil
}

// Embed returns the embedding vector for the given text. The vector length
// is fixed per embedding model.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(c.embeddingModel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("embedding response contained no data")
	}

	return resp.Data[0].Embedding, nil
}
