package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/smartlink-app/smartlink/internal/logger"
	"github.com/smartlink-app/smartlink/internal/models"
	"github.com/smartlink-app/smartlink/internal/repository"
	"github.com/smartlink-app/smartlink/internal/retrieval"
)

// Embedder produces a fixed-length vector for a text. The same model must be
// used at ingestion and at query time.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Completer sends one prompt to the hosted chat model and returns its reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// contextPromptTemplate grounds the reply in the best-matching ingested text.
const contextPromptTemplate = `You are an AI assistant for SmartLink, a link management platform. Using the context below, answer the user's question helpfully and concisely.

Context: %s

User Question: %s

Please provide a helpful response:`

// genericPromptTemplate is used when the user has no ingested documents.
const genericPromptTemplate = `You are an AI assistant for SmartLink, a powerful link management and analytics platform.

The user asked: %s

Please provide a helpful, friendly response. If asked about link analytics, suggest they create more links to get better insights. If asked about features, mention link shortening, QR codes, custom domains, and advanced analytics.

Response:`

// ChatService answers user questions, grounding replies in the single most
// relevant ingested document when any exist.
type ChatService struct {
	embeddingRepo repository.EmbeddingRepository
	embedder      Embedder
	completer     Completer
}

// NewChatService creates and returns a new instance of ChatService.
func NewChatService(embeddingRepo repository.EmbeddingRepository, embedder Embedder, completer Completer) *ChatService {
	return &ChatService{
		embeddingRepo: embeddingRepo,
		embedder:      embedder,
		completer:     completer,
	}
}

// Chat produces a reply for the user's message. All of the user's stored
// documents are scanned; the one with the highest dot-product similarity to
// the query embedding is spliced into the prompt. With no documents the
// generic prompt is used and no embedding call is made. Embedding or
// completion failures propagate; there is no fallback to the generic prompt
// once documents were found.
func (s *ChatService) Chat(ctx context.Context, userID uint, message string) (string, error) {
	docs, err := s.embeddingRepo.GetEmbeddingsByUser(userID)
	if err != nil {
		return "", err
	}

	var prompt string
	if len(docs) > 0 {
		queryVec, err := s.embedder.Embed(ctx, message)
		if err != nil {
			return "", fmt.Errorf("failed to embed query: %w", err)
		}

		index := retrieval.NewLinearIndex(nil)
		for _, doc := range docs {
			index.Add(retrieval.Document{ID: doc.ID, Text: doc.Text, Vector: doc.Vector})
		}

		best, _ := index.Best(queryVec)
		prompt = fmt.Sprintf(contextPromptTemplate, best.Text, message)

		logger.Debug("chat context selected",
			zap.Uint("user_id", userID),
			zap.Uint("document_id", best.ID),
			zap.Int("candidates", index.Len()))
	} else {
		prompt = fmt.Sprintf(genericPromptTemplate, message)
	}

	reply, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to complete chat: %w", err)
	}
	return reply, nil
}

// Ingest embeds the text and stores it for later retrieval. Ingesting the
// same text twice creates two independent documents; duplicates are accepted
// on purpose.
func (s *ChatService) Ingest(ctx context.Context, userID uint, text string) (*models.Embedding, error) {
	vector, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to embed text: %w", err)
	}

	doc := &models.Embedding{
		UserID: userID,
		Text:   text,
		Vector: vector,
	}
	if err := s.embeddingRepo.CreateEmbedding(doc); err != nil {
		return nil, err
	}

	logger.Info("embedding stored",
		zap.Uint("user_id", userID),
		zap.Int("dimension", len(vector)))

	return doc, nil
}
