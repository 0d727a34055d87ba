package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/smartlink-app/smartlink/internal/models"
)

// EmbeddingRepository est une interface qui définit les méthodes d'accès aux données
type EmbeddingRepository interface {
	CreateEmbedding(embedding *models.Embedding) error
	GetEmbeddingsByUser(userID uint) ([]models.Embedding, error)
}

// GormEmbeddingRepository est l'implémentation de EmbeddingRepository utilisant GORM.
type GormEmbeddingRepository struct {
	db *gorm.DB
}

// NewEmbeddingRepository crée et retourne une nouvelle instance de GormEmbeddingRepository.
func NewEmbeddingRepository(db *gorm.DB) *GormEmbeddingRepository {
	return &GormEmbeddingRepository{db: db}
}

// CreateEmbedding insère un nouveau document avec son vecteur. Aucune
// déduplication : ingérer deux fois le même texte crée deux lignes.
func (r *GormEmbeddingRepository) CreateEmbedding(embedding *models.Embedding) error {
	if err := r.db.Create(embedding).Error; err != nil {
		return fmt.Errorf("failed to create embedding: %w", err)
	}
	return nil
}

// GetEmbeddingsByUser récupère tous les documents d'un utilisateur, sans
// pagination ni limite.
func (r *GormEmbeddingRepository) GetEmbeddingsByUser(userID uint) ([]models.Embedding, error) {
	var embeddings []models.Embedding
	if err := r.db.Where("user_id = ?", userID).Find(&embeddings).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve embeddings for user %d: %w", userID, err)
	}
	return embeddings, nil
}
