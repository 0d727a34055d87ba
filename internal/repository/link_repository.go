package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/smartlink-app/smartlink/internal/models"
)

// LinkRepository est une interface qui définit les méthodes d'accès aux données
type LinkRepository interface {
	CreateLink(link *models.Link) error
	GetLinkByShortCode(shortCode string) (*models.Link, error)
	GetLinkByCustomAlias(alias string) (*models.Link, error)
	GetLinkByID(id uint) (*models.Link, error)
	GetLinksByUser(userID uint) ([]models.Link, error)
	GetAllLinks() ([]models.Link, error)
	UpdateLink(link *models.Link) error
	DeleteLink(id, userID uint) (bool, error)
	IncrementClicks(id uint) error
}

// GormLinkRepository est l'implémentation de LinkRepository utilisant GORM.
type GormLinkRepository struct {
	db *gorm.DB
}

// NewLinkRepository crée et retourne une nouvelle instance de GormLinkRepository.
func NewLinkRepository(db *gorm.DB) *GormLinkRepository {
	return &GormLinkRepository{db: db}
}

// CreateLink insère un nouveau lien dans la base de données.
func (r *GormLinkRepository) CreateLink(link *models.Link) error {
	if err := r.db.Create(link).Error; err != nil {
		return fmt.Errorf("failed to create link: %w", err)
	}
	return nil
}

// GetLinkByShortCode récupère un lien en utilisant son shortCode.
func (r *GormLinkRepository) GetLinkByShortCode(shortCode string) (*models.Link, error) {
	var link models.Link
	if err := r.db.Where("short_code = ?", shortCode).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// GetLinkByCustomAlias récupère un lien par son alias personnalisé.
func (r *GormLinkRepository) GetLinkByCustomAlias(alias string) (*models.Link, error) {
	var link models.Link
	if err := r.db.Where("custom_alias = ?", alias).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// GetLinkByID récupère un lien par sa clé primaire.
func (r *GormLinkRepository) GetLinkByID(id uint) (*models.Link, error) {
	var link models.Link
	if err := r.db.First(&link, id).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// GetLinksByUser récupère les liens d'un utilisateur, les plus récents d'abord.
func (r *GormLinkRepository) GetLinksByUser(userID uint) ([]models.Link, error) {
	var links []models.Link
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve links for user %d: %w", userID, err)
	}
	return links, nil
}

// GetAllLinks récupère tous les liens de la base de données.
func (r *GormLinkRepository) GetAllLinks() ([]models.Link, error) {
	var links []models.Link
	if err := r.db.Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve all links: %w", err)
	}
	return links, nil
}

// UpdateLink persiste les champs modifiables d'un lien.
func (r *GormLinkRepository) UpdateLink(link *models.Link) error {
	if err := r.db.Save(link).Error; err != nil {
		return fmt.Errorf("failed to update link %d: %w", link.ID, err)
	}
	return nil
}

// DeleteLink supprime un lien appartenant à l'utilisateur donné.
// Retourne false quand aucun lien ne correspond.
func (r *GormLinkRepository) DeleteLink(id, userID uint) (bool, error) {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Link{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete link %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// IncrementClicks incrémente le compteur de clics de façon atomique côté
// base, pour que des redirections concurrentes ne perdent aucun clic.
func (r *GormLinkRepository) IncrementClicks(id uint) error {
	err := r.db.Model(&models.Link{}).
		Where("id = ?", id).
		UpdateColumn("clicks", gorm.Expr("clicks + ?", 1)).Error
	if err != nil {
		return fmt.Errorf("failed to increment clicks for link %d: %w", id, err)
	}
	return nil
}
