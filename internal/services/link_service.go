// Package services contains the business logic layer for the SmartLink application
package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/smartlink-app/smartlink/internal/errors"
	"github.com/smartlink-app/smartlink/internal/logger"
	"github.com/smartlink-app/smartlink/internal/models"
	"github.com/smartlink-app/smartlink/internal/repository"
	"github.com/smartlink-app/smartlink/internal/useragent"
)

// charset defines the character set used for generating short codes.
// Alphanumeric, both cases: 62^6 combinations for 6-character codes.
const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// shortCodeLength is the length of generated codes; custom aliases may be longer.
const shortCodeLength = 6

// maxGenerateRetries bounds the collision retry loop during creation.
const maxGenerateRetries = 5

// CreateLinkInput carries the caller-supplied fields for a new link.
type CreateLinkInput struct {
	OriginalURL string
	CustomAlias string
	Title       string
	Description string
	ExpiresAt   *time.Time
}

// UpdateLinkInput carries the owner-mutable fields of an existing link.
type UpdateLinkInput struct {
	Title       *string
	Description *string
	IsActive    *bool
	ExpiresAt   *time.Time
}

// Visit captures the request context of one redirect for analytics.
type Visit struct {
	IPAddress string
	UserAgent string
	Referer   string
}

// LinkService provides business logic for managing and resolving short links.
type LinkService struct {
	linkRepo  repository.LinkRepository
	clickRepo repository.ClickRepository
	now       func() time.Time
}

// NewLinkService creates and returns a new instance of LinkService.
func NewLinkService(linkRepo repository.LinkRepository, clickRepo repository.ClickRepository) *LinkService {
	return &LinkService{
		linkRepo:  linkRepo,
		clickRepo: clickRepo,
		now:       time.Now,
	}
}

// GenerateShortCode generates a cryptographically secure random short code.
func (s *LinkService) GenerateShortCode(length int) (string, error) {
	code := make([]byte, length)
	for i := range code {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

// CreateLink creates a new shortened link for the given owner. A custom alias,
// when provided, becomes the short code after a uniqueness check; otherwise a
// random code is generated with collision retry.
func (s *LinkService) CreateLink(userID uint, in CreateLinkInput) (*models.Link, error) {
	var shortCode string
	var customAlias *string

	if in.CustomAlias != "" {
		// The alias must be free both as an alias and as a code.
		if err := s.ensureAliasAvailable(in.CustomAlias); err != nil {
			return nil, err
		}
		shortCode = in.CustomAlias
		customAlias = &in.CustomAlias
	} else {
		code, err := s.generateUniqueShortCode()
		if err != nil {
			return nil, err
		}
		shortCode = code
	}

	link := &models.Link{
		UserID:      userID,
		OriginalURL: in.OriginalURL,
		ShortCode:   shortCode,
		CustomAlias: customAlias,
		Title:       in.Title,
		Description: in.Description,
		IsActive:    true,
		ExpiresAt:   in.ExpiresAt,
	}

	if err := s.linkRepo.CreateLink(link); err != nil {
		return nil, fmt.Errorf("failed to create link: %w", err)
	}

	return link, nil
}

func (s *LinkService) ensureAliasAvailable(alias string) error {
	if _, err := s.linkRepo.GetLinkByCustomAlias(alias); err == nil {
		return apperrors.ErrAliasTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("database error checking alias uniqueness: %w", err)
	}
	if _, err := s.linkRepo.GetLinkByShortCode(alias); err == nil {
		return apperrors.ErrAliasTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("database error checking alias uniqueness: %w", err)
	}
	return nil
}

func (s *LinkService) generateUniqueShortCode() (string, error) {
	for i := 0; i < maxGenerateRetries; i++ {
		code, err := s.GenerateShortCode(shortCodeLength)
		if err != nil {
			return "", fmt.Errorf("failed to generate short code: %w", err)
		}

		_, err = s.linkRepo.GetLinkByShortCode(code)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code, nil
		}
		if err != nil {
			return "", fmt.Errorf("database error checking short code uniqueness: %w", err)
		}

		logger.Warn("short code collision, retrying",
			zap.String("code", code),
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", maxGenerateRetries))
	}
	return "", apperrors.ErrShortCodeGenerationFailed
}

// GetUserLink retrieves one link scoped to its owner.
func (s *LinkService) GetUserLink(id, userID uint) (*models.Link, error) {
	link, err := s.linkRepo.GetLinkByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLinkNotFound
		}
		return nil, err
	}
	if link.UserID != userID {
		// Scoping by owner: someone else's link looks like a missing one.
		return nil, apperrors.ErrLinkNotFound
	}
	return link, nil
}

// ListUserLinks returns all links owned by the user, newest first.
func (s *LinkService) ListUserLinks(userID uint) ([]models.Link, error) {
	return s.linkRepo.GetLinksByUser(userID)
}

// ListAllLinks returns every link in the system regardless of owner. Reserved
// for administrators.
func (s *LinkService) ListAllLinks() ([]models.Link, error) {
	return s.linkRepo.GetAllLinks()
}

// UpdateLink applies the owner-mutable fields and persists the link.
func (s *LinkService) UpdateLink(id, userID uint, in UpdateLinkInput) (*models.Link, error) {
	link, err := s.GetUserLink(id, userID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		link.Title = *in.Title
	}
	if in.Description != nil {
		link.Description = *in.Description
	}
	if in.IsActive != nil {
		link.IsActive = *in.IsActive
	}
	if in.ExpiresAt != nil {
		link.ExpiresAt = in.ExpiresAt
	}

	if err := s.linkRepo.UpdateLink(link); err != nil {
		return nil, err
	}
	return link, nil
}

// DeleteLink removes a link owned by the user.
func (s *LinkService) DeleteLink(id, userID uint) error {
	deleted, err := s.linkRepo.DeleteLink(id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrLinkNotFound
	}
	return nil
}

// ResolveAndRecord resolves a short code for redirection and records exactly
// one click for each successful resolution. The sequence is:
//
//  1. lookup by short code; missing links fail with ErrLinkNotFound
//  2. disabled links fail with ErrLinkNotFound as well, so their existence
//     is not leaked
//  3. expired links fail with ErrLinkExpired (410 semantics)
//  4. the click counter is incremented atomically in the database
//  5. the visit is classified and persisted as a Click
//
// Both writes complete before the destination URL is returned, so the
// redirect response is never sent ahead of the analytics record. Repeating
// the call increments again; there is no request-level deduplication.
func (s *LinkService) ResolveAndRecord(shortCode string, visit Visit) (*models.Link, error) {
	link, err := s.linkRepo.GetLinkByShortCode(shortCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLinkNotFound
		}
		return nil, fmt.Errorf("failed to resolve short code %q: %w", shortCode, err)
	}

	if !link.IsActive {
		return nil, apperrors.ErrLinkNotFound
	}

	now := s.now()
	if link.Expired(now) {
		return nil, apperrors.ErrLinkExpired
	}

	if err := s.linkRepo.IncrementClicks(link.ID); err != nil {
		return nil, err
	}
	link.Clicks++

	click := &models.Click{
		LinkID:    link.ID,
		UserID:    link.UserID,
		IPAddress: visit.IPAddress,
		UserAgent: visit.UserAgent,
		Device:    useragent.Device(visit.UserAgent),
		Browser:   useragent.Browser(visit.UserAgent),
		Referer:   visit.Referer,
		Timestamp: now,
	}

	if err := s.clickRepo.CreateClick(click); err != nil {
		return nil, apperrors.ErrClickRecordingFailed{LinkID: link.ID, Reason: err.Error()}
	}

	logger.Debug("click recorded",
		zap.String("short_code", shortCode),
		zap.Uint("link_id", link.ID),
		zap.String("device", click.Device),
		zap.String("browser", click.Browser))

	return link, nil
}

// GetLinkStats retrieves a link by short code together with its recorded
// click total. Used by the stats CLI command.
func (s *LinkService) GetLinkStats(shortCode string) (*models.Link, int, error) {
	link, err := s.linkRepo.GetLinkByShortCode(shortCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, apperrors.ErrLinkNotFound
		}
		return nil, 0, err
	}

	totalClicks, err := s.clickRepo.CountClicksByLinkID(link.ID)
	if err != nil {
		return nil, 0, err
	}

	return link, totalClicks, nil
}
