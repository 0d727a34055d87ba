package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/smartlink-app/smartlink/internal/errors"
	"github.com/smartlink-app/smartlink/internal/models"
	"github.com/smartlink-app/smartlink/internal/repository"
)

func newTestStore(t *testing.T) *repository.Store {
	t.Helper()

	store, err := repository.OpenStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.AutoMigrate())

	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func newTestLinkService(t *testing.T) (*LinkService, *repository.Store) {
	t.Helper()

	store := newTestStore(t)
	linkRepo := repository.NewLinkRepository(store.DB())
	clickRepo := repository.NewClickRepository(store.DB())
	return NewLinkService(linkRepo, clickRepo), store
}

func TestGenerateShortCode(t *testing.T) {
	svc, _ := newTestLinkService(t)

	code, err := svc.GenerateShortCode(6)
	require.NoError(t, err)
	assert.Len(t, code, 6)

	for _, r := range code {
		assert.Contains(t, charset, string(r))
	}
}

func TestCreateLinkGeneratesCode(t *testing.T) {
	svc, _ := newTestLinkService(t)

	link, err := svc.CreateLink(1, CreateLinkInput{OriginalURL: "https://example.com"})
	require.NoError(t, err)

	assert.Len(t, link.ShortCode, shortCodeLength)
	assert.Nil(t, link.CustomAlias)
	assert.True(t, link.IsActive)
	assert.Equal(t, uint(1), link.UserID)
}

func TestCreateLinkWithCustomAlias(t *testing.T) {
	svc, _ := newTestLinkService(t)

	link, err := svc.CreateLink(1, CreateLinkInput{
		OriginalURL: "https://example.com",
		CustomAlias: "mylink",
	})
	require.NoError(t, err)

	assert.Equal(t, "mylink", link.ShortCode)
	require.NotNil(t, link.CustomAlias)
	assert.Equal(t, "mylink", *link.CustomAlias)
}

func TestCreateLinkDuplicateAlias(t *testing.T) {
	svc, _ := newTestLinkService(t)

	_, err := svc.CreateLink(1, CreateLinkInput{
		OriginalURL: "https://example.com",
		CustomAlias: "mylink",
	})
	require.NoError(t, err)

	// A second user cannot claim the same alias.
	_, err = svc.CreateLink(2, CreateLinkInput{
		OriginalURL: "https://other.example.com",
		CustomAlias: "mylink",
	})
	assert.ErrorIs(t, err, apperrors.ErrAliasTaken)
}

func TestCreateLinkAliasCollidesWithGeneratedCode(t *testing.T) {
	svc, _ := newTestLinkService(t)

	existing, err := svc.CreateLink(1, CreateLinkInput{OriginalURL: "https://example.com"})
	require.NoError(t, err)

	// An alias equal to an already generated code is rejected too.
	_, err = svc.CreateLink(2, CreateLinkInput{
		OriginalURL: "https://other.example.com",
		CustomAlias: existing.ShortCode,
	})
	assert.ErrorIs(t, err, apperrors.ErrAliasTaken)
}

func TestResolveAndRecordUnknownCode(t *testing.T) {
	svc, _ := newTestLinkService(t)

	_, err := svc.ResolveAndRecord("nosuch", Visit{})
	assert.ErrorIs(t, err, apperrors.ErrLinkNotFound)
}

func TestResolveAndRecordInactiveLink(t *testing.T) {
	svc, _ := newTestLinkService(t)

	link, err := svc.CreateLink(1, CreateLinkInput{OriginalURL: "https://example.com"})
	require.NoError(t, err)

	inactive := false
	_, err = svc.UpdateLink(link.ID, 1, UpdateLinkInput{IsActive: &inactive})
	require.NoError(t, err)

	// A disabled link is indistinguishable from a missing one.
	_, err = svc.ResolveAndRecord(link.ShortCode, Visit{})
	assert.ErrorIs(t, err, apperrors.ErrLinkNotFound)
}

func TestResolveAndRecordExpiredLink(t *testing.T) {
	svc, _ := newTestLinkService(t)

	expiry := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	link, err := svc.CreateLink(1, CreateLinkInput{
		OriginalURL: "https://example.com",
		ExpiresAt:   &expiry,
	})
	require.NoError(t, err)

	svc.now = func() time.Time { return expiry.Add(time.Minute) }
	_, err = svc.ResolveAndRecord(link.ShortCode, Visit{})
	assert.ErrorIs(t, err, apperrors.ErrLinkExpired)

	// Exactly at the expiry instant the link is already gone.
	svc.now = func() time.Time { return expiry }
	_, err = svc.ResolveAndRecord(link.ShortCode, Visit{})
	assert.ErrorIs(t, err, apperrors.ErrLinkExpired)

	// One moment before expiry it still resolves.
	svc.now = func() time.Time { return expiry.Add(-time.Second) }
	resolved, err := svc.ResolveAndRecord(link.ShortCode, Visit{})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", resolved.OriginalURL)
}

func TestResolveAndRecordCountsAndClassifies(t *testing.T) {
	svc, store := newTestLinkService(t)

	originalURL := "https://example.com/path?q=hello%20world&x=1"
	link, err := svc.CreateLink(1, CreateLinkInput{OriginalURL: originalURL})
	require.NoError(t, err)

	visit := Visit{
		IPAddress: "203.0.113.7",
		UserAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
		Referer:   "https://twitter.com/",
	}

	resolved, err := svc.ResolveAndRecord(link.ShortCode, visit)
	require.NoError(t, err)

	// The destination comes back byte for byte, query string included.
	assert.Equal(t, originalURL, resolved.OriginalURL)
	assert.Equal(t, int64(1), resolved.Clicks)

	var clicks []models.Click
	require.NoError(t, store.DB().Where("link_id = ?", link.ID).Find(&clicks).Error)
	require.Len(t, clicks, 1)

	assert.Equal(t, "mobile", clicks[0].Device)
	assert.Equal(t, "safari", clicks[0].Browser)
	assert.Equal(t, "203.0.113.7", clicks[0].IPAddress)
	assert.Equal(t, "https://twitter.com/", clicks[0].Referer)
	assert.Equal(t, uint(1), clicks[0].UserID)

	// No request-level deduplication: a second visit counts again.
	resolved, err = svc.ResolveAndRecord(link.ShortCode, visit)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resolved.Clicks)

	require.NoError(t, store.DB().Where("link_id = ?", link.ID).Find(&clicks).Error)
	assert.Len(t, clicks, 2)
}

func TestGetUserLinkScopedToOwner(t *testing.T) {
	svc, _ := newTestLinkService(t)

	link, err := svc.CreateLink(1, CreateLinkInput{OriginalURL: "https://example.com"})
	require.NoError(t, err)

	_, err = svc.GetUserLink(link.ID, 2)
	assert.ErrorIs(t, err, apperrors.ErrLinkNotFound)

	got, err := svc.GetUserLink(link.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, link.ID, got.ID)
}

func TestDeleteLinkScopedToOwner(t *testing.T) {
	svc, _ := newTestLinkService(t)

	link, err := svc.CreateLink(1, CreateLinkInput{OriginalURL: "https://example.com"})
	require.NoError(t, err)

	err = svc.DeleteLink(link.ID, 2)
	assert.ErrorIs(t, err, apperrors.ErrLinkNotFound)

	require.NoError(t, svc.DeleteLink(link.ID, 1))

	_, err = svc.GetUserLink(link.ID, 1)
	assert.ErrorIs(t, err, apperrors.ErrLinkNotFound)
}

func TestGetLinkStats(t *testing.T) {
	svc, _ := newTestLinkService(t)

	link, err := svc.CreateLink(1, CreateLinkInput{OriginalURL: "https://example.com"})
	require.NoError(t, err)

	_, err = svc.ResolveAndRecord(link.ShortCode, Visit{IPAddress: "198.51.100.1"})
	require.NoError(t, err)
	_, err = svc.ResolveAndRecord(link.ShortCode, Visit{IPAddress: "198.51.100.2"})
	require.NoError(t, err)

	got, totalClicks, err := svc.GetLinkStats(link.ShortCode)
	require.NoError(t, err)
	assert.Equal(t, link.ID, got.ID)
	assert.Equal(t, 2, totalClicks)
}
