package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/smartlink-app/smartlink/internal/models"
	"github.com/smartlink-app/smartlink/internal/repository"
	"github.com/smartlink-app/smartlink/internal/services"
)

type stubEmbedder struct{}

func (stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

type stubCompleter struct{}

func (stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	return "stub reply", nil
}

type testEnv struct {
	router *gin.Engine
	store  *repository.Store
	links  *services.LinkService
	auth   *services.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := repository.OpenStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.AutoMigrate())
	t.Cleanup(func() { store.Close() })

	linkRepo := repository.NewLinkRepository(store.DB())
	clickRepo := repository.NewClickRepository(store.DB())
	userRepo := repository.NewUserRepository(store.DB())
	embeddingRepo := repository.NewEmbeddingRepository(store.DB())

	linkService := services.NewLinkService(linkRepo, clickRepo)
	analyticsService := services.NewAnalyticsService(linkRepo, clickRepo)
	authService := services.NewAuthService(userRepo, "test-secret", time.Hour, bcrypt.MinCost)
	chatService := services.NewChatService(embeddingRepo, stubEmbedder{}, stubCompleter{})

	router := gin.New()
	SetupRoutes(router, Services{
		Store:     store,
		Links:     linkService,
		Analytics: analyticsService,
		Auth:      authService,
		Chat:      chatService,
		BaseURL:   "http://localhost:8080",
	})

	return &testEnv{router: router, store: store, links: linkService, auth: authService}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func (e *testEnv) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// signUp registers a user through the API and returns their token.
func (e *testEnv) signUp(t *testing.T, name, email string) string {
	t.Helper()

	w := e.do(t, http.MethodPost, "/api/auth/signup", "",
		`{"name":"`+name+`","email":"`+email+`","password":"s3cret42"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "connected", body["database"])
}

func TestRedirectFlow(t *testing.T) {
	env := newTestEnv(t)

	link, err := env.links.CreateLink(1, services.CreateLinkInput{
		OriginalURL: "https://example.com/landing?ref=abc",
	})
	require.NoError(t, err)

	w := env.do(t, http.MethodGet, "/"+link.ShortCode, "", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://example.com/landing?ref=abc", w.Header().Get("Location"))

	// The legacy tracking route behaves identically.
	w = env.do(t, http.MethodGet, "/api/links/track/"+link.ShortCode, "", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://example.com/landing?ref=abc", w.Header().Get("Location"))

	var clicks []models.Click
	require.NoError(t, env.store.DB().Where("link_id = ?", link.ID).Find(&clicks).Error)
	assert.Len(t, clicks, 2)
}

func TestRedirectUnknownCode(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/nosuch", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRedirectExpiredLink(t *testing.T) {
	env := newTestEnv(t)

	expiry := time.Now().Add(-time.Hour)
	link, err := env.links.CreateLink(1, services.CreateLinkInput{
		OriginalURL: "https://example.com",
		ExpiresAt:   &expiry,
	})
	require.NoError(t, err)

	w := env.do(t, http.MethodGet, "/"+link.ShortCode, "", "")
	assert.Equal(t, http.StatusGone, w.Code)
}

func TestSignInErrors(t *testing.T) {
	env := newTestEnv(t)
	env.signUp(t, "Alice", "alice@example.com")

	w := env.do(t, http.MethodPost, "/api/auth/signin", "",
		`{"email":"nobody@example.com","password":"whatever"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPost, "/api/auth/signin", "",
		`{"email":"alice@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/auth/signin", "",
		`{"email":"alice@example.com","password":"s3cret42"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLinksRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/links", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodGet, "/api/links", "garbage-token", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateAndListLinks(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp(t, "Alice", "alice@example.com")

	w := env.do(t, http.MethodPost, "/api/links/create", token,
		`{"originalUrl":"https://example.com","customAlias":"docs","title":"Docs"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Link
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "docs", created.ShortCode)

	// A second claim on the same alias fails.
	w = env.do(t, http.MethodPost, "/api/links/create", token,
		`{"originalUrl":"https://other.example.com","customAlias":"docs"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Custom alias already taken")

	w = env.do(t, http.MethodGet, "/api/links", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var links []models.Link
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &links))
	require.Len(t, links, 1)
	assert.Equal(t, created.ID, links[0].ID)
}

func TestCreateLinkRejectsBadURL(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp(t, "Alice", "alice@example.com")

	w := env.do(t, http.MethodPost, "/api/links/create", token,
		`{"originalUrl":"not-a-url"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteLink(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp(t, "Alice", "alice@example.com")

	w := env.do(t, http.MethodPost, "/api/links/create", token,
		`{"originalUrl":"https://example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Link
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = env.do(t, http.MethodDelete, "/api/links/"+itoa(created.ID), token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Link deleted successfully")

	w = env.do(t, http.MethodGet, "/api/links/"+itoa(created.ID), token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQRCodeEndpoint(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp(t, "Alice", "alice@example.com")

	w := env.do(t, http.MethodPost, "/api/links/create", token,
		`{"originalUrl":"https://example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Link
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = env.do(t, http.MethodGet, "/api/links/"+itoa(created.ID)+"/qrcode", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, strings.HasPrefix(body["qrCode"], "data:image/png;base64,"))
	assert.Equal(t, "http://localhost:8080/"+created.ShortCode, body["shortUrl"])
}

func TestChatValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp(t, "Alice", "alice@example.com")

	w := env.do(t, http.MethodPost, "/api/chat", token, `{"message":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Message is required")

	w = env.do(t, http.MethodPost, "/api/chat", "", `{"message":"hi"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/api/chat", token, `{"message":"hi"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "stub reply")
}

func TestLegacyChatRoute(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/chat/1", "", `{"message":"hi"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "stub reply")
}

func TestIngestEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/ingest", "", `{"userId":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing text")

	w = env.do(t, http.MethodPost, "/api/ingest", "", `{"userId":1,"text":"release notes"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Embedding stored successfully")

	var count int64
	require.NoError(t, env.store.DB().Model(&models.Embedding{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp(t, "Alice", "alice@example.com")

	w := env.do(t, http.MethodGet, "/api/admin/users", token, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Promote the account and retry.
	require.NoError(t, env.store.DB().Model(&models.User{}).
		Where("email = ?", "alice@example.com").
		Update("role", models.RoleAdmin).Error)

	w = env.do(t, http.MethodGet, "/api/admin/users", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice@example.com")
}

func TestAdminListLinksIncludesOwner(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUp(t, "Admin", "admin@example.com")
	require.NoError(t, env.store.DB().Model(&models.User{}).
		Where("email = ?", "admin@example.com").
		Update("role", models.RoleAdmin).Error)

	w := env.do(t, http.MethodPost, "/api/links/create", token,
		`{"originalUrl":"https://example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodGet, "/api/admin/links", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ownerEmail":"admin@example.com"`)
	assert.Contains(t, w.Body.String(), `"ownerName":"Admin"`)
}
