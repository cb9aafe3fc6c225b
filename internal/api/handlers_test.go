// internal/api/handlers_test.go
package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/chukainspires/coachsite/internal/api"
	"github.com/chukainspires/coachsite/internal/config"
	"github.com/chukainspires/coachsite/internal/di"
	"github.com/chukainspires/coachsite/internal/models"
	"github.com/chukainspires/coachsite/internal/services"
	"github.com/chukainspires/coachsite/internal/store"
	"github.com/chukainspires/coachsite/internal/utils"
)

// envelope mirrors the APIResponse shape for decoding in tests.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

func setupRouter(t *testing.T) (*gin.Engine, *store.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	container := di.GetContainer()
	container.Clear()

	st := store.NewMemory()
	logger := utils.GetLogger()

	content := services.NewContentService(st, logger)
	content.Load(context.Background())
	t.Cleanup(content.Stop)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	auth, err := services.NewAuthService(&config.Config{
		AdminUsername:     "operator",
		AdminPasswordHash: string(hash),
		AuthSecretKey:     "test-secret-key-test-secret-key!",
		AuthTokenTTL:      time.Hour,
	}, logger)
	require.NoError(t, err)

	container.Register("content", content)
	container.Register("drafts", services.NewDraftService(content, st, logger))
	container.Register("auth", auth)
	container.Register("submissions", services.NewSubmissionService(st, logger))
	container.Register("images", services.NewImageService(st))

	router, err := api.SetupRouter(&config.Config{
		StaticDir: t.TempDir(),
		DebugMode: true,
	})
	require.NoError(t, err)
	return router, st
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func login(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w, env := doJSON(t, router, http.MethodPost, "/api/admin/login", "", gin.H{
		"username": "operator",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func TestGetContent_ServesDefaults(t *testing.T) {
	router, _ := setupRouter(t)

	w, env := doJSON(t, router, http.MethodGet, "/api/content", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var content models.PageContent
	require.NoError(t, json.Unmarshal(env.Data, &content))
	assert.Equal(t, models.DefaultContent().Hero.Headline, content.Hero.Headline)
}

func TestSubmitContact_FieldErrors(t *testing.T) {
	router, st := setupRouter(t)

	w, env := doJSON(t, router, http.MethodPost, "/api/contact", "", gin.H{
		"name":    "",
		"email":   "not-an-email",
		"message": "short",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Full Name is required.", env.Error.Fields["name"])
	assert.Equal(t, "Please enter a valid email address.", env.Error.Fields["email"])
	assert.Equal(t, "Message must be at least 10 characters long.", env.Error.Fields["message"])

	subs, err := st.ListSubmissions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestSubmitContact_Success(t *testing.T) {
	router, st := setupRouter(t)

	w, _ := doJSON(t, router, http.MethodPost, "/api/contact", "", gin.H{
		"name":    "Jane",
		"email":   "jane@example.com",
		"message": "I would like to book a discovery call.",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	subs, err := st.ListSubmissions(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "jane@example.com", subs[0].Email)
}

func TestAdminEndpoints_RequireToken(t *testing.T) {
	router, _ := setupRouter(t)

	w, _ := doJSON(t, router, http.MethodGet, "/api/admin/submissions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doJSON(t, router, http.MethodPost, "/api/admin/draft", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_WrongCredentials(t *testing.T) {
	router, _ := setupRouter(t)

	w, env := doJSON(t, router, http.MethodPost, "/api/admin/login", "", gin.H{
		"username": "wrong",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "invalid username or password", env.Error.Message)
}

func TestEditFlow_SaveRepublishes(t *testing.T) {
	router, st := setupRouter(t)
	token := login(t, router)

	w, _ := doJSON(t, router, http.MethodPost, "/api/admin/draft", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, router, http.MethodPatch, "/api/admin/draft/field", token, gin.H{
		"section": "hero",
		"field":   "headline",
		"value":   "A brand new headline",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Not yet published
	_, env := doJSON(t, router, http.MethodGet, "/api/content", "", nil)
	var content models.PageContent
	require.NoError(t, json.Unmarshal(env.Data, &content))
	assert.NotEqual(t, "A brand new headline", content.Hero.Headline)

	w, _ = doJSON(t, router, http.MethodPost, "/api/admin/draft/save", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Published and persisted
	_, env = doJSON(t, router, http.MethodGet, "/api/content", "", nil)
	require.NoError(t, json.Unmarshal(env.Data, &content))
	assert.Equal(t, "A brand new headline", content.Hero.Headline)

	stored, err := st.GetContent(context.Background(), store.ContentID)
	require.NoError(t, err)
	assert.Equal(t, "A brand new headline", stored.Hero.Headline)
}

func TestDraftItems_AddAndRemove(t *testing.T) {
	router, _ := setupRouter(t)
	token := login(t, router)

	doJSON(t, router, http.MethodPost, "/api/admin/draft", token, nil)

	w, _ := doJSON(t, router, http.MethodPost, "/api/admin/draft/items", token, gin.H{"section": "services"})
	require.Equal(t, http.StatusOK, w.Code)

	_, env := doJSON(t, router, http.MethodGet, "/api/admin/draft", token, nil)
	var draft struct {
		Content models.PageContent `json:"content"`
		Dirty   bool               `json:"dirty"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &draft))
	require.Len(t, draft.Content.Services.Items, 5)
	assert.True(t, draft.Dirty)

	w, _ = doJSON(t, router, http.MethodDelete, "/api/admin/draft/items/services/4", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, router, http.MethodDelete, "/api/admin/draft/items/services/99", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestImageUpsert_ReachesPublishedContent(t *testing.T) {
	router, _ := setupRouter(t)
	token := login(t, router)

	// Start the watcher the way main does
	content := di.GetContainer().Get("content").(*services.ContentService)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	content.Watch(ctx)

	w, _ := doJSON(t, router, http.MethodPost, "/api/admin/images", token, gin.H{
		"name": models.ImageHeroBackground,
		"url":  "https://cdn.example.com/hero-v2.jpg",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	require.Eventually(t, func() bool {
		return content.Current().Hero.ImageURL == "https://cdn.example.com/hero-v2.jpg"
	}, 2*time.Second, 20*time.Millisecond, "image change never republished")
}

func TestLoginRateLimit(t *testing.T) {
	router, _ := setupRouter(t)

	var lastCode int
	for i := 0; i < 6; i++ {
		w, _ := doJSON(t, router, http.MethodPost, "/api/admin/login", "", gin.H{
			"username": "wrong",
			"password": "wrong",
		})
		lastCode = w.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}
