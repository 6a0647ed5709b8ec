package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	gormsqlite "github.com/glebarez/sqlite"
	"github.com/idolchat/idolchat/internal/billing"
	"github.com/idolchat/idolchat/internal/chat"
	"github.com/idolchat/idolchat/internal/config"
	"github.com/idolchat/idolchat/internal/models"
	"github.com/idolchat/idolchat/internal/store/redisstore"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(gormsqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &billing.Subscriber{}, &chat.Message{}, &chat.RelayJob{},
	))

	cfg := config.Config{
		JWTSecret:              "test-secret",
		OpenAIBaseURL:          "http://unused",
		OpenAIAPIKey:           "test-key",
		RateLimitWindowMinutes: 1440,
		RateLimitFree:          50,
		RateLimitPremium:       200,
		RateLimitEnterprise:    500,
	}
	// the redis client connects lazily; these routes never touch it
	rds := redisstore.New("127.0.0.1:0", "", 0)

	return NewRouter(db, cfg, rds, nil)
}

func TestPreflightAnsweredWithEmpty200(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	req.Header.Set("Origin", "https://idolchat.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "authorization, content-type")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, w.Body.String())
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestPing(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"pong"`)
}

func TestAuthedRoutesRejectMissingToken(t *testing.T) {
	r := newTestRouter(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/me"},
		{http.MethodGet, "/personas"},
		{http.MethodGet, "/subscription"},
		{http.MethodGet, "/chat/joon-park/messages"},
	} {
		req := httptest.NewRequest(route.method, route.path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}
}
