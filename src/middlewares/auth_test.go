package middlewares

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cycleparadise/src/config"
	"cycleparadise/src/lib"
	"cycleparadise/src/models"
	"cycleparadise/src/repositories"
	"cycleparadise/src/types"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type fakeSessions struct {
	sessions  map[uuid.UUID]*models.Session
	extended  map[uuid.UUID]time.Time
	destroyed []uuid.UUID
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: map[uuid.UUID]*models.Session{}, extended: map[uuid.UUID]time.Time{}}
}

func (f *fakeSessions) Find(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, repositories.ErrSessionNotFound
	}
	return s, nil
}

func (f *fakeSessions) Extend(ctx context.Context, id uuid.UUID, expiresAt time.Time) error {
	f.extended[id] = expiresAt
	return nil
}

func (f *fakeSessions) Destroy(ctx context.Context, id uuid.UUID) error {
	f.destroyed = append(f.destroyed, id)
	delete(f.sessions, id)
	return nil
}

var now = time.Now().UTC().Truncate(time.Second)

func setup(t *testing.T) (*Auth, *fakeSessions, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	store := newFakeSessions()
	auth := NewAuth("test-secret", store, lib.NewSessionCache(nil), false)
	auth.now = func() time.Time { return now }

	r := gin.New()
	r.GET("/admin/ping", auth.Require, func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"adminId": AdminID(ctx).String(), "email": ctx.GetString("email")})
	})
	return auth, store, r
}

func addSession(t *testing.T, auth *Auth, store *fakeSessions, expiresAt time.Time, active bool) (string, *models.Session) {
	user := &models.AdminUser{
		UUIDModel: models.UUIDModel{ID: uuid.New()},
		Email:     "admin@cycleparadise.com",
		Role:      types.ROLE_ADMIN,
		IsActive:  active,
	}
	s := &models.Session{
		UUIDModel: models.UUIDModel{ID: uuid.New()},
		UserID:    user.ID,
		ExpiresAt: expiresAt,
		User:      user,
	}
	store.sessions[s.ID] = s
	token, err := auth.IssueToken(s.ID, user, expiresAt)
	require.NoError(t, err)
	return token, s
}

func request(r *gin.Engine, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/admin/ping", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: config.SESSION_COOKIE, Value: token})
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRequireWithoutCookie(t *testing.T) {
	_, _, r := setup(t)

	w := request(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_ERROR", gjson.Get(w.Body.String(), "code").String())
}

func TestRequireWithForgedToken(t *testing.T) {
	_, store, r := setup(t)
	other := NewAuth("other-secret", store, nil, false)
	other.now = func() time.Time { return now }
	token, _ := addSession(t, other, store, now.Add(time.Hour*20), true)

	w := request(r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireValidSession(t *testing.T) {
	auth, store, r := setup(t)
	token, s := addSession(t, auth, store, now.Add(20*time.Hour), true)

	w := request(r, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, s.UserID.String(), gjson.Get(w.Body.String(), "adminId").String())
	assert.Equal(t, "admin@cycleparadise.com", gjson.Get(w.Body.String(), "email").String())
	assert.Empty(t, store.extended)
}

func TestRequireExtendsSessionNearExpiry(t *testing.T) {
	auth, store, r := setup(t)
	token, s := addSession(t, auth, store, now.Add(2*time.Hour), true)

	w := request(r, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, now.Add(config.SESSION_TTL), store.extended[s.ID])
	assert.Contains(t, w.Header().Get("Set-Cookie"), config.SESSION_COOKIE+"=")
}

func TestRequireRejectsExpiredSession(t *testing.T) {
	auth, store, r := setup(t)
	// the JWT itself is still valid, the row is what expired
	user := &models.AdminUser{UUIDModel: models.UUIDModel{ID: uuid.New()}, IsActive: true}
	s := &models.Session{UUIDModel: models.UUIDModel{ID: uuid.New()}, UserID: user.ID, ExpiresAt: now.Add(-time.Minute), User: user}
	store.sessions[s.ID] = s
	token, err := auth.IssueToken(s.ID, user, now.Add(time.Hour))
	require.NoError(t, err)

	w := request(r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, []uuid.UUID{s.ID}, store.destroyed)
}

func TestRequireRejectsInactiveUser(t *testing.T) {
	auth, store, r := setup(t)
	token, _ := addSession(t, auth, store, now.Add(20*time.Hour), false)

	w := request(r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/users", func(ctx *gin.Context) {
		ctx.Set("role", types.ROLE_EDITOR)
	}, RequireRole(types.ROLE_ADMIN), func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/users", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSecureHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SecureHeaders)
	r.GET("/", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestRevokeDestroysSession(t *testing.T) {
	auth, store, r := setup(t)
	r.POST("/logout", func(ctx *gin.Context) {
		auth.Revoke(ctx)
		ctx.Status(http.StatusNoContent)
	})
	token, s := addSession(t, auth, store, now.Add(20*time.Hour), true)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: config.SESSION_COOKIE, Value: token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []uuid.UUID{s.ID}, store.destroyed)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestEvictForcesDatabaseRecheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb, mock := redismock.NewClientMock()
	store := newFakeSessions()
	auth := NewAuth("test-secret", store, lib.NewSessionCache(rdb), false)
	auth.now = func() time.Time { return now }
	r := gin.New()
	r.GET("/admin/ping", auth.Require, func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	token, s := addSession(t, auth, store, now.Add(20*time.Hour), true)
	cached, err := json.Marshal(lib.CachedSession{
		SessionID: s.ID,
		UserID:    s.UserID,
		Email:     s.User.Email,
		Role:      s.User.Role,
		ExpiresAt: s.ExpiresAt,
	})
	require.NoError(t, err)
	key := "admin_session:" + s.ID.String()

	mock.ExpectGet(key).SetVal(string(cached))
	assert.Equal(t, http.StatusOK, request(r, token).Code)

	// deactivated while the cache still holds the session
	s.User.IsActive = false
	mock.ExpectDel(key).SetVal(1)
	auth.Evict(context.Background(), s.ID)

	mock.ExpectGet(key).RedisNil()
	assert.Equal(t, http.StatusUnauthorized, request(r, token).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
