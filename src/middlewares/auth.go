package middlewares

import (
	"context"
	"cycleparadise/src/apperror"
	"cycleparadise/src/config"
	"cycleparadise/src/lib"
	"cycleparadise/src/models"
	"cycleparadise/src/types"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const sessionCacheTTL = 5 * time.Minute

var ErrUnauthorized = apperror.NewAuthenticationError("Unauthorized")

type SessionStore interface {
	Find(ctx context.Context, id uuid.UUID) (*models.Session, error)
	Extend(ctx context.Context, id uuid.UUID, expiresAt time.Time) error
	Destroy(ctx context.Context, id uuid.UUID) error
}

// Auth issues and checks the admin_session cookie. The cookie is a signed
// JWT whose sid claim points at a Session row.
type Auth struct {
	secret       []byte
	sessions     SessionStore
	cache        *lib.SessionCache
	secureCookie bool
	now          func() time.Time
}

func NewAuth(secret string, sessions SessionStore, cache *lib.SessionCache, secureCookie bool) *Auth {
	return &Auth{
		secret:       []byte(secret),
		sessions:     sessions,
		cache:        cache,
		secureCookie: secureCookie,
		now:          time.Now,
	}
}

func (a *Auth) IssueToken(sessionID uuid.UUID, user *models.AdminUser, expiresAt time.Time) (string, error) {
	claims := types.AdminClaims{
		SessionID: sessionID.String(),
		Email:     user.Email,
		Role:      user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(a.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *Auth) ParseToken(token string) (*types.AdminClaims, error) {
	claims := &types.AdminClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, ErrUnauthorized
	}
	return claims, nil
}

func (a *Auth) SetCookie(ctx *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(expiresAt.Sub(a.now()).Seconds())
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(config.SESSION_COOKIE, token, maxAge, "/", "", a.secureCookie, true)
}

func (a *Auth) ClearCookie(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(config.SESSION_COOKIE, "", -1, "/", "", a.secureCookie, true)
}

// Resolve returns the live session behind the request cookie.
func (a *Auth) Resolve(ctx *gin.Context) (*lib.CachedSession, error) {
	token, err := ctx.Cookie(config.SESSION_COOKIE)
	if err != nil || token == "" {
		return nil, ErrUnauthorized
	}
	claims, err := a.ParseToken(token)
	if err != nil {
		log.Printf("token error: %s\n", err.Error())
		return nil, ErrUnauthorized
	}
	sid, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return nil, ErrUnauthorized
	}

	c := ctx.Request.Context()
	if cached, ok := a.cache.Get(c, sid); ok && cached.ExpiresAt.After(a.now()) {
		return cached, nil
	}

	session, err := a.sessions.Find(c, sid)
	if err != nil {
		return nil, ErrUnauthorized
	}
	if !session.ExpiresAt.After(a.now()) {
		if err := a.sessions.Destroy(c, sid); err != nil {
			log.Printf("Error deleting expired session %s: %s\n", sid, err.Error())
		}
		a.cache.Delete(c, sid)
		return nil, ErrUnauthorized
	}
	if session.User == nil || !session.User.IsActive {
		return nil, ErrUnauthorized
	}
	resolved := lib.CachedSession{
		SessionID: session.ID,
		UserID:    session.UserID,
		Email:     session.User.Email,
		Role:      session.User.Role,
		ExpiresAt: session.ExpiresAt,
	}
	a.cache.Set(c, resolved, sessionCacheTTL)
	return &resolved, nil
}

// extend pushes the expiry out by a full session once less than half of
// it remains. Remember-me sessions are left alone until then.
func (a *Auth) extend(ctx *gin.Context, s *lib.CachedSession) {
	now := a.now()
	if s.ExpiresAt.Sub(now) >= config.SESSION_TTL/2 {
		return
	}
	expiresAt := now.Add(config.SESSION_TTL)
	c := ctx.Request.Context()
	if err := a.sessions.Extend(c, s.SessionID, expiresAt); err != nil {
		log.Printf("Error extending session %s: %s\n", s.SessionID, err.Error())
		return
	}
	a.cache.Delete(c, s.SessionID)
	token, err := a.IssueToken(s.SessionID, &models.AdminUser{
		UUIDModel: models.UUIDModel{ID: s.UserID},
		Email:     s.Email,
		Role:      s.Role,
	}, expiresAt)
	if err != nil {
		log.Printf("Error signing session token: %s\n", err.Error())
		return
	}
	s.ExpiresAt = expiresAt
	a.SetCookie(ctx, token, expiresAt)
}

// Revoke ends the session behind the request cookie, if any, and clears
// the cookie either way.
func (a *Auth) Revoke(ctx *gin.Context) {
	defer a.ClearCookie(ctx)
	token, err := ctx.Cookie(config.SESSION_COOKIE)
	if err != nil || token == "" {
		return
	}
	claims, err := a.ParseToken(token)
	if err != nil {
		return
	}
	sid, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return
	}
	c := ctx.Request.Context()
	if err := a.sessions.Destroy(c, sid); err != nil {
		log.Printf("Error deleting session %s: %s\n", sid, err.Error())
	}
	a.cache.Delete(c, sid)
}

// Evict drops cached copies of the given sessions so the next request
// re-reads them from the database.
func (a *Auth) Evict(ctx context.Context, ids ...uuid.UUID) {
	for _, id := range ids {
		if err := a.cache.Delete(ctx, id); err != nil {
			log.Printf("[redis] Error evicting session %s: %s\n", id, err.Error())
		}
	}
}

// Require rejects requests without a live admin session.
func (a *Auth) Require(ctx *gin.Context) {
	s, err := a.Resolve(ctx)
	if err != nil {
		if !errors.Is(err, ErrUnauthorized) {
			log.Printf("Error resolving session: %s\n", err.Error())
		}
		apperror.Respond(ctx, ErrUnauthorized)
		return
	}
	a.extend(ctx, s)
	ctx.Set("sessionId", s.SessionID)
	ctx.Set("adminId", s.UserID)
	ctx.Set("email", s.Email)
	ctx.Set("role", s.Role)
	ctx.Next()
}

// RequireRole must run after Require.
func RequireRole(role types.AdminRole) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if r, _ := ctx.Get("role"); r != role {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		ctx.Next()
	}
}

// AdminID reads the id Require stored on the context.
func AdminID(ctx *gin.Context) uuid.UUID {
	if v, ok := ctx.Get("adminId"); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
