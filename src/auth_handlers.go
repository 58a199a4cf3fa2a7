package main

import (
	"cycleparadise/src/apperror"
	"cycleparadise/src/config"
	"cycleparadise/src/models"
	"cycleparadise/src/types"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

var errInvalidCredentials = apperror.NewAuthenticationError("Invalid email or password")

// authenticate returns the active user matching the credentials.
func (s *server) authenticate(ctx *gin.Context, email, password string) (*models.AdminUser, error) {
	user, err := s.users.FindActiveByEmail(ctx.Request.Context(), email)
	if err != nil {
		if apperror.Status(err) == http.StatusNotFound {
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			log.Printf("Error comparing password for %s: %s\n", user.Email, err.Error())
		}
		return nil, errInvalidCredentials
	}
	return user, nil
}

func (s *server) authHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/login", func(ctx *gin.Context) {
			var body types.LoginRequestBody
			if err := ctx.ShouldBind(&body); err != nil {
				bindError(ctx, err)
				return
			}
			user, err := s.authenticate(ctx, body.Email, body.Password)
			if err != nil {
				apperror.Respond(ctx, err)
				return
			}

			c := ctx.Request.Context()
			ttl := config.SESSION_TTL
			if body.Remember {
				ttl = config.REMEMBER_ME_TTL
			}
			loginAt := s.now()
			session := models.Session{
				UserID:    user.ID,
				ExpiresAt: loginAt.Add(ttl),
				UserAgent: ctx.Request.UserAgent(),
				IPAddress: ctx.ClientIP(),
			}
			if err := s.sessions.Create(c, &session); err != nil {
				apperror.Respond(ctx, err)
				return
			}
			token, err := s.auth.IssueToken(session.ID, user, session.ExpiresAt)
			if err != nil {
				log.Printf("Error signing session token: %s\n", err.Error())
				apperror.Respond(ctx, err)
				return
			}
			if err := s.users.TouchLastLogin(c, user.ID, loginAt); err != nil {
				log.Printf("Error recording login for %s: %s\n", user.Email, err.Error())
			}
			user.LastLoginAt = &loginAt
			s.auth.SetCookie(ctx, token, session.ExpiresAt)
			ctx.JSON(http.StatusOK, gin.H{"data": gin.H{"user": user, "expiresAt": session.ExpiresAt}})
		}).
		POST("/logout", func(ctx *gin.Context) {
			s.auth.Revoke(ctx)
			ctx.JSON(http.StatusOK, gin.H{"message": "Logged out"})
		}).
		GET("/session", func(ctx *gin.Context) {
			cached, err := s.auth.Resolve(ctx)
			if err != nil {
				ctx.JSON(http.StatusUnauthorized, gin.H{"authenticated": false})
				return
			}
			user, err := s.users.FindByID(ctx.Request.Context(), cached.UserID)
			if err != nil {
				ctx.JSON(http.StatusUnauthorized, gin.H{"authenticated": false})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"authenticated": true,
				"user":          user,
				"expiresAt":     cached.ExpiresAt,
			})
		})
	return g
}
