package main

import (
	"context"
	"cycleparadise/src/apperror"
	"cycleparadise/src/middlewares"
	"cycleparadise/src/models"
	"cycleparadise/src/types"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var errSelfDelete = apperror.NewValidationError("You cannot delete your own account", "id", "")

// evictSessions forgets cached sessions of a user whose account changed,
// so role and active flag are re-checked on the next request.
func (s *server) evictSessions(ctx context.Context, userID uuid.UUID) {
	ids, err := s.sessions.IDsForUser(ctx, userID)
	if err != nil {
		log.Printf("Error listing sessions of %s: %s\n", userID, err.Error())
		return
	}
	s.auth.Evict(ctx, ids...)
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *server) userHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	users := g.Group("/users")
	users.Use(middlewares.RequireRole(types.ROLE_ADMIN))
	users.
		GET("", func(ctx *gin.Context) {
			list, err := s.users.FindAll(ctx.Request.Context())
			if err != nil {
				apperror.Respond(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": list, "count": len(list)})
		}).
		POST("", func(ctx *gin.Context) {
			var body types.CreateAdminUserRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				bindError(ctx, err)
				return
			}
			hash, err := hashPassword(body.Password)
			if err != nil {
				log.Printf("Error hashing password: %s\n", err.Error())
				apperror.Respond(ctx, err)
				return
			}
			user := models.AdminUser{
				Email:        strings.ToLower(strings.TrimSpace(body.Email)),
				PasswordHash: hash,
				FirstName:    body.FirstName,
				LastName:     body.LastName,
				Role:         types.ROLE_EDITOR,
				IsActive:     true,
			}
			if body.Role != "" {
				user.Role = body.Role
			}
			if body.IsActive != nil {
				user.IsActive = *body.IsActive
			}
			if err := s.users.Create(ctx.Request.Context(), &user); err != nil {
				apperror.Respond(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": user})
		}).
		PUT("/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				bindError(ctx, err)
				return
			}
			var body types.UpdateAdminUserRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				bindError(ctx, err)
				return
			}
			c := ctx.Request.Context()
			user, err := s.users.FindByID(c, uuid.MustParse(params.ID))
			if err != nil {
				apperror.Respond(ctx, err)
				return
			}
			if body.Email != nil {
				user.Email = strings.ToLower(strings.TrimSpace(*body.Email))
			}
			if body.FirstName != nil {
				user.FirstName = *body.FirstName
			}
			if body.LastName != nil {
				user.LastName = *body.LastName
			}
			if body.Role != nil {
				user.Role = *body.Role
			}
			if body.IsActive != nil {
				user.IsActive = *body.IsActive
			}
			if body.Password != nil {
				hash, err := hashPassword(*body.Password)
				if err != nil {
					log.Printf("Error hashing password: %s\n", err.Error())
					apperror.Respond(ctx, err)
					return
				}
				user.PasswordHash = hash
			}
			if err := s.users.Update(c, user); err != nil {
				apperror.Respond(ctx, err)
				return
			}
			s.evictSessions(c, user.ID)
			ctx.JSON(http.StatusOK, gin.H{"data": user})
		}).
		DELETE("/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				bindError(ctx, err)
				return
			}
			id := uuid.MustParse(params.ID)
			if id == middlewares.AdminID(ctx) {
				apperror.Respond(ctx, errSelfDelete)
				return
			}
			c := ctx.Request.Context()
			ids, err := s.sessions.IDsForUser(c, id)
			if err != nil {
				log.Printf("Error listing sessions of %s: %s\n", id, err.Error())
			}
			if err := s.users.Delete(c, id); err != nil {
				apperror.Respond(ctx, err)
				return
			}
			s.auth.Evict(c, ids...)
			ctx.JSON(http.StatusOK, gin.H{"success": true})
		})
	return users
}
