package main

import (
	"cycleparadise/src/apperror"
	"cycleparadise/src/config"
	"cycleparadise/src/lib"
	"cycleparadise/src/lib/mailer"
	"cycleparadise/src/lib/storage"
	"cycleparadise/src/middlewares"
	"cycleparadise/src/repositories"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// server carries the dependencies every handler needs.
type server struct {
	cfg       *config.Config
	auth      *middlewares.Auth
	bookings  *repositories.BookingRepository
	packages  *repositories.PackageRepository
	guides    *repositories.GuideRepository
	users     *repositories.UserRepository
	sessions  *repositories.SessionRepository
	media     *repositories.MediaRepository
	dashboard *repositories.DashboardRepository
	notifier  *mailer.Notifier
	store     storage.Store
	now       func() time.Time
}

func newServer(cfg *config.Config, conn *gorm.DB, cache *lib.SessionCache, notifier *mailer.Notifier, store storage.Store) *server {
	sessions := repositories.NewSessionRepository(conn)
	return &server{
		cfg:       cfg,
		auth:      middlewares.NewAuth(cfg.SessionSecret, sessions, cache, cfg.IsProd()),
		bookings:  repositories.NewBookingRepository(conn),
		packages:  repositories.NewPackageRepository(conn),
		guides:    repositories.NewGuideRepository(conn),
		users:     repositories.NewUserRepository(conn),
		sessions:  sessions,
		media:     repositories.NewMediaRepository(conn),
		dashboard: repositories.NewDashboardRepository(conn),
		notifier:  notifier,
		store:     store,
		now:       time.Now,
	}
}

// routes mounts every handler group under the api prefix.
func (s *server) routes(g *gin.Engine) {
	apiv1 := apiv1Group(g)
	s.publicBookingHandlers(apiv1)
	s.publicPackageHandlers(apiv1)
	s.publicGuideHandlers(apiv1)
	s.authHandlers(apiv1.Group("/admin/auth"))

	admin := apiv1.Group("/admin")
	admin.Use(s.auth.Require)
	{
		s.adminBookingHandlers(admin)
		s.adminPackageHandlers(admin)
		s.adminGuideHandlers(admin)
		s.mediaHandlers(admin)
		s.dashboardHandlers(admin)
		s.userHandlers(admin)
	}
}

// bindError turns a gin binding failure into a 400 naming the first bad field.
func bindError(ctx *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		var message string
		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", fe.Field())
		case "isodate":
			message = fmt.Sprintf("%s must be a valid date", fe.Field())
		case "afterdate":
			other := fe.Param()
			if other != "" {
				other = strings.ToLower(other[:1]) + other[1:]
			}
			message = fmt.Sprintf("%s must be after %s", fe.Field(), other)
		default:
			message = fmt.Sprintf("Invalid value for %s", fe.Field())
		}
		apperror.Respond(ctx, apperror.NewValidationError(message, fe.Field(), ""))
		return
	}
	apperror.Respond(ctx, apperror.NewValidationError("Invalid request body", "", ""))
}
