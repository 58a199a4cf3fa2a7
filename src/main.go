package main

import (
	"context"
	"cycleparadise/src/apperror"
	"cycleparadise/src/boot"
	"cycleparadise/src/config"
	"cycleparadise/src/db"
	"cycleparadise/src/lib"
	"cycleparadise/src/lib/mailer"
	"cycleparadise/src/lib/storage"
	"cycleparadise/src/middlewares"
	"cycleparadise/src/utils"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path"
	"reflect"
	"regexp"
	"strings"
	"syscall"
	"time"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	apiPrefix string = "/api/v1"
)

var errMaintenance = errors.New("server is under maintenance")

var isoDate validator.Func = func(fl validator.FieldLevel) bool {
	_, err := utils.ParseDate(fl.Field().String())
	return err == nil
}

// afterDate checks that the field is strictly later than the named sibling.
var afterDate validator.Func = func(fl validator.FieldLevel) bool {
	date, err := utils.ParseDate(fl.Field().String())
	if err != nil {
		return false
	}
	field := fl.Parent().FieldByName(fl.Param())
	if !field.IsValid() || field.Kind() != reflect.String {
		return false
	}
	other, err := utils.ParseDate(field.String())
	if err != nil {
		return false
	}
	return date.After(other)
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		v.RegisterValidation("isodate", isoDate)
		v.RegisterValidation("afterdate", afterDate)
	}
}

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(middlewares.SecureHeaders)
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})
	return router
}

func maintenanceModeMiddleware(g *gin.Engine, enabled bool) *gin.Engine {
	g.Use(func(ctx *gin.Context) {
		if enabled {
			log.Println(errMaintenance.Error())
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error":   "Service Unavailable",
				"message": errMaintenance.Error(),
			})
			return
		}
	})
	return g
}

func apiv1Group(g *gin.Engine) *gin.RouterGroup {
	apiv1 := g.Group(apiPrefix)
	return apiv1
}

// corsMiddleware allows any origin locally. Elsewhere only origins matching
// APP_HOST may send credentials.
func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	if cfg.APIEnv == "local" {
		return cors.Default()
	}
	cc := cors.DefaultConfig()
	cc.AllowMethods = append(cc.AllowMethods, "GET", "POST", "PATCH", "PUT", "DELETE", "HEAD")
	cc.AllowHeaders = append(cc.AllowHeaders, "Origin", "Content-Type", "Cookie")
	cc.ExposeHeaders = append(cc.ExposeHeaders, "Content-Disposition")
	cc.AllowOriginFunc = func(origin string) bool {
		if cfg.AppHost == "" {
			return false
		}
		match, err := regexp.MatchString(cfg.AppHost, origin)
		if err != nil {
			log.Printf("Invalid APP_HOST pattern %q: %s\n", cfg.AppHost, err.Error())
			return false
		}
		return match
	}
	cc.AllowCredentials = true
	cc.AllowAllOrigins = false
	return cors.New(cc)
}

func initLogger() {
	cwd, _ := os.Getwd()
	logDir := path.Join(cwd, "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.Printf("Error creating log directory: %s\n", err.Error())
		return
	}
	gin.ForceConsoleColor()

	f, err := os.Create(path.Join(logDir, "api.log"))
	if err == nil {
		gin.DefaultWriter = io.MultiWriter(f, os.Stdout)
	}
	log.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
		Filename:   path.Join(logDir, "server.log"),
		MaxSize:    500,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	}))
}

// newEngine builds the full router around s.
func newEngine(cfg *config.Config, s *server) *gin.Engine {
	registerValidators()
	router := setupRouter()
	router.Use(corsMiddleware(cfg))
	router = maintenanceModeMiddleware(router, cfg.MaintenanceMode)
	if _, ok := s.store.(*storage.LocalStore); ok {
		router.Static(cfg.UploadURL, cfg.UploadDir)
	}
	router.NoRoute(func(ctx *gin.Context) {
		apperror.Respond(ctx, apperror.NewNotFoundError("Route not found", ""))
	})
	s.routes(router)
	return router
}

func main() {
	if os.Getenv("API_ENV") == "local" {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil {
			log.Printf("Error loading .env: %s\n", err.Error())
		}
	}
	initLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("Error loading config: %s", err.Error())
	}
	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	conn, err := db.Open(cfg.DSN(), !cfg.IsProd())
	if err != nil {
		log.Fatalf("Error opening database: %s", err.Error())
	}
	defer db.Close(conn)
	if err := boot.InitDb(conn); err != nil {
		log.Fatalf("Error migrating database: %s", err.Error())
	}

	rdb, err := lib.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Printf("[redis] session cache disabled: %s\n", err.Error())
	}
	if rdb != nil {
		defer rdb.Close()
	}

	transport, err := mailer.NewTransport(ctx, cfg)
	if err != nil {
		log.Fatalf("Error configuring mail transport: %s", err.Error())
	}
	notifier := mailer.NewNotifier(transport, cfg)
	if err := notifier.Verify(ctx); err != nil {
		log.Printf("[MAILER] %s transport not ready: %s\n", notifier.Transport(), err.Error())
	}

	store, err := storage.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Error configuring media storage: %s", err.Error())
	}
	log.Printf("Media storage: %s\n", store.Name())

	s := newServer(cfg, conn, lib.NewSessionCache(rdb), notifier, store)

	sched, err := lib.NewScheduler()
	if err != nil {
		log.Fatalf("Error creating scheduler: %s", err.Error())
	}
	if err := boot.InitScheduler(sched, s.sessions); err != nil {
		log.Printf("Error registering jobs: %s\n", err.Error())
	}
	if err := boot.InitEmailConsumer(ctx, sched, cfg); err != nil {
		log.Printf("Error starting email consumer: %s\n", err.Error())
	}
	sched.Start()
	defer boot.StopScheduler(sched)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newEngine(cfg, s),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("Listening on %s\n", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting server: %s", err.Error())
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down server: %s\n", err.Error())
	}
}
