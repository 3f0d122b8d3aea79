package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"filecatalog/internal/config"
	"filecatalog/internal/database"
	"filecatalog/internal/domain/file"
	"filecatalog/internal/middleware"
)

// Server wires the catalog components behind a gin router.
type Server struct {
	cfg    *config.Config
	log    *zap.Logger
	db     *gorm.DB // nil with the memory store
	store  file.Store
	hub    *file.Hub
	router *gin.Engine
}

// OpenStore opens the record store selected by cfg.DatabaseURL and wraps it
// in the lookup cache. db is nil for the memory store.
func OpenStore(cfg *config.Config, log *zap.Logger) (file.Store, *gorm.DB, error) {
	var (
		store file.Store
		db    *gorm.DB
	)

	if cfg.DatabaseURL == config.DatabaseMemory {
		log.Warn("using in-memory store, records will not survive a restart")
		store = file.NewMemoryStore()
	} else {
		var err error
		db, err = database.Connect(cfg.DatabaseURL, log)
		if err != nil {
			return nil, nil, err
		}
		if err := file.AutoMigrate(db); err != nil {
			_ = database.Close(db)
			return nil, nil, fmt.Errorf("failed to migrate: %w", err)
		}
		store = file.NewGormStore(db)
	}

	return file.NewCachedStore(store, cfg.CacheSize, cfg.CacheTTL), db, nil
}

// New builds the server around an already opened store.
func New(cfg *config.Config, store file.Store, db *gorm.DB, log *zap.Logger) *Server {
	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	hub := file.NewHub(log.Named("events"))
	service := file.NewService(store, hub, log.Named("catalog"))
	query := file.NewQuery(store)
	handler := file.NewHandler(service, query, hub, file.NewPresenter(cfg.DateLocale), log.Named("http"))

	s := &Server{cfg: cfg, log: log, db: db, store: store, hub: hub}

	r := gin.New()
	r.Use(middleware.ErrorLogger(log))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.GET("/health", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	file.RegisterRoutes(v1, handler)

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", s.cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.hub.Close()
	if err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// Close releases the database, if any.
func (s *Server) Close() error {
	if s.db == nil {
		return nil
	}
	return database.Close(s.db)
}

func (s *Server) health(c *gin.Context) {
	status := gin.H{"status": "ok", "subscribers": s.hub.Subscribers()}
	if s.db != nil {
		if err := database.Ping(s.db); err != nil {
			s.log.Warn("database ping failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "database unreachable"})
			return
		}
		status["database"] = "ok"
	}
	c.JSON(http.StatusOK, status)
}
