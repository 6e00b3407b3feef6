package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/igabaycare/clinic-core/internal/audit"
	"github.com/igabaycare/clinic-core/internal/config"
	dbpkg "github.com/igabaycare/clinic-core/internal/db"
	"github.com/igabaycare/clinic-core/internal/infra/archive"
	"github.com/igabaycare/clinic-core/internal/infra/cache"
	infraRepo "github.com/igabaycare/clinic-core/internal/infra/repository"
	"github.com/igabaycare/clinic-core/internal/logging"
	"github.com/igabaycare/clinic-core/internal/routes"
)

func main() {

	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.Env)

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

// run serves until the listener fails. Deferred shutdown steps, including
// draining queued audit events, always complete before it returns.
func run(cfg *config.Config, log zerolog.Logger) error {

	var (
		store    routes.Store
		recorder audit.Recorder
	)

	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		log.Warn().Msg("using in-memory store, data is lost on restart")
		store = infraRepo.NewClinicMemoryRepository()
		recorder = audit.NewLogRecorder(log)
	default:
		db := dbpkg.NewDB(cfg, log)
		store = infraRepo.NewClinicGormRepository(db)
		recorder = audit.New(db)
	}

	dispatcher := audit.NewDispatcher(recorder, log)
	defer func() {
		dispatcher.Close()
		log.Info().Msg("audit dispatcher drained")
	}()

	deps := routes.Deps{
		Store: store,
		Audit: dispatcher,
		Log:   log,
	}

	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err := cache.NewClient(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, patient cache disabled")
		} else {
			defer rdb.Close()
			deps.Patients = cache.NewPatientDirectory(store, rdb, cfg.PatientCacheTTL, log)
		}
	}

	if cfg.S3Bucket != "" {
		client := archive.NewS3Client(archive.S3Options{
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		deps.Archive = archive.NewPrescriptionStore(client, cfg.S3Bucket, log)
		log.Info().Str("bucket", cfg.S3Bucket).Msg("prescription archive enabled")
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, cfg, deps)

	log.Info().Str("addr", cfg.Addr()).Str("store", cfg.StoreDriver).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Addr(), err)
	}
	return nil
}
