package container

import (
	"context"
	"fmt"
	"os"
	"strings"

	"agrismart/adapters/excel"
	"agrismart/adapters/filestore"
	"agrismart/adapters/forest"
	"agrismart/adapters/history"
	"agrismart/adapters/rng"
	"agrismart/adapters/synthesizer"
	"agrismart/app"
	"agrismart/internal"
	"agrismart/internal/config"
	"agrismart/ports"

	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	DB *sqlx.DB

	// Adapters
	RNG       ports.RNGPort
	Generator ports.DatasetGenerator
	Forests   ports.EnsembleFactory
	Store     ports.ArtifactStore
	Exporter  ports.DatasetExporter
	Reader    ports.DatasetReader
	History   ports.PredictionRepository

	// Services
	Trainer *app.TrainerService
}

// New creates a new dependency injection container. The history database is
// only opened by InitHistory.
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = NewLogger(cfg.Log)
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	r := rng.New()
	c.RNG = r
	c.Generator = synthesizer.NewGenerator(r, logger)
	c.Forests = forest.NewFactory(r, logger)
	c.Store = filestore.New(cfg.Model.Dir, logger)
	c.Exporter = excel.NewExporter(logger)
	c.Reader = excel.NewDataReader(logger)
	c.Trainer = app.NewTrainerService(c.Generator, c.Forests, c.Store, logger)

	return c, nil
}

// NewLogger builds the process logger from configuration
func NewLogger(cfg config.LogConfig) *internal.Logger {
	level := internal.ParseLogLevel(cfg.Level)
	if strings.EqualFold(cfg.Format, "json") {
		return internal.NewLogger(level, os.Stderr)
	}
	return internal.NewConsoleLogger(level, os.Stderr)
}

// InitHistory opens the prediction history database when one is configured
func (c *Container) InitHistory(ctx context.Context) error {
	if !c.Config.History.Enabled() {
		return nil
	}
	db, err := history.Open(ctx, c.Config.History.Driver, c.Config.History.DSN)
	if err != nil {
		return err
	}
	c.DB = db
	c.History = history.NewRepository(db)
	c.Logger.Debug("prediction history enabled (%s)", c.Config.History.Driver)
	return nil
}

// TrainingOptions maps model configuration onto trainer options
func (c *Container) TrainingOptions() app.TrainingOptions {
	m := c.Config.Model
	return app.TrainingOptions{
		Samples:      m.Samples,
		Seed:         m.Seed,
		TestFraction: m.TestFraction,
		YieldTrees:   m.YieldTrees,
		CropTrees:    m.CropTrees,
	}
}

// Predictor loads or trains a bundle and returns a ready predictor
func (c *Container) Predictor(ctx context.Context) (*app.Predictor, error) {
	return app.Bootstrap(ctx, app.BootstrapDeps{
		Store:   c.Store,
		Trainer: c.Trainer,
		Options: c.TrainingOptions(),
		History: c.History,
		Logger:  c.Logger,
	})
}

// Close releases the history database
func (c *Container) Close() error {
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
