// Package service wires storage, decoding and persistence into the
// operations behind the hpcprof commands.
package service

import (
	"context"
	"fmt"
	"runtime"

	"github.com/hpcprof/internal/parser"
	"github.com/hpcprof/internal/parser/binio"
	"github.com/hpcprof/internal/parser/prof"
	"github.com/hpcprof/internal/repository"
	"github.com/hpcprof/internal/storage"
	"github.com/hpcprof/pkg/config"
	"github.com/hpcprof/pkg/utils"
)

// Service is the main application service.
type Service struct {
	config   *config.Config
	logger   utils.Logger
	db       *repository.Repositories
	repo     repository.ProfileRepository
	storage  storage.Storage
	registry *parser.Registry
	charset  binio.Charset
	workers  int
}

// Option customizes a Service.
type Option func(*Service)

// WithStorage uses store instead of the configured storage.
func WithStorage(store storage.Storage) Option {
	return func(s *Service) { s.storage = store }
}

// WithRepository uses repo instead of opening the configured database.
func WithRepository(repo repository.ProfileRepository) Option {
	return func(s *Service) { s.repo = repo }
}

// WithRegistry decodes with registry instead of the default one.
func WithRegistry(registry *parser.Registry) Option {
	return func(s *Service) { s.registry = registry }
}

// WithWorkers bounds the number of concurrent imports in a batch.
func WithWorkers(n int) Option {
	return func(s *Service) { s.workers = n }
}

// New creates a new Service instance.
func New(cfg *config.Config, logger utils.Logger, opts ...Option) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		logger = &utils.NullLogger{}
	}

	charset, err := binio.LookupCharset(cfg.Decode.Charset)
	if err != nil {
		return nil, fmt.Errorf("invalid decode charset: %w", err)
	}

	s := &Service{
		config:   cfg,
		logger:   logger,
		registry: parser.DefaultRegistry(),
		charset:  charset,
		workers:  runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers < 1 {
		s.workers = 1
	}
	return s, nil
}

// Initialize connects the components that were not injected.
func (s *Service) Initialize(ctx context.Context) error {
	if err := s.initStorage(); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	if err := s.initDatabase(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	return nil
}

// InitializeStorage connects only the profile source, for commands that do
// not touch the database.
func (s *Service) InitializeStorage() error {
	return s.initStorage()
}

// initDatabase opens the database and migrates the profile tables.
func (s *Service) initDatabase() error {
	if s.repo != nil {
		return nil
	}
	s.logger.Debug("Connecting to database (%s)...", s.config.Database.Type)

	repos, err := repository.Open(&s.config.Database)
	if err != nil {
		return err
	}
	s.db = repos
	s.repo = repos.Profile
	return nil
}

// initStorage creates the profile source.
func (s *Service) initStorage() error {
	if s.storage != nil {
		return nil
	}
	s.logger.Debug("Initializing storage (%s)...", s.config.Storage.Type)

	store, err := storage.NewStorage(&s.config.Storage)
	if err != nil {
		return err
	}
	s.storage = store
	return nil
}

// Stop releases the database connection.
func (s *Service) Stop() error {
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection: %v", err)
			return err
		}
	}
	return nil
}

// HealthCheck performs a health check on the service.
func (s *Service) HealthCheck(ctx context.Context) error {
	if s.db != nil {
		if err := s.db.HealthCheck(ctx); err != nil {
			return fmt.Errorf("database health check failed: %w", err)
		}
	}
	return nil
}

// DefaultEndian returns the configured byte order.
func (s *Service) DefaultEndian() binio.Endian {
	endian, err := binio.ParseEndian(s.config.Decode.Endian)
	if err != nil {
		return binio.LittleEndian
	}
	return endian
}

// readerOptions builds decode options for one file.
func (s *Service) readerOptions(endian binio.Endian) *prof.ReaderOptions {
	return &prof.ReaderOptions{
		Endian:  endian,
		Charset: s.charset,
		Logger:  s.logger,
	}
}
