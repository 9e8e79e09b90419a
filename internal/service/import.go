package service

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/hpcprof/internal/parser/binio"
	apperrors "github.com/hpcprof/pkg/errors"
	"github.com/hpcprof/pkg/model"
	"github.com/hpcprof/pkg/telemetry"
)

// ImportResult is the outcome of importing one storage key.
type ImportResult struct {
	Key string
	ID  int64
	Err error
}

// Import fetches key from storage, decodes it and stores the result. It
// returns the id of the stored summary.
func (s *Service) Import(ctx context.Context, key string, endian binio.Endian) (int64, error) {
	if key == "" {
		return 0, apperrors.Wrap(apperrors.CodeInvalidInput, "storage key is required", nil)
	}
	if s.storage == nil || s.repo == nil {
		return 0, apperrors.Wrap(apperrors.CodeConfigError, "service is not initialized", nil)
	}

	workDir, err := os.MkdirTemp(s.config.Import.WorkDir, "hpcprof-import-*")
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeStorageError, "failed to create work directory", err)
	}
	defer os.RemoveAll(workDir)

	localPath := filepath.Join(workDir, path.Base(key))
	if err := s.fetch(ctx, key, localPath); err != nil {
		return 0, err
	}

	reader, err := s.decode(ctx, localPath, endian)
	if err != nil {
		return 0, err
	}
	report, err := buildReport(reader)
	if err != nil {
		return 0, wrapDecode(key, err)
	}
	report.Summary.SourceKey = key
	report.Summary.ProfFile = s.storage.GetURL(key)

	id, err := s.persist(ctx, report)
	if err != nil {
		return 0, err
	}

	s.logger.WithFields(map[string]interface{}{
		"key": key,
		"id":  id,
	}).Info("Imported %s profile (%d groups, %d cost rows)",
		report.Summary.FileType, report.Summary.GroupCount, len(report.Costs()))
	return id, nil
}

// ImportBatch imports every key with at most the configured number of
// workers. Results follow the order of keys; the error combines every
// failed import.
func (s *Service) ImportBatch(ctx context.Context, keys []string, endian binio.Endian) ([]ImportResult, error) {
	results := make([]ImportResult, len(keys))

	g := new(errgroup.Group)
	g.SetLimit(s.workers)

	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			results[i].Key = key
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].ID, results[i].Err = s.Import(ctx, key, endian)
			return nil
		})
	}
	_ = g.Wait()

	var errs error
	for _, r := range results {
		if r.Err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", r.Key, r.Err))
			if apperrors.IsDecodeError(r.Err) {
				s.logger.Warn("Rejected %s: %v", r.Key, r.Err)
			} else {
				s.logger.Error("Import of %s failed: %v", r.Key, r.Err)
			}
		}
	}
	return results, errs
}

// ImportPrefix imports every object under prefix.
func (s *Service) ImportPrefix(ctx context.Context, prefix string, endian binio.Endian) ([]ImportResult, error) {
	if s.storage == nil {
		return nil, apperrors.Wrap(apperrors.CodeConfigError, "service is not initialized", nil)
	}
	keys, err := s.storage.List(ctx, prefix)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorageError, "failed to list "+prefix, err)
	}
	s.logger.Info("Found %d objects under %q", len(keys), prefix)
	return s.ImportBatch(ctx, keys, endian)
}

// List returns up to limit stored summaries, newest first.
func (s *Service) List(ctx context.Context, limit int) ([]*model.ProfileSummary, error) {
	if s.repo == nil {
		return nil, apperrors.Wrap(apperrors.CodeConfigError, "service is not initialized", nil)
	}
	summaries, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, wrapDatabase("failed to list profiles", err)
	}
	return summaries, nil
}

// Show returns a stored profile with its tables.
func (s *Service) Show(ctx context.Context, id int64) (*Report, error) {
	if s.repo == nil {
		return nil, apperrors.Wrap(apperrors.CodeConfigError, "service is not initialized", nil)
	}
	msg := fmt.Sprintf("failed to load profile %d", id)

	summary, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, wrapDatabase(msg, err)
	}
	report := &Report{Summary: summary}
	if report.Events, err = s.repo.EventCounters(ctx, id); err != nil {
		return nil, wrapDatabase(msg, err)
	}

	tables := []struct {
		infoType model.InfoType
		rows     *[]model.ProfilerDprofData
	}{
		{model.InfoTypeCostProcedure, &report.Procedures},
		{model.InfoTypeCostLoop, &report.Loops},
		{model.InfoTypeCostLine, &report.Lines},
		{model.InfoTypeCallGraph, &report.CallGraph},
	}
	for _, table := range tables {
		if *table.rows, err = s.repo.Costs(ctx, id, table.infoType); err != nil {
			return nil, wrapDatabase(msg, err)
		}
	}
	return report, nil
}

// Delete removes a stored profile.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if s.repo == nil {
		return apperrors.Wrap(apperrors.CodeConfigError, "service is not initialized", nil)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return wrapDatabase(fmt.Sprintf("failed to delete profile %d", id), err)
	}
	return nil
}

// fetch downloads key into localPath inside an hpcprof.fetch span.
func (s *Service) fetch(ctx context.Context, key, localPath string) (err error) {
	ctx, span := telemetry.StartSpan(ctx, "hpcprof.fetch")
	defer func() { telemetry.EndSpan(span, err) }()
	span.SetAttributes(attribute.String("hpcprof.key", key))

	s.logger.Debug("Fetching %s", key)
	if err = s.storage.Fetch(ctx, key, localPath); err != nil {
		return wrapStorage(key, err)
	}
	return nil
}

// persist stores the report inside an hpcprof.persist span.
func (s *Service) persist(ctx context.Context, report *Report) (id int64, err error) {
	ctx, span := telemetry.StartSpan(ctx, "hpcprof.persist")
	defer func() { telemetry.EndSpan(span, err) }()

	set := report.recordSet()
	span.SetAttributes(
		attribute.Int("hpcprof.event_rows", len(set.Events)),
		attribute.Int("hpcprof.cost_rows", len(set.Costs)),
	)

	id, err = s.repo.Save(ctx, set)
	if err != nil {
		return 0, wrapDatabase("failed to store "+report.Summary.SourceKey, err)
	}
	span.SetAttributes(attribute.Int64("hpcprof.profile_id", id))
	return id, nil
}
