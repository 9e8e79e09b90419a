package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/hpcprof/internal/parser"
	"github.com/hpcprof/internal/parser/binio"
	"github.com/hpcprof/pkg/model"
	"github.com/hpcprof/pkg/telemetry"
)

// Inspect decodes the local file at path and returns its summary.
func (s *Service) Inspect(ctx context.Context, path string, endian binio.Endian) (*model.ProfileSummary, error) {
	reader, err := s.decode(ctx, path, endian)
	if err != nil {
		return nil, err
	}
	summary, err := reader.Summary()
	if err != nil {
		return nil, wrapDecode(path, err)
	}
	return summary, nil
}

// Report decodes the local file at path and returns every table.
func (s *Service) Report(ctx context.Context, path string, endian binio.Endian) (*Report, error) {
	reader, err := s.decode(ctx, path, endian)
	if err != nil {
		return nil, err
	}
	report, err := buildReport(reader)
	if err != nil {
		return nil, wrapDecode(path, err)
	}
	return report, nil
}

// decode opens path with the registry inside an hpcprof.decode span.
func (s *Service) decode(ctx context.Context, path string, endian binio.Endian) (reader parser.ProfilerReader, err error) {
	_, span := telemetry.StartSpan(ctx, "hpcprof.decode")
	defer func() { telemetry.EndSpan(span, err) }()

	span.SetAttributes(
		attribute.String("hpcprof.path", path),
		attribute.String("hpcprof.endian", endian.String()),
	)

	reader, err = s.registry.Open(path, s.readerOptions(endian))
	if err != nil {
		return nil, wrapDecode(path, err)
	}

	summary, err := reader.Summary()
	if err != nil {
		return nil, wrapDecode(path, err)
	}
	span.SetAttributes(
		attribute.String("hpcprof.file_type", summary.FileType),
		attribute.Int("hpcprof.version", int(summary.Version)),
		attribute.Int("hpcprof.group_count", summary.GroupCount),
	)

	s.logger.Debug("Decoded %s: type=%s version=0x%04x groups=%d",
		path, summary.FileType, uint16(summary.Version), summary.GroupCount)
	return reader, nil
}
