package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docidx"
)

// Ensure LoggingLibraryService implements docidx.LibraryService.
var _ docidx.LibraryService = (*LoggingLibraryService)(nil)

// LoggingLibraryService wraps a LibraryService with debug logging.
type LoggingLibraryService struct {
	next   docidx.LibraryService
	logger *slog.Logger
}

// NewLoggingLibraryService creates a new LoggingLibraryService.
func NewLoggingLibraryService(next docidx.LibraryService, logger *slog.Logger) *LoggingLibraryService {
	return &LoggingLibraryService{next: next, logger: logger}
}

// CreateLibrary delegates to the wrapped service and logs the stored size.
func (s *LoggingLibraryService) CreateLibrary(ctx context.Context, lib *docidx.Library) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("create library",
			"name", lib.Name,
			"items", lib.ItemCount,
			"bytes", len(lib.Data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateLibrary(ctx, lib)
}

// FindLibraryByName delegates to the wrapped service.
func (s *LoggingLibraryService) FindLibraryByName(ctx context.Context, name string) (lib *docidx.Library, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find library",
			"name", name,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindLibraryByName(ctx, name)
}

// FindLibraries delegates to the wrapped service.
func (s *LoggingLibraryService) FindLibraries(ctx context.Context, filter docidx.LibraryFilter) (libs []*docidx.Library, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find libraries",
			"count", len(libs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindLibraries(ctx, filter)
}

// DeleteLibrary delegates to the wrapped service.
func (s *LoggingLibraryService) DeleteLibrary(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("delete library",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteLibrary(ctx, id)
}
