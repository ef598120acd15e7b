package mock

import (
	"context"

	"github.com/fwojciec/docidx"
)

var _ docidx.LibraryService = (*LibraryService)(nil)

// LibraryService is a mock implementation of docidx.LibraryService.
type LibraryService struct {
	CreateLibraryFn     func(ctx context.Context, lib *docidx.Library) error
	FindLibraryByNameFn func(ctx context.Context, name string) (*docidx.Library, error)
	FindLibrariesFn     func(ctx context.Context, filter docidx.LibraryFilter) ([]*docidx.Library, error)
	DeleteLibraryFn     func(ctx context.Context, id string) error
}

func (s *LibraryService) CreateLibrary(ctx context.Context, lib *docidx.Library) error {
	return s.CreateLibraryFn(ctx, lib)
}

func (s *LibraryService) FindLibraryByName(ctx context.Context, name string) (*docidx.Library, error) {
	return s.FindLibraryByNameFn(ctx, name)
}

func (s *LibraryService) FindLibraries(ctx context.Context, filter docidx.LibraryFilter) ([]*docidx.Library, error) {
	return s.FindLibrariesFn(ctx, filter)
}

func (s *LibraryService) DeleteLibrary(ctx context.Context, id string) error {
	return s.DeleteLibraryFn(ctx, id)
}
