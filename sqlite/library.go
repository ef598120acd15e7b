package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/docidx"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ docidx.LibraryService = (*LibraryService)(nil)

// LibraryService implements docidx.LibraryService using SQLite.
// Serialized bundles are stored zstd-compressed.
type LibraryService struct {
	db    *DB
	codec *codec
}

// NewLibraryService creates a new LibraryService.
func NewLibraryService(db *DB) (*LibraryService, error) {
	c, err := newCodec()
	if err != nil {
		return nil, err
	}
	return &LibraryService{db: db, codec: c}, nil
}

// CreateLibrary stores a new library.
func (s *LibraryService) CreateLibrary(ctx context.Context, lib *docidx.Library) error {
	if err := lib.Validate(); err != nil {
		return err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM libraries WHERE name = ?`, lib.Name).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return docidx.Errorf(docidx.ECONFLICT, "library %q already exists", lib.Name)
	}

	lib.ID = uuid.New().String()
	lib.ContentHash = HashContent(lib.Data)
	now := time.Now().UTC()
	lib.CreatedAt = now
	lib.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO libraries (id, name, source_url, item_count, content_hash, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, lib.ID, lib.Name, lib.SourceURL, lib.ItemCount, lib.ContentHash, s.codec.compress(lib.Data),
		lib.CreatedAt.Format(time.RFC3339), lib.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindLibraryByName retrieves a library by name.
func (s *LibraryService) FindLibraryByName(ctx context.Context, name string) (*docidx.Library, error) {
	libs, err := s.FindLibraries(ctx, docidx.LibraryFilter{Name: &name, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(libs) == 0 {
		return nil, docidx.Errorf(docidx.ENOTFOUND, "library %q not found", name)
	}
	return libs[0], nil
}

// FindLibraries retrieves libraries matching the filter, ordered by name.
func (s *LibraryService) FindLibraries(ctx context.Context, filter docidx.LibraryFilter) ([]*docidx.Library, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, name, source_url, item_count, content_hash, data, created_at, updated_at FROM libraries WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY name ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var libs []*docidx.Library
	for rows.Next() {
		lib, err := s.scanLibrary(rows)
		if err != nil {
			return nil, err
		}
		libs = append(libs, lib)
	}

	return libs, rows.Err()
}

func (s *LibraryService) scanLibrary(rows *sql.Rows) (*docidx.Library, error) {
	var lib docidx.Library
	var data []byte
	var createdAt, updatedAt string

	if err := rows.Scan(&lib.ID, &lib.Name, &lib.SourceURL, &lib.ItemCount, &lib.ContentHash, &data,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if lib.Data, err = s.codec.decompress(data); err != nil {
		return nil, err
	}
	if lib.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if lib.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &lib, nil
}

// DeleteLibrary permanently removes a library.
func (s *LibraryService) DeleteLibrary(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM libraries WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return docidx.Errorf(docidx.ENOTFOUND, "library not found")
	}

	return nil
}
