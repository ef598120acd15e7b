package docidx

import (
	"context"
	"time"
)

// Library is a serialized index bundle kept in persistent storage.
type Library struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SourceURL   string    `json:"sourceUrl"`
	ItemCount   int       `json:"itemCount"`
	ContentHash string    `json:"contentHash"`
	Data        []byte    `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate returns an error if the library contains invalid fields.
func (l *Library) Validate() error {
	if l.Name == "" {
		return Errorf(EINVALID, "library name required")
	}
	if len(l.Data) == 0 {
		return Errorf(EINVALID, "library %q: serialized index required", l.Name)
	}
	return nil
}

// LibraryService represents a service for managing stored libraries.
type LibraryService interface {
	// CreateLibrary stores a new library.
	// Returns ECONFLICT if a library with the same name exists.
	CreateLibrary(ctx context.Context, lib *Library) error

	// FindLibraryByName retrieves a library by name.
	// Returns ENOTFOUND if library does not exist.
	FindLibraryByName(ctx context.Context, name string) (*Library, error)

	// FindLibraries retrieves libraries matching the filter.
	FindLibraries(ctx context.Context, filter LibraryFilter) ([]*Library, error)

	// DeleteLibrary permanently removes a library.
	// Returns ENOTFOUND if library does not exist.
	DeleteLibrary(ctx context.Context, id string) error
}

// LibraryFilter represents a filter for FindLibraries.
type LibraryFilter struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// Decoder turns serialized bytes into indexes.
type Decoder interface {
	// Decode returns every library held in data. Decoding is atomic: on
	// error no index is returned.
	Decode(data []byte) ([]*Index, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(data []byte) ([]*Index, error)

// Decode calls f(data).
func (f DecoderFunc) Decode(data []byte) ([]*Index, error) {
	return f(data)
}

// ScriptLocator finds the search index script referenced by a generated
// documentation page.
type ScriptLocator interface {
	// Locate returns the absolute URL of the index script referenced by the
	// HTML of the page at pageURL. Returns ENOTFOUND if the page references none.
	Locate(html, pageURL string) (string, error)
}
