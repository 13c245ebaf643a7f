package promotion

import (
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/rs/zerolog"

	"anchor/internal/metrics"
)

// catalogFile is the on-disk shape of the promotions catalog.
type catalogFile struct {
	Promotions []Promotion `json:"promotions"`
}

// InvalidRecord is a catalog entry that failed shape validation, kept so a
// monitoring hook can see what was dropped instead of only a log line.
type InvalidRecord struct {
	ID     string
	Reason string
}

// Catalog holds the validated promotions in catalog order, plus the records
// that were rejected. Read-only after construction.
type Catalog struct {
	Promotions []Promotion
	Invalid    []InvalidRecord
}

// Load reads and validates the promotions catalog. Invalid records are
// dropped and reported; a single bad entry must not take the catalog down.
// A missing or unparsable file degrades to an empty catalog with an error
// the caller can log.
func Load(path string, logger *zerolog.Logger) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Catalog{}, fmt.Errorf("read promotions catalog: %w", err)
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return &Catalog{}, fmt.Errorf("parse promotions catalog: %w", err)
	}

	catalog := &Catalog{}
	for i, p := range file.Promotions {
		if err := p.Validate(); err != nil {
			catalog.Invalid = append(catalog.Invalid, InvalidRecord{ID: p.ID, Reason: err.Error()})
			metrics.IncCatalogInvalid()
			logger.Warn().
				Int("index", i).
				Str("id", p.ID).
				Err(err).
				Msg("dropping invalid promotion record")
			continue
		}
		catalog.Promotions = append(catalog.Promotions, p)
	}

	return catalog, nil
}

// ByID returns a validated promotion by its identifier, or nil if absent.
// Used by the preview endpoint; a miss is a normal state, not an error.
func (c *Catalog) ByID(id string) *Promotion {
	for i := range c.Promotions {
		if c.Promotions[i].ID == id {
			return &c.Promotions[i]
		}
	}
	return nil
}

// Store holds the current catalog and allows the watcher to swap it in
// atomically while requests read it.
type Store struct {
	current atomic.Pointer[Catalog]
}

// NewStore creates a store seeded with the given catalog.
func NewStore(catalog *Catalog) *Store {
	s := &Store{}
	if catalog == nil {
		catalog = &Catalog{}
	}
	s.current.Store(catalog)
	return s
}

// Catalog returns the current catalog.
func (s *Store) Catalog() *Catalog {
	return s.current.Load()
}

// Replace swaps in a new catalog. Nil is ignored.
func (s *Store) Replace(catalog *Catalog) {
	if catalog == nil {
		return
	}
	s.current.Store(catalog)
}
