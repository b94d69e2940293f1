package catalog

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// fileLoader implements Source for a gzipped JSON catalog document on disk.
type fileLoader struct {
	path   string
	logger zerolog.Logger
}

// NewFileLoader creates a catalog source reading the gzipped document at path.
func NewFileLoader(path string, logger zerolog.Logger) Source {
	return &fileLoader{
		path:   path,
		logger: logger.With().Str("component", "catalog-file-loader").Logger(),
	}
}

// Load reads and validates the catalog file.
func (l *fileLoader) Load(ctx context.Context) (*Catalog, error) {
	l.logger.Info().Str("file", l.path).Msg("loading catalog file")

	file, err := os.Open(l.path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", l.path).Msg("failed to open catalog file")
		return nil, fmt.Errorf("failed to open catalog file %s: %w", l.path, err)
	}
	defer file.Close()

	c, err := decode(ctx, file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", l.path).Msg("failed to decode catalog file")
		return nil, fmt.Errorf("failed to decode catalog file %s: %w", l.path, err)
	}

	l.logger.Info().
		Str("file", l.path).
		Int("categories", len(c.categories)).
		Int("foods", len(c.foods)).
		Msg("catalog file loaded successfully")

	return c, nil
}

// decode reads a gzipped JSON Document from r and builds the catalog.
func decode(ctx context.Context, r io.Reader) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	var doc Document
	if err := json.NewDecoder(gzipReader).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog document: %w", err)
	}

	return doc.Build()
}

// Encode writes doc to w as gzipped JSON, the format read by the file and S3
// sources.
func Encode(w io.Writer, doc Document) error {
	gzipWriter := gzip.NewWriter(w)
	encoder := json.NewEncoder(gzipWriter)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		gzipWriter.Close()
		return fmt.Errorf("failed to encode catalog document: %w", err)
	}
	return gzipWriter.Close()
}

// fallbackSource tries a primary source and falls back to a secondary one.
type fallbackSource struct {
	primary   Source
	secondary Source
	logger    zerolog.Logger
}

// NewFallbackSource creates a source that uses secondary when primary fails.
func NewFallbackSource(primary, secondary Source, logger zerolog.Logger) Source {
	return &fallbackSource{
		primary:   primary,
		secondary: secondary,
		logger:    logger.With().Str("component", "catalog-fallback").Logger(),
	}
}

// Load attempts the primary source first.
func (s *fallbackSource) Load(ctx context.Context) (*Catalog, error) {
	c, err := s.primary.Load(ctx)
	if err == nil {
		return c, nil
	}

	s.logger.Warn().
		Err(err).
		Msg("failed to load catalog from primary source, falling back")

	return s.secondary.Load(ctx)
}
