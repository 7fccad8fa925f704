// Package directory provides relay point directory sources: a JSON seed file and a
// PostgreSQL table read through pgx.
package directory

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"pickdrop/internal/core/domain/model/relaypoint"
	"pickdrop/internal/core/ports"
)

//go:embed seed/yaounde.json
var seedFS embed.FS

// DefaultSeedPath names the built-in Yaoundé seed inside SeedFS.
const DefaultSeedPath = "seed/yaounde.json"

var _ ports.RelayPointDirectory = &JSONFile{}

// JSONFile reads relay points from a JSON array of relaypoint.Record.
type JSONFile struct {
	fsys fs.FS
	path string
}

// NewJSONFile reads path from the local filesystem.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{fsys: os.DirFS(filepath.Dir(path)), path: filepath.Base(path)}
}

// NewJSONFileFS reads path from fsys.
func NewJSONFileFS(fsys fs.FS, path string) *JSONFile {
	return &JSONFile{fsys: fsys, path: path}
}

// SeedFile is the embedded Yaoundé seed.
func SeedFile() *JSONFile {
	return NewJSONFileFS(seedFS, DefaultSeedPath)
}

func (f *JSONFile) Fetch(ctx context.Context) ([]relaypoint.RelayPoint, error) {
	records, err := f.Records(ctx)
	if err != nil {
		return nil, err
	}
	return relaypoint.FromRecords(records)
}

// Records returns the raw entries, for seeding other directories.
func (f *JSONFile) Records(ctx context.Context) ([]relaypoint.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(f.fsys, f.path)
	if err != nil {
		return nil, fmt.Errorf("read relay points: open %q: %w", f.path, err)
	}

	var records []relaypoint.Record
	if err = json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("read relay points: decode %q: %w", f.path, err)
	}
	return records, nil
}
