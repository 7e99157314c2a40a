// Package maps loads map definitions and turns them into terrain worlds and
// collision gates. This package depends on terrain but terrain does not
// depend on maps.
package maps

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/canyonwalk/internal/maps/formats"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Loader handles loading maps from a file system.
type Loader struct {
	fsys fs.FS
	root string
}

// NewLoader creates a loader over a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{fsys: os.DirFS(root), root: "."}
}

// NewFSLoader creates a loader over dir inside fsys.
func NewFSLoader(fsys fs.FS, dir string) *Loader {
	return &Loader{fsys: fsys, root: dir}
}

// Builtin returns a loader over the maps compiled into the binary.
func Builtin() *Loader {
	return NewFSLoader(builtinFS, "builtin")
}

// LoadAll recursively scans and loads all map files.
// Invalid files are skipped. Returns maps sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Map, error) {
	var maps []Map

	err := fs.WalkDir(l.fsys, l.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		m, err := l.LoadFile(p)
		if err != nil {
			return nil
		}
		maps = append(maps, m)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("maps: walking %s: %w", l.root, err)
	}

	sort.Slice(maps, func(i, j int) bool {
		return maps[i].ID < maps[j].ID
	})
	return maps, nil
}

// LoadFile loads and validates a single map file from the loader's file system.
func (l *Loader) LoadFile(p string) (Map, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Map{}, fmt.Errorf("maps: reading %s: %w", p, err)
	}
	return decode(data, p)
}

// LoadByID loads a specific map by ID.
func (l *Loader) LoadByID(id string) (Map, error) {
	maps, err := l.LoadAll()
	if err != nil {
		return Map{}, err
	}
	for _, m := range maps {
		if m.ID == id {
			return m, nil
		}
	}
	return Map{}, fmt.Errorf("maps: map not found: %s", id)
}

// ListIDs returns all map IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	maps, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(maps))
	for i, m := range maps {
		ids[i] = m.ID
	}
	return ids, nil
}

// LoadPath loads and validates a map file from an arbitrary path on disk.
func LoadPath(p string) (Map, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Map{}, fmt.Errorf("maps: reading %s: %w", p, err)
	}
	return decode(data, p)
}

func decode(data []byte, p string) (Map, error) {
	ext := strings.ToLower(path.Ext(p))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Map{}, fmt.Errorf("maps: %s: %w", p, err)
	}

	m, err := fromYAML(parsed)
	if err != nil {
		return Map{}, fmt.Errorf("maps: %s: %w", p, err)
	}
	m.FilePath = p

	if err := m.Validate(); err != nil {
		return Map{}, fmt.Errorf("maps: %s: %w", p, err)
	}
	return m, nil
}

func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

func parseByExtension(data []byte, ext string) (formats.YAMLMap, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.YAMLMap{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
