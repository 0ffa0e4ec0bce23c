package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/balbriggan-gardens/garden/internal/domain"
	"github.com/balbriggan-gardens/garden/internal/logger"
)

// Resource names a content collection backed by <name>.json in the data dir
type Resource string

const (
	Tips   Resource = "tips"
	Plants Resource = "plants"
	Videos Resource = "videos"
)

// FileName returns the file backing the resource
func (r Resource) FileName() string {
	return string(r) + ".json"
}

// ErrNotList is returned when a resource file parses but is not a JSON array
var ErrNotList = errors.New("not a JSON list")

// Result is the outcome of a single load. Records is always usable;
// Fallback reports that they came from the built-in defaults because of Err.
type Result[T any] struct {
	Records  []T
	Fallback bool
	Err      error
}

// Loader reads content resources from a data directory
type Loader struct {
	dir string
	log *logger.Logger
}

// NewLoader creates a Loader rooted at dir
func NewLoader(dir string, log *logger.Logger) *Loader {
	if log == nil {
		log = logger.Nop()
	}
	return &Loader{dir: dir, log: log}
}

// Tips returns the tips resource, or the defaults if it cannot be read
func (l *Loader) Tips() []domain.Tip {
	return l.LoadTips().Records
}

// Plants returns the plants resource, or the defaults if it cannot be read
func (l *Loader) Plants() []domain.Plant {
	return l.LoadPlants().Records
}

// Videos returns the videos resource, or the defaults if it cannot be read
func (l *Loader) Videos() []domain.Video {
	return l.LoadVideos().Records
}

func (l *Loader) LoadTips() Result[domain.Tip] {
	return load(l, Tips, defaultTips)
}

func (l *Loader) LoadPlants() Result[domain.Plant] {
	return load(l, Plants, defaultPlants)
}

func (l *Loader) LoadVideos() Result[domain.Video] {
	return load(l, Videos, defaultVideos)
}

func load[T any](l *Loader, r Resource, defaults func() []T) Result[T] {
	path := filepath.Join(l.dir, r.FileName())
	records, err := readList[T](path)
	if err != nil {
		l.log.Warn("content fallback", "resource", string(r), "path", path, "error", err)
		return Result[T]{Records: defaults(), Fallback: true, Err: err}
	}
	return Result[T]{Records: records}
}

func readList[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("parse %s: invalid UTF-8", path)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, fmt.Errorf("parse %s: %w", path, ErrNotList)
	}

	// Records decode into typed structs, so a field of the wrong JSON type
	// (e.g. "seasonal": "yes") fails the whole file and the defaults are used.
	records := []T{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}
