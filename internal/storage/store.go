// Package storage keeps imported solutions under a data directory so they
// can be listed and reloaded without the source export files.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/bocop/internal/bocop"
	"github.com/san-kum/bocop/internal/table"
)

var (
	ErrNotFound  = errors.New("storage: snapshot not found")
	ErrAmbiguous = errors.New("storage: ambiguous snapshot id")
)

const (
	metadataFile = "metadata.json"
	tableFile    = "table.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Snapshot describes one imported solution.
type Snapshot struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	Timestamp  time.Time `json:"timestamp"`
	States     []string  `json:"states"`
	Adjoints   []string  `json:"adjoints"`
	Controls   []string  `json:"controls"`
	Parameters []float64 `json:"parameters"`
	Steps      int       `json:"steps"`
	Rows       int       `json:"rows"`
}

// Save copies sol into a new snapshot and returns its id. The table holds
// states, adjoints and controls joined on time. A failed save leaves no
// snapshot directory behind.
func (s *Store) Save(sol *bocop.Solution) (id string, err error) {
	frames := make([]*table.Frame, 0, 3)
	for _, b := range []*bocop.Bunch{sol.States, sol.Adjoints, sol.Controls} {
		f, err := b.Table()
		if err != nil {
			return "", err
		}
		frames = append(frames, f)
	}
	frame, err := table.Join(frames...)
	if err != nil {
		return "", err
	}

	id = uuid.NewString()
	dir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(dir)
		}
	}()

	meta := Snapshot{
		ID:         id,
		Source:     sol.Dir,
		Timestamp:  time.Now().UTC(),
		States:     sol.States.Names(),
		Adjoints:   sol.Adjoints.Names(),
		Controls:   sol.Controls.Names(),
		Parameters: sol.Parameters,
		Steps:      len(sol.DiscretizationTimes),
		Rows:       frame.Rows(),
	}

	err = writeFile(filepath.Join(dir, metadataFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err != nil {
		return "", fmt.Errorf("writing %s: %w", metadataFile, err)
	}
	if err = writeFile(filepath.Join(dir, tableFile), frame.WriteCSV); err != nil {
		return "", fmt.Errorf("writing %s: %w", tableFile, err)
	}

	slog.Debug("snapshot written", "id", id, "source", sol.Dir, "rows", meta.Rows)
	return id, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns every readable snapshot, oldest first.
func (s *Store) List() ([]Snapshot, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Snapshot{}, nil
		}
		return nil, err
	}

	snaps := make([]Snapshot, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		snaps = append(snaps, *meta)
	}

	slices.SortFunc(snaps, func(a, b Snapshot) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return snaps, nil
}

// Resolve expands an id prefix to the full id of a stored snapshot.
func (s *Store) Resolve(prefix string) (string, error) {
	if _, err := uuid.Parse(prefix); err == nil {
		return prefix, nil
	}
	snaps, err := s.List()
	if err != nil {
		return "", err
	}

	var match string
	for _, snap := range snaps {
		if !strings.HasPrefix(snap.ID, prefix) {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("%w: %q", ErrAmbiguous, prefix)
		}
		match = snap.ID
	}
	if prefix == "" || match == "" {
		return "", fmt.Errorf("%w: %q", ErrNotFound, prefix)
	}
	return match, nil
}

func (s *Store) path(id, name string) (string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return filepath.Join(s.baseDir, id, name), nil
}

func (s *Store) Load(id string) (*Snapshot, error) {
	path, err := s.path(id, metadataFile)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
		}
		return nil, err
	}

	var meta Snapshot
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadTable(id string) (*table.Frame, error) {
	path, err := s.path(id, tableFile)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
		}
		return nil, err
	}
	defer file.Close()

	return table.ReadCSV(file)
}

func (s *Store) Delete(id string) error {
	if _, err := s.Load(id); err != nil {
		return err
	}
	return os.RemoveAll(filepath.Join(s.baseDir, id))
}
