// Package datastore persists consolidated datasets as timestamped JSON
// files with a manifest and a rolling retention window.
package datastore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fluxforgeai/rugby-union/internal/domain"
	"github.com/fluxforgeai/rugby-union/internal/timeutil"
)

const (
	filePrefix   = "rugby_data_"
	fileSuffix   = ".json"
	manifestName = "manifest.json"
	defaultKeep  = 10
)

// Store writes datasets under a directory, one file per completed job,
// named rugby_data_<timestamp>.json. Writes go through a temp file and
// rename; older files beyond the retention count are pruned on each write.
type Store struct {
	dir  string
	keep int
}

// NewStore constructs a store rooted at dir keeping the newest keep files.
func NewStore(dir string, keep int) *Store {
	if keep <= 0 {
		keep = defaultKeep
	}
	return &Store{dir: dir, keep: keep}
}

// Dir exposes the store root path.
func (s *Store) Dir() string {
	if s == nil {
		return ""
	}
	return s.dir
}

// Write persists a dataset and returns the absolute path of the new file.
func (s *Store) Write(dataset domain.Dataset) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("datastore: create dir: %w", err)
	}

	stamp := timeutil.FormatStamp(dataset.GeneratedAt.UTC())
	target := filepath.Join(s.dir, filePrefix+stamp+fileSuffix)

	data, err := json.MarshalIndent(dataset, "", "  ")
	if err != nil {
		return "", fmt.Errorf("datastore: encode: %w", err)
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("datastore: write temp: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("datastore: replace: %w", err)
	}

	if err := s.updateManifest(); err != nil {
		return "", err
	}
	return target, nil
}

// List returns the stored dataset stamps, oldest first.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("datastore: list: %w", err)
	}
	var stamps []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		stamp := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
		if _, err := timeutil.ParseStamp(stamp); err != nil {
			continue
		}
		stamps = append(stamps, stamp)
	}
	sort.Strings(stamps)
	return stamps, nil
}

// Load reads one dataset by stamp.
func (s *Store) Load(stamp string) (domain.Dataset, error) {
	var dataset domain.Dataset
	if _, err := timeutil.ParseStamp(stamp); err != nil {
		return dataset, fmt.Errorf("datastore: invalid stamp %q", stamp)
	}
	data, err := os.ReadFile(filepath.Join(s.dir, filePrefix+stamp+fileSuffix))
	if err != nil {
		return dataset, fmt.Errorf("datastore: read %s: %w", stamp, err)
	}
	if err := json.Unmarshal(data, &dataset); err != nil {
		return dataset, fmt.Errorf("datastore: decode %s: %w", stamp, err)
	}
	return dataset, nil
}

// Latest loads the newest dataset. The bool reports whether one exists.
func (s *Store) Latest() (domain.Dataset, string, bool, error) {
	stamps, err := s.List()
	if err != nil || len(stamps) == 0 {
		return domain.Dataset{}, "", false, err
	}
	stamp := stamps[len(stamps)-1]
	dataset, err := s.Load(stamp)
	if err != nil {
		return domain.Dataset{}, "", false, err
	}
	return dataset, stamp, true, nil
}

// Manifest tracks the stored datasets.
type Manifest struct {
	Version     int       `json:"version"`
	GeneratedAt time.Time `json:"generated_at"`
	Keep        int       `json:"keep"`
	Stamps      []string  `json:"stamps"`
}

// Manifest reads the manifest file, returning an empty manifest when none
// was written yet.
func (s *Store) Manifest() (Manifest, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, manifestName))
	if err != nil {
		if os.IsNotExist(err) {
			return Manifest{Version: 1, Keep: s.keep}, nil
		}
		return Manifest{}, fmt.Errorf("datastore: read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("datastore: decode manifest: %w", err)
	}
	return m, nil
}

// updateManifest prunes beyond the retention count and rewrites the
// manifest to match what is on disk.
func (s *Store) updateManifest() error {
	stamps, err := s.List()
	if err != nil {
		return err
	}
	for len(stamps) > s.keep {
		victim := stamps[0]
		if err := os.Remove(filepath.Join(s.dir, filePrefix+victim+fileSuffix)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("datastore: prune %s: %w", victim, err)
		}
		stamps = stamps[1:]
	}

	m := Manifest{
		Version:     1,
		GeneratedAt: time.Now().UTC(),
		Keep:        s.keep,
		Stamps:      stamps,
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("datastore: encode manifest: %w", err)
	}
	path := filepath.Join(s.dir, manifestName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("datastore: write manifest: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("datastore: replace manifest: %w", err)
	}
	return nil
}
