package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// FSStore implements Store on the filesystem. Records live under
// <baseDir>/solves/<id>/ as record.json plus artifacts.
//
// Thread-safety: writes go through atomic renames, so no locks are needed;
// concurrent callers are safe.
type FSStore struct {
	baseDir string
}

// NewFSStore creates a filesystem-backed store rooted at baseDir,
// creating the directory if needed.
func NewFSStore(baseDir string) (*FSStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	return &FSStore{baseDir: baseDir}, nil
}

// BaseDir returns the store's root directory.
func (fs *FSStore) BaseDir() string {
	return fs.baseDir
}

// solveDir returns the directory path for a given record ID.
func (fs *FSStore) solveDir(id string) string {
	return filepath.Join(fs.baseDir, "solves", id)
}

func (fs *FSStore) recordPath(id string) string {
	return filepath.Join(fs.solveDir(id), "record.json")
}

// SaveRecord atomically saves a record using the temp file + rename pattern.
func (fs *FSStore) SaveRecord(record *Record) error {
	if record == nil {
		return fmt.Errorf("record cannot be nil")
	}
	if err := record.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid record: %w", err)
	}

	dir := fs.solveDir(record.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create record directory: %w", err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize record: %w", err)
	}

	tempPath := fs.recordPath(record.ID) + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp record file: %w", err)
	}

	finalPath := fs.recordPath(record.ID)
	if err := os.Rename(tempPath, finalPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename record file: %w", err)
	}

	slog.Debug("Record saved", "id", record.ID, "path", finalPath)
	return nil
}

// LoadRecord retrieves the record with the given ID.
func (fs *FSStore) LoadRecord(id string) (*Record, error) {
	if id == "" {
		return nil, fmt.Errorf("id cannot be empty")
	}

	path := fs.recordPath(id)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, &NotFoundError{ID: id}
	} else if err != nil {
		return nil, fmt.Errorf("failed to read record file: %w", err)
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse record file: %w", err)
	}
	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("stored record is invalid: %w", err)
	}
	return &record, nil
}

// ListRecords scans the solves directory and returns metadata for every
// readable record, newest first. Unreadable entries are skipped with a log
// line rather than failing the whole listing.
func (fs *FSStore) ListRecords() ([]RecordInfo, error) {
	solvesDir := filepath.Join(fs.baseDir, "solves")

	entries, err := os.ReadDir(solvesDir)
	if os.IsNotExist(err) {
		return []RecordInfo{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to scan solves directory: %w", err)
	}

	infos := make([]RecordInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		record, err := fs.LoadRecord(entry.Name())
		if err != nil {
			slog.Warn("Skipping unreadable record", "id", entry.Name(), "error", err)
			continue
		}
		infos = append(infos, record.ToInfo())
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Timestamp.After(infos[j].Timestamp)
	})
	return infos, nil
}

// DeleteRecord removes a record directory and everything in it.
func (fs *FSStore) DeleteRecord(id string) error {
	if id == "" {
		return fmt.Errorf("id cannot be empty")
	}

	dir := fs.solveDir(id)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return &NotFoundError{ID: id}
	} else if err != nil {
		return fmt.Errorf("failed to stat record directory: %w", err)
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to delete record directory: %w", err)
	}

	slog.Debug("Record deleted", "id", id)
	return nil
}

// SaveArtifact writes a named artifact into the record's directory using
// the same atomic pattern as SaveRecord.
func (fs *FSStore) SaveArtifact(id, name string, data []byte) error {
	if id == "" {
		return fmt.Errorf("id cannot be empty")
	}
	if name == "" || name != filepath.Base(name) {
		return fmt.Errorf("invalid artifact name: %q", name)
	}

	dir := fs.solveDir(id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create record directory: %w", err)
	}

	path := filepath.Join(dir, name)
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp artifact: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename artifact: %w", err)
	}

	slog.Debug("Artifact saved", "id", id, "name", name)
	return nil
}
