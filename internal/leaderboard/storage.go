package leaderboard

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Storage defines the interface for loading and saving leaderboard entries.
// This allows for mocking the persistence layer during tests.
type Storage interface {
	// LoadAll loads all entries from the persistence layer.
	LoadAll() ([]Entry, error)
	// SaveAll saves a slice of entries, overwriting existing data.
	SaveAll(entries []Entry) error
}

// JSONFileStorage is an implementation of Storage that uses a JSON file with
// one encoded entry per line.
type JSONFileStorage struct {
	path string
}

// NewJSONFileStorage creates a JSONFileStorage under the user's config
// directory.
func NewJSONFileStorage() (*JSONFileStorage, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("could not get user home directory: %w", err)
	}
	return &JSONFileStorage{
		path: filepath.Join(homeDir, ".config", "snake-survival", "leaderboard.json"),
	}, nil
}

// NewJSONFileStorageAt creates a JSONFileStorage at an explicit path.
func NewJSONFileStorageAt(path string) *JSONFileStorage {
	return &JSONFileStorage{path: path}
}

// LoadAll reads and decodes all entries from the JSON file. A missing file
// is an empty leaderboard, not an error.
func (jfs *JSONFileStorage) LoadAll() ([]Entry, error) {
	file, err := os.Open(jfs.path)
	if os.IsNotExist(err) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error opening leaderboard file for reading: %w", err)
	}
	defer file.Close()

	entries := make([]Entry, 0)
	decoder := json.NewDecoder(file)
	for decoder.More() {
		var entry Entry
		if err := decoder.Decode(&entry); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("error decoding leaderboard entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// SaveAll encodes and writes all entries to the JSON file.
func (jfs *JSONFileStorage) SaveAll(entries []Entry) error {
	dir := filepath.Dir(jfs.path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating leaderboard directory: %w", err)
		}
	}

	file, err := os.OpenFile(jfs.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("error opening leaderboard file for writing: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	encoder := json.NewEncoder(writer)
	for _, entry := range entries {
		if err := encoder.Encode(entry); err != nil {
			return fmt.Errorf("error encoding leaderboard entry: %w", err)
		}
	}
	return writer.Flush()
}

// MemoryStorage is an in-memory Storage for tests and ephemeral servers.
type MemoryStorage struct {
	entries []Entry
}

// NewMemoryStorage returns an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// LoadAll returns a copy of the stored entries.
func (ms *MemoryStorage) LoadAll() ([]Entry, error) {
	return append([]Entry(nil), ms.entries...), nil
}

// SaveAll replaces the stored entries.
func (ms *MemoryStorage) SaveAll(entries []Entry) error {
	ms.entries = append(ms.entries[:0:0], entries...)
	return nil
}
