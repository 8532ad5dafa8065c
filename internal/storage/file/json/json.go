package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/drakos74/pump-curve/internal/storage"
)

const ext = ".json"

// BlobStorage stores every key as an indented json file in a directory.
type BlobStorage struct {
	path  string
	debug bool
}

// NewJsonBlob creates a blob storage under the given directory.
// An empty path falls back to storage.DefaultDir.
func NewJsonBlob(path string, debug bool) *BlobStorage {
	if path == "" {
		path = storage.DefaultDir
	}
	return &BlobStorage{
		path:  path,
		debug: debug,
	}
}

func (s BlobStorage) Store(k storage.Key, value interface{}) error {
	err := Save(s.path, k.Path(), value)
	if err == nil && s.debug {
		log.Info().Str("path", s.path).Str("file", k.Path()).Msg("stored json file")
	}
	return err
}

func (s BlobStorage) Load(k storage.Key, value interface{}) error {
	return Load(s.path, k.Path(), value)
}

// List returns the keys of all stored files, ordered by name.
func (s BlobStorage) List() ([]storage.Key, error) {
	entries, err := os.ReadDir(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []storage.Key{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read dir '%s': %w", s.path, err)
	}
	keys := make([]storage.Key, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		keys = append(keys, storage.Key{Name: strings.TrimSuffix(e.Name(), ext)})
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Name < keys[j].Name
	})
	return keys, nil
}

// Save saves the given json struct into the given path with the provided filename.
func Save(filePath string, fileName string, value interface{}) error {
	// check if filepath exists
	info, err := os.Stat(filePath)
	if err != nil {
		err := os.MkdirAll(filePath, os.ModePerm)
		if err != nil {
			return fmt.Errorf("could not make dir: %s: %w", filePath, err)
		}
	} else if !info.IsDir() {
		return fmt.Errorf("path given is not a directory: %s", filePath)
	}

	b, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal '%s': %w", fileName, err)
	}

	p := filepath.Join(filePath, fileName+ext)
	if err := os.WriteFile(p, b, 0644); err != nil {
		return fmt.Errorf("could not write file '%s': %w", p, err)
	}

	return nil
}

// Load loads the payload from the given filePath and fileName.
func Load(filePath string, fileName string, value interface{}) error {
	p := filepath.Join(filePath, fileName+ext)

	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("could not find file '%s': %w", p, storage.NotFoundErr)
	}
	if err != nil {
		return fmt.Errorf("could not read file '%s': %v: %w", p, err, storage.CouldNotLoadErr)
	}

	if err := json.Unmarshal(data, value); err != nil {
		return fmt.Errorf("could not unmarshal '%s': %v: %w", fileName, err, storage.CouldNotLoadErr)
	}

	return nil
}
