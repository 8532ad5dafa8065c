package storage

import (
	"errors"
	"strings"
)

var (
	// DefaultDir is the directory cases are stored under if none is configured.
	DefaultDir = "curvemaker"
)

var (
	NotFoundErr     = errors.New("not found")
	CouldNotLoadErr = errors.New("could not load")
)

var sanitizer = strings.NewReplacer(
	"<", "_",
	">", "_",
	":", "_",
	`"`, "_",
	"/", "_",
	`\`, "_",
	"|", "_",
	"?", "_",
	"*", "_",
)

// Key is the storage key of a case.
type Key struct {
	Name string `json:"name"`
}

// Path returns the key as a name that is safe to use for a file.
func (k Key) Path() string {
	return sanitizer.Replace(k.Name)
}

// Persistence stores and loads values by key.
type Persistence interface {
	Store(k Key, value interface{}) error
	Load(k Key, value interface{}) error
	List() ([]Key, error)
}
