// Package storage defines the journal document abstraction.
package storage

import "github.com/starford/moodlog/internal/models"

// Provider is the interface for journal document operations. Paths are
// relative to the journal root.
type Provider interface {
	// List returns metadata for every journal document under dir.
	List(dir string) ([]models.DocumentMetadata, error)
	// Read returns the raw text of the document at path.
	Read(path string) ([]byte, error)
	// Write atomically replaces the document at path.
	Write(path string, content []byte) error
	// AppendSection appends a titled section to the document at path.
	AppendSection(path, title, body string) error
	// Delete removes the document at path.
	Delete(path string) error
}
