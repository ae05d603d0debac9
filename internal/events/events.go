// Package events fans domain events out to interested sinks (SSE clients,
// a NATS bus).
package events

import (
	"errors"
	"time"
)

// Subjects published by moodlog.
const (
	SubjectDocumentUpdated   = "document.updated"
	SubjectDocumentDeleted   = "document.deleted"
	SubjectAnalysisCompleted = "analysis.completed"
)

// DocumentSubject maps a watcher event kind to its subject.
func DocumentSubject(kind string) string {
	if kind == "deleted" {
		return SubjectDocumentDeleted
	}
	return SubjectDocumentUpdated
}

// Publisher delivers a JSON-serialisable payload on a subject.
type Publisher interface {
	Publish(subject string, data any) error
}

// DocumentEvent describes a change to a journal document.
type DocumentEvent struct {
	Path      string    `json:"path"`
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
}

// AnalysisEvent announces a generated analysis.
type AnalysisEvent struct {
	ID        string    `json:"id"`
	Document  string    `json:"document"`
	Mode      string    `json:"mode"`
	Written   bool      `json:"written"`
	Timestamp time.Time `json:"timestamp"`
}

// Nop discards every event.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(string, any) error { return nil }

// Multi publishes to every sink and joins their errors.
type Multi []Publisher

// Publish implements Publisher.
func (m Multi) Publish(subject string, data any) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(subject, data); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
