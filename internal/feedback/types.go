// Package feedback provides storage for user feedback on the assistant:
// ratings and free-form comments, optionally scoped to one disease area.
package feedback

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Category scopes a feedback entry to the part of the assistant it is
// about.
type Category string

const (
	CategoryGeneral    Category = "general"
	CategoryDiabetes   Category = "diabetes"
	CategoryHeart      Category = "heart"
	CategoryParkinsons Category = "parkinsons"
)

// IsValid reports whether the category is one of the defined values.
func (c Category) IsValid() bool {
	switch c {
	case CategoryGeneral, CategoryDiabetes, CategoryHeart, CategoryParkinsons:
		return true
	default:
		return false
	}
}

// Feedback is one user-submitted feedback entry.
type Feedback struct {
	ID        int64     `json:"id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Category  Category  `json:"category"`
	Rating    int       `json:"rating"` // 1..5
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks a feedback entry before it is stored.
func (f *Feedback) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("name is required")
	}
	if f.Rating < 1 || f.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", f.Rating)
	}
	if !f.Category.IsValid() {
		return fmt.Errorf("unknown category %q", f.Category)
	}
	return nil
}

// Store defines the interface for feedback storage operations.
type Store interface {
	// Save stores a new feedback entry and assigns its ID.
	Save(ctx context.Context, feedback *Feedback) error

	// Get retrieves a feedback entry by ID.
	Get(ctx context.Context, id int64) (*Feedback, error)

	// List returns feedback entries, newest first, with pagination.
	List(ctx context.Context, limit, offset int) ([]*Feedback, error)

	// Count returns the total number of feedback entries.
	Count(ctx context.Context) (int64, error)

	// Delete removes a feedback entry by ID.
	Delete(ctx context.Context, id int64) error

	// ExportJSON exports all feedback to a JSON writer.
	ExportJSON(ctx context.Context, writer io.Writer) error

	// ImportJSON imports feedback from a JSON reader, skipping entries
	// that fail validation. Returns the number imported and skipped.
	ImportJSON(ctx context.Context, reader io.Reader) (imported int, skipped int, err error)

	// Close closes the store and releases resources.
	Close() error
}

// Export is the JSON export format.
type Export struct {
	Version    string      `json:"version"`
	ExportedAt time.Time   `json:"exported_at"`
	Count      int         `json:"count"`
	Feedback   []*Feedback `json:"feedback"`
}
