// Package journal implements diary entries and their mood lifecycle.
package journal

import (
	"time"

	"github.com/google/uuid"

	"github.com/mood-journal/mood-journal/internal/mood"
)

// Entry is the canonical journal entry shape. Every interface, HTTP and
// storage alike, adapts to and from this struct; wire-format variations
// must not leak into it. MoodLabel and MoodScore are derived by the
// classifier, except when the owner explicitly overrides the label.
type Entry struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	OwnerID   uuid.UUID  `json:"owner_id" db:"owner_id"`
	Title     string     `json:"title" db:"title"`
	Content   string     `json:"content" db:"content"`
	MoodLabel mood.Label `json:"mood_label" db:"mood_label"`
	MoodScore float64    `json:"mood_score" db:"mood_score"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// Point converts the entry into a chartable observation.
func (e *Entry) Point() mood.Point {
	return mood.Point{
		Date:  e.CreatedAt,
		Label: e.MoodLabel,
		Score: e.MoodScore,
	}
}
