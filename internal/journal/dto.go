package journal

// Order selects the creation-time ordering of a listing. The entry list
// wants newest first; the mood aggregator needs oldest first.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

type CreateEntryRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

// UpdateEntryRequest carries an edit. A non-empty MoodLabel pins the label
// verbatim (after normalization) instead of re-running the classifier.
type UpdateEntryRequest struct {
	Title     string `json:"title" validate:"required,max=200"`
	Content   string `json:"content" validate:"required"`
	MoodLabel string `json:"mood_label,omitempty"`
}
