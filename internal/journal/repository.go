package journal

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mood-journal/mood-journal/internal/mood"
	"github.com/mood-journal/mood-journal/internal/platform/httpx"
)

// Repository defines persistence operations for journal entries. Every
// read and write is scoped by owner; there is no unscoped lookup.
type Repository interface {
	Create(ctx context.Context, entry Entry) error
	List(ctx context.Context, ownerID uuid.UUID, order Order) ([]Entry, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*Entry, error)
	Update(ctx context.Context, entry Entry) (*Entry, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	ListUnknown(ctx context.Context, ownerID *uuid.UUID) ([]Entry, error)
	UpdateMood(ctx context.Context, id uuid.UUID, label mood.Label, score float64) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const entryColumns = "id, owner_id, title, content, mood_label, mood_score, created_at, updated_at"

func scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	err := row.Scan(&e.ID, &e.OwnerID, &e.Title, &e.Content, &e.MoodLabel, &e.MoodScore, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func collectEntries(rows pgx.Rows) ([]Entry, error) {
	defer rows.Close()
	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Title, &e.Content, &e.MoodLabel, &e.MoodScore, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Create inserts a new entry.
func (r *PGRepository) Create(ctx context.Context, entry Entry) error {
	const query = `
		INSERT INTO journal_entries (id, owner_id, title, content, mood_label, mood_score, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query,
		entry.ID, entry.OwnerID, entry.Title, entry.Content, entry.MoodLabel, entry.MoodScore, entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("journal: create entry: %w", err)
	}
	return nil
}

// List returns all entries of one owner ordered by creation time.
func (r *PGRepository) List(ctx context.Context, ownerID uuid.UUID, order Order) ([]Entry, error) {
	query := "SELECT " + entryColumns + " FROM journal_entries WHERE owner_id = $1 ORDER BY created_at DESC, id DESC"
	if order == OrderAsc {
		query = "SELECT " + entryColumns + " FROM journal_entries WHERE owner_id = $1 ORDER BY created_at ASC, id ASC"
	}
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("journal: list entries: %w", err)
	}
	return collectEntries(rows)
}

// Get fetches one entry. A row owned by someone else is reported exactly
// like a missing row.
func (r *PGRepository) Get(ctx context.Context, ownerID, id uuid.UUID) (*Entry, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+entryColumns+" FROM journal_entries WHERE id = $1 AND owner_id = $2", id, ownerID)
	return scanEntry(row)
}

// Update rewrites title, content and mood in a single statement scoped by
// owner, so a concurrent delete simply surfaces as not found.
func (r *PGRepository) Update(ctx context.Context, entry Entry) (*Entry, error) {
	const query = `
		UPDATE journal_entries
		SET title = $3, content = $4, mood_label = $5, mood_score = $6, updated_at = $7
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + entryColumns
	row := r.pool.QueryRow(ctx, query,
		entry.ID, entry.OwnerID, entry.Title, entry.Content, entry.MoodLabel, entry.MoodScore, entry.UpdatedAt)
	return scanEntry(row)
}

// Delete removes an entry. Deleting a missing id is not an error.
func (r *PGRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		"DELETE FROM journal_entries WHERE id = $1 AND owner_id = $2", id, ownerID)
	if err != nil {
		return fmt.Errorf("journal: delete entry: %w", err)
	}
	return nil
}

// ListUnknown returns entries whose mood never classified, optionally
// restricted to one owner. Feeds the operator-triggered reclassify job.
func (r *PGRepository) ListUnknown(ctx context.Context, ownerID *uuid.UUID) ([]Entry, error) {
	query := "SELECT " + entryColumns + " FROM journal_entries WHERE mood_label = $1 ORDER BY created_at ASC"
	args := []any{mood.LabelUnknown}
	if ownerID != nil {
		query = "SELECT " + entryColumns + " FROM journal_entries WHERE mood_label = $1 AND owner_id = $2 ORDER BY created_at ASC"
		args = append(args, *ownerID)
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("journal: list unknown entries: %w", err)
	}
	return collectEntries(rows)
}

// UpdateMood rewrites only the derived mood fields of an entry.
func (r *PGRepository) UpdateMood(ctx context.Context, id uuid.UUID, label mood.Label, score float64) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE journal_entries SET mood_label = $2, mood_score = $3, updated_at = now() WHERE id = $1",
		id, label, score)
	if err != nil {
		return fmt.Errorf("journal: update mood: %w", err)
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
