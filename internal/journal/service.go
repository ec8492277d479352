package journal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mood-journal/mood-journal/internal/mood"
	"github.com/mood-journal/mood-journal/internal/platform/httpx"
)

// overrideScore marks a user-pinned label. The classifier never re-scores
// an explicitly chosen label, so the stored score is advisory only.
const overrideScore = 1.0

// Service wraps journal business rules.
type Service struct {
	repo       Repository
	classifier mood.Classifier
	cache      *mood.SeriesCache
	logger     *slog.Logger
}

// NewService constructs a new Service.
func NewService(repo Repository, classifier mood.Classifier, cache *mood.SeriesCache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:       repo,
		classifier: classifier,
		cache:      cache,
		logger:     logger,
	}
}

// Create classifies the content and persists a new entry. The classifier
// result is stored verbatim, unknown sentinel included: a journal write
// never fails because the sentiment service is down.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req CreateEntryRequest) (*Entry, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: title and content are required", httpx.ErrValidation)
	}

	result := s.classifier.Classify(ctx, req.Content)

	now := time.Now().UTC()
	entry := Entry{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Title:     req.Title,
		Content:   req.Content,
		MoodLabel: result.Label,
		MoodScore: result.Score,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	s.bumpCache(ctx, ownerID)
	return &entry, nil
}

// List returns the owner's entries, newest first by default.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID, order Order) ([]Entry, error) {
	return s.repo.List(ctx, ownerID, order)
}

// Get fetches one entry under the ownership rule.
func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Entry, error) {
	return s.repo.Get(ctx, ownerID, id)
}

// Update edits an entry. With a mood label override the label is pinned
// and not re-scored; otherwise the new content is re-classified.
func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, req UpdateEntryRequest) (*Entry, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: title and content are required", httpx.ErrValidation)
	}

	existing, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	var result mood.Result
	if strings.TrimSpace(req.MoodLabel) != "" {
		result = mood.Result{Label: mood.Normalize(req.MoodLabel), Score: overrideScore}
	} else {
		result = s.classifier.Classify(ctx, req.Content)
	}

	updated := *existing
	updated.Title = req.Title
	updated.Content = req.Content
	updated.MoodLabel = result.Label
	updated.MoodScore = result.Score
	updated.UpdatedAt = time.Now().UTC()

	saved, err := s.repo.Update(ctx, updated)
	if err != nil {
		return nil, err
	}
	s.bumpCache(ctx, ownerID)
	return saved, nil
}

// Delete removes an entry. Idempotent: a missing or already-deleted id
// succeeds, which keeps client retries trivial.
func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	s.bumpCache(ctx, ownerID)
	return nil
}

// MoodPoints returns the owner's raw chart observations, oldest first.
func (s *Service) MoodPoints(ctx context.Context, ownerID uuid.UUID) ([]mood.Point, error) {
	entries, err := s.repo.List(ctx, ownerID, OrderAsc)
	if err != nil {
		return nil, err
	}
	points := make([]mood.Point, 0, len(entries))
	for i := range entries {
		points = append(points, entries[i].Point())
	}
	return points, nil
}

// Series returns the owner's dense, date-aligned mood matrix, cached per
// owner until the next write.
func (s *Service) Series(ctx context.Context, ownerID uuid.UUID) (mood.Series, error) {
	return s.cache.Fetch(ctx, ownerID, func(ctx context.Context) (mood.Series, error) {
		points, err := s.MoodPoints(ctx, ownerID)
		if err != nil {
			return mood.Series{}, err
		}
		return mood.Aggregate(points), nil
	})
}

// ReclassifyUnknown re-runs the classifier over entries stored with the
// unknown sentinel. Triggered by an operator, never automatically; entries
// the classifier still cannot label are left untouched.
func (s *Service) ReclassifyUnknown(ctx context.Context, ownerID *uuid.UUID) (int, error) {
	entries, err := s.repo.ListUnknown(ctx, ownerID)
	if err != nil {
		return 0, err
	}

	updated := 0
	touched := map[uuid.UUID]struct{}{}
	for i := range entries {
		entry := &entries[i]
		result := s.classifier.Classify(ctx, entry.Content)
		if result.Label == mood.LabelUnknown {
			continue
		}
		if err := s.repo.UpdateMood(ctx, entry.ID, result.Label, result.Score); err != nil {
			return updated, err
		}
		updated++
		touched[entry.OwnerID] = struct{}{}
	}
	for owner := range touched {
		s.bumpCache(ctx, owner)
	}
	return updated, nil
}

// bumpCache retires the owner's cached series. A failed invalidation only
// delays chart freshness, so it is logged rather than failing the write.
func (s *Service) bumpCache(ctx context.Context, ownerID uuid.UUID) {
	if err := s.cache.Bump(ctx, ownerID); err != nil {
		s.logger.Warn("journal: bump series cache", slog.Any("error", err))
	}
}
