package journal

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mood-journal/mood-journal/internal/mood"
	"github.com/mood-journal/mood-journal/internal/platform/httpx"
)

// ============================================================================
// MOCK REPOSITORY
// ============================================================================

type mockRepository struct {
	mu      sync.Mutex
	entries map[uuid.UUID]Entry

	createErr error
	listErr   error
}

func newMockRepository() *mockRepository {
	return &mockRepository{entries: make(map[uuid.UUID]Entry)}
}

func (m *mockRepository) Create(ctx context.Context, entry Entry) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = entry
	return nil
}

func (m *mockRepository) List(ctx context.Context, ownerID uuid.UUID, order Order) ([]Entry, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []Entry{}
	for _, e := range m.entries {
		if e.OwnerID == ownerID {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if order == OrderAsc {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockRepository) Get(ctx context.Context, ownerID, id uuid.UUID) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok || e.OwnerID != ownerID {
		return nil, httpx.ErrNotFound
	}
	return &e, nil
}

func (m *mockRepository) Update(ctx context.Context, entry Entry) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.entries[entry.ID]
	if !ok || existing.OwnerID != entry.OwnerID {
		return nil, httpx.ErrNotFound
	}
	m.entries[entry.ID] = entry
	return &entry, nil
}

func (m *mockRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if ok && e.OwnerID == ownerID {
		delete(m.entries, id)
	}
	return nil
}

func (m *mockRepository) ListUnknown(ctx context.Context, ownerID *uuid.UUID) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []Entry{}
	for _, e := range m.entries {
		if e.MoodLabel != mood.LabelUnknown {
			continue
		}
		if ownerID != nil && e.OwnerID != *ownerID {
			continue
		}
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (m *mockRepository) UpdateMood(ctx context.Context, id uuid.UUID, label mood.Label, score float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return httpx.ErrNotFound
	}
	e.MoodLabel = label
	e.MoodScore = score
	m.entries[id] = e
	return nil
}

// stubClassifier returns a fixed result, recording what it was asked.
type stubClassifier struct {
	result mood.Result
	texts  []string
}

func (s *stubClassifier) Classify(ctx context.Context, text string) mood.Result {
	s.texts = append(s.texts, text)
	return s.result
}

func newTestService(repo Repository, classifier mood.Classifier) *Service {
	return NewService(repo, classifier, mood.NewSeriesCache(nil, time.Minute), nil)
}

// ============================================================================
// TESTS
// ============================================================================

func TestCreateStoresClassifierResult(t *testing.T) {
	repo := newMockRepository()
	classifier := &stubClassifier{result: mood.Result{Label: mood.LabelSadness, Score: 0.77}}
	service := newTestService(repo, classifier)
	owner := uuid.New()

	entry, err := service.Create(context.Background(), owner, CreateEntryRequest{
		Title:   "Rough day",
		Content: "Everything went wrong.",
	})
	require.NoError(t, err)

	assert.Equal(t, mood.LabelSadness, entry.MoodLabel)
	assert.Equal(t, 0.77, entry.MoodScore)
	assert.Equal(t, owner, entry.OwnerID)
	assert.NotEqual(t, uuid.Nil, entry.ID)
	assert.Equal(t, []string{"Everything went wrong."}, classifier.texts)

	stored, err := service.Get(context.Background(), owner, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.MoodLabel, stored.MoodLabel)
	assert.Equal(t, entry.MoodScore, stored.MoodScore)
}

func TestCreateSurvivesClassifierFailure(t *testing.T) {
	repo := newMockRepository()
	// The sentinel is what the client emits for any upstream failure.
	classifier := &stubClassifier{result: mood.Result{Label: mood.LabelUnknown, Score: 0}}
	service := newTestService(repo, classifier)

	entry, err := service.Create(context.Background(), uuid.New(), CreateEntryRequest{
		Title:   "Offline day",
		Content: "Written while the classifier was down.",
	})
	require.NoError(t, err)
	assert.Equal(t, mood.LabelUnknown, entry.MoodLabel)
	assert.Zero(t, entry.MoodScore)
}

func TestCreateValidation(t *testing.T) {
	service := newTestService(newMockRepository(), &stubClassifier{})

	for _, req := range []CreateEntryRequest{
		{Title: "", Content: "body"},
		{Title: "title", Content: ""},
		{Title: "   ", Content: "body"},
	} {
		_, err := service.Create(context.Background(), uuid.New(), req)
		assert.ErrorIs(t, err, httpx.ErrValidation, "request %+v", req)
	}
}

func TestOwnershipIsolation(t *testing.T) {
	repo := newMockRepository()
	service := newTestService(repo, &stubClassifier{result: mood.Result{Label: mood.LabelJoy, Score: 0.9}})

	ownerA := uuid.New()
	ownerB := uuid.New()

	entry, err := service.Create(context.Background(), ownerB, CreateEntryRequest{Title: "B's entry", Content: "private"})
	require.NoError(t, err)

	_, err = service.Get(context.Background(), ownerA, entry.ID)
	assert.ErrorIs(t, err, httpx.ErrNotFound)

	_, err = service.Update(context.Background(), ownerA, entry.ID, UpdateEntryRequest{Title: "hijack", Content: "hijack"})
	assert.ErrorIs(t, err, httpx.ErrNotFound)

	// Owner-scoped delete silently does nothing to someone else's entry.
	require.NoError(t, service.Delete(context.Background(), ownerA, entry.ID))
	survivor, err := service.Get(context.Background(), ownerB, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "B's entry", survivor.Title)
}

func TestUpdateReclassifiesContent(t *testing.T) {
	repo := newMockRepository()
	classifier := &stubClassifier{result: mood.Result{Label: mood.LabelJoy, Score: 0.9}}
	service := newTestService(repo, classifier)
	owner := uuid.New()

	entry, err := service.Create(context.Background(), owner, CreateEntryRequest{Title: "Day", Content: "original"})
	require.NoError(t, err)

	classifier.result = mood.Result{Label: mood.LabelAnger, Score: 0.65}
	updated, err := service.Update(context.Background(), owner, entry.ID, UpdateEntryRequest{
		Title:   "Day, revised",
		Content: "rewritten",
	})
	require.NoError(t, err)

	assert.Equal(t, mood.LabelAnger, updated.MoodLabel)
	assert.Equal(t, 0.65, updated.MoodScore)
	assert.Equal(t, []string{"original", "rewritten"}, classifier.texts)
}

func TestUpdateWithOverridePinsLabel(t *testing.T) {
	repo := newMockRepository()
	classifier := &stubClassifier{result: mood.Result{Label: mood.LabelJoy, Score: 0.9}}
	service := newTestService(repo, classifier)
	owner := uuid.New()

	entry, err := service.Create(context.Background(), owner, CreateEntryRequest{Title: "Day", Content: "original"})
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), owner, entry.ID, UpdateEntryRequest{
		Title:     "Day",
		Content:   "original",
		MoodLabel: "SADNESS",
	})
	require.NoError(t, err)

	// The override is normalized, pinned at the advisory score and never
	// re-scored by the classifier.
	assert.Equal(t, mood.LabelSadness, updated.MoodLabel)
	assert.Equal(t, 1.0, updated.MoodScore)
	assert.Equal(t, []string{"original"}, classifier.texts)
}

func TestUpdateWithGarbageOverride(t *testing.T) {
	repo := newMockRepository()
	service := newTestService(repo, &stubClassifier{result: mood.Result{Label: mood.LabelJoy, Score: 0.9}})
	owner := uuid.New()

	entry, err := service.Create(context.Background(), owner, CreateEntryRequest{Title: "Day", Content: "text"})
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), owner, entry.ID, UpdateEntryRequest{
		Title:     "Day",
		Content:   "text",
		MoodLabel: "ecstatic",
	})
	require.NoError(t, err)
	assert.Equal(t, mood.LabelUnknown, updated.MoodLabel)
}

func TestDeleteIsIdempotent(t *testing.T) {
	repo := newMockRepository()
	service := newTestService(repo, &stubClassifier{result: mood.Result{Label: mood.LabelJoy, Score: 0.9}})
	owner := uuid.New()

	entry, err := service.Create(context.Background(), owner, CreateEntryRequest{Title: "Day", Content: "text"})
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), owner, entry.ID))
	require.NoError(t, service.Delete(context.Background(), owner, entry.ID))
	require.NoError(t, service.Delete(context.Background(), owner, uuid.New()))

	_, err = service.Get(context.Background(), owner, entry.ID)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestListOrdering(t *testing.T) {
	repo := newMockRepository()
	owner := uuid.New()
	now := time.Now().UTC()
	for i, title := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Create(context.Background(), Entry{
			ID:        uuid.New(),
			OwnerID:   owner,
			Title:     title,
			Content:   title,
			MoodLabel: mood.LabelNeutral,
			CreatedAt: now.Add(time.Duration(i) * time.Hour),
		}))
	}
	service := newTestService(repo, &stubClassifier{})

	desc, err := service.List(context.Background(), owner, OrderDesc)
	require.NoError(t, err)
	require.Len(t, desc, 3)
	assert.Equal(t, "third", desc[0].Title)

	asc, err := service.List(context.Background(), owner, OrderAsc)
	require.NoError(t, err)
	assert.Equal(t, "first", asc[0].Title)
}

func TestSeriesAggregatesOwnEntriesOnly(t *testing.T) {
	repo := newMockRepository()
	owner := uuid.New()
	other := uuid.New()
	day := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(context.Background(), Entry{
		ID: uuid.New(), OwnerID: owner, Title: "mine", Content: "mine",
		MoodLabel: mood.LabelJoy, MoodScore: 0.9, CreatedAt: day,
	}))
	require.NoError(t, repo.Create(context.Background(), Entry{
		ID: uuid.New(), OwnerID: other, Title: "theirs", Content: "theirs",
		MoodLabel: mood.LabelAnger, MoodScore: 0.8, CreatedAt: day,
	}))

	service := newTestService(repo, &stubClassifier{})
	series, err := service.Series(context.Background(), owner)
	require.NoError(t, err)

	require.Equal(t, []string{"2024-01-01"}, series.Dates)
	joy := series.Series[mood.LabelJoy]
	require.NotNil(t, joy[0])
	assert.Equal(t, 0.9, *joy[0])
	assert.Nil(t, series.Series[mood.LabelAnger][0])
}

func TestReclassifyUnknown(t *testing.T) {
	repo := newMockRepository()
	owner := uuid.New()
	now := time.Now().UTC()

	unknownID := uuid.New()
	require.NoError(t, repo.Create(context.Background(), Entry{
		ID: unknownID, OwnerID: owner, Title: "offline", Content: "classifier was down",
		MoodLabel: mood.LabelUnknown, CreatedAt: now,
	}))
	labeledID := uuid.New()
	require.NoError(t, repo.Create(context.Background(), Entry{
		ID: labeledID, OwnerID: owner, Title: "fine", Content: "already labeled",
		MoodLabel: mood.LabelJoy, MoodScore: 0.9, CreatedAt: now,
	}))

	classifier := &stubClassifier{result: mood.Result{Label: mood.LabelFear, Score: 0.6}}
	service := newTestService(repo, classifier)

	updated, err := service.ReclassifyUnknown(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	entry, err := service.Get(context.Background(), owner, unknownID)
	require.NoError(t, err)
	assert.Equal(t, mood.LabelFear, entry.MoodLabel)
	assert.Equal(t, 0.6, entry.MoodScore)

	// Entries that already carry a label are never touched.
	labeled, err := service.Get(context.Background(), owner, labeledID)
	require.NoError(t, err)
	assert.Equal(t, mood.LabelJoy, labeled.MoodLabel)
}

func TestReclassifyUnknownKeepsSentinelOnFailure(t *testing.T) {
	repo := newMockRepository()
	owner := uuid.New()
	id := uuid.New()
	require.NoError(t, repo.Create(context.Background(), Entry{
		ID: id, OwnerID: owner, Title: "offline", Content: "still down",
		MoodLabel: mood.LabelUnknown, CreatedAt: time.Now().UTC(),
	}))

	service := newTestService(repo, &stubClassifier{result: mood.Result{Label: mood.LabelUnknown, Score: 0}})

	updated, err := service.ReclassifyUnknown(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, updated)
}
