package services

import (
	"context"
	"iter"
	"sync"

	"github.com/maxaizer/jobscout/internal/domain/models"
	"github.com/stretchr/testify/mock"
)

type mockBackend struct {
	mock.Mock
	name string
}

func (m *mockBackend) Name() string {
	return m.name
}

func (m *mockBackend) GenerateResponse(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type stubExtractor struct {
	byKeyword map[string][]models.Job
	fatal     map[string]error
	queries   []models.SearchQuery
}

func (s *stubExtractor) Extract(ctx context.Context, query models.SearchQuery) iter.Seq2[models.Job, error] {
	s.queries = append(s.queries, query)
	return func(yield func(models.Job, error) bool) {
		produced := 0
		for _, job := range s.byKeyword[query.Keyword] {
			if ctx.Err() != nil {
				yield(models.Job{}, ctx.Err())
				return
			}
			if produced >= query.Limit {
				return
			}
			produced++
			if !yield(job, nil) {
				return
			}
		}
		if err := s.fatal[query.Keyword]; err != nil {
			yield(models.Job{}, err)
		}
	}
}

type memoryStore struct {
	mu        sync.Mutex
	ids       []string
	jobs      []models.Job
	existErr  error
	appendErr error
	failAfter int
	onAppend  func(models.Job)
}

func (m *memoryStore) ExistingIDs(_ context.Context) ([]string, error) {
	if m.existErr != nil {
		return nil, m.existErr
	}
	return append([]string{}, m.ids...), nil
}

func (m *memoryStore) Append(_ context.Context, job models.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil && len(m.jobs) >= m.failAfter {
		return m.appendErr
	}
	m.ids = append(m.ids, job.ID)
	m.jobs = append(m.jobs, job)
	if m.onAppend != nil {
		m.onAppend(job)
	}
	return nil
}

type staticProfile struct {
	profile models.Profile
	err     error
}

func (s staticProfile) Load(_ context.Context) (models.Profile, error) {
	if s.err != nil {
		return models.Profile{}, s.err
	}
	return s.profile, s.profile.Validate()
}

type memoryRuns struct {
	mu    sync.Mutex
	saved []models.Run
}

func (m *memoryRuns) Save(_ context.Context, run models.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, run)
	return nil
}

func (m *memoryRuns) statuses() []models.RunStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	var statuses []models.RunStatus
	for _, run := range m.saved {
		if len(statuses) == 0 || statuses[len(statuses)-1] != run.Status {
			statuses = append(statuses, run.Status)
		}
	}
	return statuses
}

type fakeLocker struct {
	locked   bool
	unlocked bool
}

func (f *fakeLocker) TryLock() (bool, error) {
	return !f.locked, nil
}

func (f *fakeLocker) Unlock() error {
	f.unlocked = true
	return nil
}
