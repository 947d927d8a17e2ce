package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Tharunnsai/AuntMay/internal/synthesis"
)

// Memory is an in-process Store backed by mutex-guarded maps. It is the
// default backend and the one tests use.
type Memory struct {
	mu       sync.RWMutex
	quizzes  map[uuid.UUID]*QuizBundle
	research map[uuid.UUID]*synthesis.TopicResearch
	attempts []Attempt
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		quizzes:  make(map[uuid.UUID]*QuizBundle),
		research: make(map[uuid.UUID]*synthesis.TopicResearch),
	}
}

func (m *Memory) Quizzes() QuizRepo      { return (*memQuizRepo)(m) }
func (m *Memory) Research() ResearchRepo { return (*memResearchRepo)(m) }
func (m *Memory) Attempts() AttemptRepo  { return (*memAttemptRepo)(m) }

// Close is a no-op for the in-memory store.
func (m *Memory) Close() error { return nil }

type memQuizRepo Memory

func (r *memQuizRepo) Put(_ context.Context, bundle *QuizBundle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quizzes[bundle.ID] = bundle
	return nil
}

func (r *memQuizRepo) Get(_ context.Context, id uuid.UUID) (*QuizBundle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	bundle, ok := r.quizzes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return bundle, nil
}

// Delete removes the quiz and cascades to its research and attempts.
func (r *memQuizRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.quizzes[id]; !ok {
		return ErrNotFound
	}
	delete(r.quizzes, id)
	delete(r.research, id)

	kept := r.attempts[:0]
	for _, a := range r.attempts {
		if a.QuizID != id {
			kept = append(kept, a)
		}
	}
	r.attempts = kept
	return nil
}

func (r *memQuizRepo) List(_ context.Context) ([]*QuizBundle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*QuizBundle, 0, len(r.quizzes))
	for _, b := range r.quizzes {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

type memResearchRepo Memory

func (r *memResearchRepo) Put(_ context.Context, quizID uuid.UUID, tr *synthesis.TopicResearch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.research[quizID] = tr
	return nil
}

func (r *memResearchRepo) Get(_ context.Context, quizID uuid.UUID) (*synthesis.TopicResearch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tr, ok := r.research[quizID]
	if !ok {
		return nil, ErrNotFound
	}
	return tr, nil
}

type memAttemptRepo Memory

func (r *memAttemptRepo) Record(_ context.Context, attempt Attempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts = append(r.attempts, attempt)
	return nil
}

func (r *memAttemptRepo) List(_ context.Context) ([]Attempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Attempt, len(r.attempts))
	copy(out, r.attempts)
	sort.Slice(out, func(i, j int) bool {
		return out[i].TakenAt.After(out[j].TakenAt)
	})
	return out, nil
}

var _ Store = (*Memory)(nil)
