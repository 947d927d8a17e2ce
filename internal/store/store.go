package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Tharunnsai/AuntMay/internal/quizgen"
	"github.com/Tharunnsai/AuntMay/internal/synthesis"
)

// ErrNotFound is returned when a quiz id has no stored record.
var ErrNotFound = errors.New("not found")

// QuizBundle is a completed quiz keyed by its id. Created atomically by the
// orchestrator after successful generation; immutable afterwards except for
// deletion.
type QuizBundle struct {
	ID         uuid.UUID          `json:"quizId"`
	Topic      string             `json:"topic"`
	Difficulty string             `json:"difficulty"`
	CreatedAt  time.Time          `json:"createdAt"`
	Questions  []quizgen.Question `json:"questions"`
}

// Attempt is one recorded quiz submission.
type Attempt struct {
	QuizID  uuid.UUID `json:"quizId"`
	Topic   string    `json:"topic"`
	TakenAt time.Time `json:"dateTaken"`
	Score   int       `json:"score"`
}

// QuizRepo stores quiz bundles keyed by id. Deleting a quiz cascades to its
// research record and attempts.
type QuizRepo interface {
	Put(ctx context.Context, bundle *QuizBundle) error
	Get(ctx context.Context, id uuid.UUID) (*QuizBundle, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*QuizBundle, error)
}

// ResearchRepo stores the research artifact behind each generated quiz,
// keyed by the quiz id.
type ResearchRepo interface {
	Put(ctx context.Context, quizID uuid.UUID, tr *synthesis.TopicResearch) error
	Get(ctx context.Context, quizID uuid.UUID) (*synthesis.TopicResearch, error)
}

// AttemptRepo records quiz submissions for the history view.
type AttemptRepo interface {
	Record(ctx context.Context, attempt Attempt) error
	List(ctx context.Context) ([]Attempt, error)
}

// Store bundles the three repositories behind one handle.
type Store interface {
	Quizzes() QuizRepo
	Research() ResearchRepo
	Attempts() AttemptRepo
	Close() error
}
