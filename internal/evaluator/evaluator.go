// Package evaluator scores submitted answer sets against a stored quiz's
// answer key.
package evaluator

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Tharunnsai/AuntMay/internal/quizgen"
	"github.com/Tharunnsai/AuntMay/internal/store"
)

// ErrNoAnswersEvaluated is returned when no submitted answer matched a
// question in the quiz; no score is meaningful.
var ErrNoAnswersEvaluated = errors.New("no answers could be evaluated")

// Answer is one submitted answer. Ephemeral: it exists only for the
// duration of an evaluation call.
type Answer struct {
	QuestionID     int    `json:"questionId"`
	SelectedOption string `json:"selectedOption"`
}

// QuestionResult is the graded outcome for one answered question.
type QuestionResult struct {
	QuestionID    int    `json:"questionId"`
	YourAnswer    string `json:"yourAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
	Explanation   string `json:"explanation"`
}

// Evaluation is the graded outcome for one submission. The score is
// computed over the answers that matched a question, not the quiz's full
// question count.
type Evaluation struct {
	QuizID         uuid.UUID        `json:"quizId"`
	Score          int              `json:"score"`
	CorrectCount   int              `json:"correctCount"`
	TotalEvaluated int              `json:"totalEvaluated"`
	Results        []QuestionResult `json:"results"`
}

// Evaluator grades submissions.
type Evaluator struct {
	log *zap.Logger
}

// New creates an Evaluator. A nil logger is replaced with a no-op logger.
func New(log *zap.Logger) *Evaluator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Evaluator{log: log}
}

// Evaluate grades the answers against the bundle's answer key. Answers for
// question ids absent from the quiz are skipped, not fatal; if nothing at
// all could be evaluated the submission is rejected with
// ErrNoAnswersEvaluated.
func (e *Evaluator) Evaluate(bundle *store.QuizBundle, answers []Answer) (*Evaluation, error) {
	byID := make(map[int]quizgen.Question, len(bundle.Questions))
	for _, q := range bundle.Questions {
		byID[q.ID] = q
	}

	var results []QuestionResult
	correct := 0

	for _, ans := range answers {
		q, ok := byID[ans.QuestionID]
		if !ok {
			e.log.Warn("submitted answer for unknown question, skipping",
				zap.String("quiz_id", bundle.ID.String()),
				zap.Int("question_id", ans.QuestionID))
			continue
		}

		selected := strings.ToUpper(strings.TrimSpace(ans.SelectedOption))
		isCorrect := selected == q.CorrectOption
		if isCorrect {
			correct++
		}

		results = append(results, QuestionResult{
			QuestionID:    ans.QuestionID,
			YourAnswer:    selected,
			CorrectAnswer: q.CorrectOption,
			IsCorrect:     isCorrect,
			Explanation:   q.Explanation,
		})
	}

	if len(results) == 0 {
		return nil, ErrNoAnswersEvaluated
	}

	return &Evaluation{
		QuizID:         bundle.ID,
		Score:          100 * correct / len(results),
		CorrectCount:   correct,
		TotalEvaluated: len(results),
		Results:        results,
	}, nil
}
