package cmd

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/Tharunnsai/AuntMay/internal/evaluator"
	"github.com/Tharunnsai/AuntMay/internal/orchestrator"
	"github.com/Tharunnsai/AuntMay/internal/quizgen"
	"github.com/Tharunnsai/AuntMay/internal/store"
	"github.com/Tharunnsai/AuntMay/internal/synthesis"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	labelStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C"))
	correctStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))
	wrongStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ED567A"))
)

func renderResult(r *orchestrator.Result) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Quiz: %s", r.Topic)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("id %s · %s · %d questions", r.QuizID, r.Difficulty, len(r.Questions))))
	b.WriteString("\n\n")

	if r.Research != nil && !r.Research.Degraded {
		b.WriteString(labelStyle.Render("Research: "))
		b.WriteString(r.Research.Summary)
		b.WriteString("\n")
		if n := len(r.Research.Sources); n > 0 {
			b.WriteString(dimStyle.Render(fmt.Sprintf("(%d sources consulted)", n)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(renderQuestions(r.Questions, false))
	return b.String()
}

func renderQuestions(questions []quizgen.Question, showAnswers bool) string {
	var b strings.Builder

	for _, q := range questions {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%d. %s", q.ID, q.Text)))
		b.WriteString("\n")
		for _, key := range quizgen.OptionKeys {
			marker := "  "
			if showAnswers && key == q.CorrectOption {
				marker = correctStyle.Render("✓ ")
			}
			b.WriteString(fmt.Sprintf("  %s%s) %s\n", marker, key, q.Options[key]))
		}
		if showAnswers && q.Explanation != "" {
			b.WriteString(dimStyle.Render("     " + q.Explanation))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderResearch(tr *synthesis.TopicResearch) string {
	var b strings.Builder

	b.WriteString(labelStyle.Render("Summary"))
	b.WriteString("\n" + tr.Summary + "\n\n")

	b.WriteString(labelStyle.Render("Key concepts"))
	b.WriteString("\n")
	for _, c := range tr.KeyConcepts {
		b.WriteString("  • " + c + "\n")
	}
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Difficulty facts"))
	b.WriteString("\n")
	for _, f := range tr.DifficultyFacts {
		b.WriteString("  • " + f + "\n")
	}

	if len(tr.Sources) > 0 {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Sources"))
		b.WriteString("\n")
		for _, s := range tr.Sources {
			b.WriteString(fmt.Sprintf("  %.2f  %s\n", s.RelevanceScore, s.URL))
			if s.Title != "" {
				b.WriteString(dimStyle.Render("        "+s.Title) + "\n")
			}
		}
	}
	if tr.Degraded {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("Research was unavailable for this quiz; placeholder content shown."))
		b.WriteString("\n")
	}
	return b.String()
}

func renderEvaluation(bundle *store.QuizBundle, ev *evaluator.Evaluation) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Results: %s", bundle.Topic)))
	b.WriteString("\n\n")

	for _, res := range ev.Results {
		mark := correctStyle.Render("✓")
		if !res.IsCorrect {
			mark = wrongStyle.Render("✗")
		}
		b.WriteString(fmt.Sprintf("%s Question %d: you answered %s", mark, res.QuestionID, res.YourAnswer))
		if !res.IsCorrect {
			b.WriteString(fmt.Sprintf(" (correct: %s)", res.CorrectAnswer))
		}
		b.WriteString("\n")
		if res.Explanation != "" {
			b.WriteString(dimStyle.Render("   " + res.Explanation))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	score := fmt.Sprintf("Score: %d%% (%d/%d)", ev.Score, ev.CorrectCount, ev.TotalEvaluated)
	if ev.Score >= 70 {
		b.WriteString(correctStyle.Render(score))
	} else {
		b.WriteString(wrongStyle.Render(score))
	}
	b.WriteString("\n")
	return b.String()
}
