package wizard

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"taskoraClient/internal/models"
)

// Draft holds everything the posting form collects across its steps,
// as the user typed it. Nothing leaves memory until Submit.
type Draft struct {
	Title       string
	Description string
	Category    string
	SkillsRaw   string // comma-separated, coerced on submit
	BudgetFrom  string
	BudgetTo    string
	Duration    string
}

// Submit posts the coerced draft and returns the created resource ID.
type Submit func(ctx context.Context, input models.AssignmentInput) (int, error)

// Wizard walks an assignment/job posting draft through ordered steps.
type Wizard struct {
	steps  int
	step   int
	draft  Draft
	submit Submit
}

func New(steps int, submit Submit) *Wizard {
	if steps < 1 {
		steps = 1
	}
	return &Wizard{steps: steps, step: 1, submit: submit}
}

func (w *Wizard) Step() int     { return w.step }
func (w *Wizard) Steps() int    { return w.steps }
func (w *Wizard) IsFirst() bool { return w.step == 1 }
func (w *Wizard) IsLast() bool  { return w.step == w.steps }

func (w *Wizard) Next() {
	if w.step < w.steps {
		w.step++
	}
}

func (w *Wizard) Back() {
	if w.step > 1 {
		w.step--
	}
}

// Update mutates the draft in place; moving between steps never
// discards it.
func (w *Wizard) Update(mutate func(*Draft)) {
	mutate(&w.draft)
}

func (w *Wizard) Draft() Draft { return w.draft }

// Submit coerces the raw draft into the request payload and posts it
// once. On failure the draft stays as typed so the user can retry.
func (w *Wizard) Submit(ctx context.Context) (int, error) {
	input, err := w.coerce()
	if err != nil {
		return 0, err
	}
	return w.submit(ctx, input)
}

func (w *Wizard) coerce() (models.AssignmentInput, error) {
	if strings.TrimSpace(w.draft.Title) == "" {
		return models.AssignmentInput{}, models.ErrEmptyField
	}

	budgetFrom, err := ParseAmount(w.draft.BudgetFrom)
	if err != nil {
		return models.AssignmentInput{}, fmt.Errorf("budget from: %w", err)
	}
	budgetTo, err := ParseAmount(w.draft.BudgetTo)
	if err != nil {
		return models.AssignmentInput{}, fmt.Errorf("budget to: %w", err)
	}
	duration := 0
	if raw := strings.TrimSpace(w.draft.Duration); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil {
			return models.AssignmentInput{}, fmt.Errorf("duration: %w", err)
		}
	}

	return models.AssignmentInput{
		Title:        strings.TrimSpace(w.draft.Title),
		Description:  strings.TrimSpace(w.draft.Description),
		Category:     w.draft.Category,
		Skills:       SplitSkills(w.draft.SkillsRaw),
		BudgetFrom:   budgetFrom,
		BudgetTo:     budgetTo,
		DurationDays: duration,
	}, nil
}

// SplitSkills turns "React, Node.js, " into ["React", "Node.js"]:
// entries are trimmed and empty ones dropped.
func SplitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		if skill := strings.TrimSpace(part); skill != "" {
			skills = append(skills, skill)
		}
	}
	return skills
}

// ParseAmount parses a numeric form field; empty means zero.
func ParseAmount(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}
