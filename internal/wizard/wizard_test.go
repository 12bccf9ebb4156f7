package wizard

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"taskoraClient/internal/models"
)

func TestSplitSkills(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"trailing comma and spaces", "React, Node.js, ", []string{"React", "Node.js"}},
		{"single", "Go", []string{"Go"}},
		{"empty", "", []string{}},
		{"only separators", " , ,, ", []string{}},
		{"untrimmed entries", "  Go ,  SQL", []string{"Go", "SQL"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SplitSkills(tc.raw); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestStepClamping(t *testing.T) {
	w := New(3, nil)

	w.Back()
	if w.Step() != 1 {
		t.Fatalf("back on first step moved to %d", w.Step())
	}

	w.Next()
	w.Next()
	w.Next()
	if w.Step() != 3 {
		t.Fatalf("next past last step moved to %d", w.Step())
	}
	if !w.IsLast() {
		t.Fatal("expected last step")
	}
}

func TestDraftSurvivesNavigation(t *testing.T) {
	w := New(3, nil)

	w.Update(func(d *Draft) { d.Title = "Telegram bot" })
	w.Next()
	w.Update(func(d *Draft) { d.SkillsRaw = "Go, Redis" })
	w.Back()
	w.Next()

	draft := w.Draft()
	if draft.Title != "Telegram bot" || draft.SkillsRaw != "Go, Redis" {
		t.Fatalf("draft lost across navigation: %+v", draft)
	}
}

func TestSubmitCoercion(t *testing.T) {
	var submitted models.AssignmentInput
	w := New(2, func(ctx context.Context, input models.AssignmentInput) (int, error) {
		submitted = input
		return 42, nil
	})

	w.Update(func(d *Draft) {
		d.Title = "  Landing page  "
		d.SkillsRaw = "React, Node.js, "
		d.BudgetFrom = "40000"
		d.BudgetTo = "90000.50"
		d.Duration = "14"
	})

	id, err := w.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}
	if submitted.Title != "Landing page" {
		t.Fatalf("title not trimmed: %q", submitted.Title)
	}
	if !reflect.DeepEqual(submitted.Skills, []string{"React", "Node.js"}) {
		t.Fatalf("skills not coerced: %v", submitted.Skills)
	}
	if submitted.BudgetFrom != 40000 || submitted.BudgetTo != 90000.50 {
		t.Fatalf("budget not coerced: %+v", submitted)
	}
	if submitted.DurationDays != 14 {
		t.Fatalf("duration not coerced: %d", submitted.DurationDays)
	}
}

func TestSubmitValidation(t *testing.T) {
	cases := []struct {
		name  string
		setup func(*Draft)
	}{
		{"empty title", func(d *Draft) { d.Title = "   " }},
		{"bad budget", func(d *Draft) { d.Title = "x"; d.BudgetFrom = "abc" }},
		{"bad duration", func(d *Draft) { d.Title = "x"; d.Duration = "two weeks" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			w := New(2, func(ctx context.Context, input models.AssignmentInput) (int, error) {
				called = true
				return 0, nil
			})
			w.Update(tc.setup)

			if _, err := w.Submit(context.Background()); err == nil {
				t.Fatal("expected error")
			}
			if called {
				t.Fatal("submit must not be called on invalid draft")
			}
		})
	}
}

func TestFailedSubmitKeepsDraft(t *testing.T) {
	w := New(2, func(ctx context.Context, input models.AssignmentInput) (int, error) {
		return 0, errors.New("server down")
	})
	w.Update(func(d *Draft) {
		d.Title = "Logo"
		d.SkillsRaw = "Figma"
	})

	if _, err := w.Submit(context.Background()); err == nil {
		t.Fatal("expected submit error")
	}

	draft := w.Draft()
	if draft.Title != "Logo" || draft.SkillsRaw != "Figma" {
		t.Fatalf("draft not preserved after failure: %+v", draft)
	}
}
