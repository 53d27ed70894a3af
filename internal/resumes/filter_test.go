package resumes

import (
	"strings"
	"testing"
	"time"
)

func sampleResume() Resume {
	score := 80
	return Resume{
		ID:         "r1",
		UserID:     "user-1",
		Name:       "Backend Engineer",
		JobDesc:    "Go services on Kubernetes",
		ResumeText: "five years writing Go and Postgres systems",
		Score:      &score,
		Feedback:   "good coverage of required skills",
		CreatedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestFilterMinScoreExcludesUnscored(t *testing.T) {
	min := 70
	f := Filter{MinScore: &min}

	scored := sampleResume()
	if !f.Matches(scored) {
		t.Fatalf("expected score 80 to pass minScore 70")
	}

	low := sampleResume()
	*low.Score = 50
	if f.Matches(low) {
		t.Fatalf("expected score 50 to fail minScore 70")
	}

	unscored := sampleResume()
	unscored.Score = nil
	if f.Matches(unscored) {
		t.Fatalf("expected unscored record to fail minScore 70")
	}
}

func TestFilterKeywordsAndAcrossTermsOrAcrossTargets(t *testing.T) {
	rec := sampleResume()

	// Each term may match any of resume text, job description, or feedback.
	f := Filter{Keywords: []string{"postgres", "kubernetes"}}
	if !f.Matches(rec) {
		t.Fatalf("expected terms matching different targets to pass")
	}

	f = Filter{Keywords: []string{"postgres", "terraform"}}
	if f.Matches(rec) {
		t.Fatalf("expected unmatched term to fail the whole filter")
	}
}

func TestFilterFreeTextTargets(t *testing.T) {
	rec := sampleResume()

	f := Filter{Q: "BACKEND"}
	if !f.Matches(rec) {
		t.Fatalf("expected case-insensitive match on name")
	}

	// Resume text is only searched for privileged queries.
	f = Filter{Q: "five years"}
	if f.Matches(rec) {
		t.Fatalf("expected resume text to be excluded without SearchText")
	}
	f.SearchText = true
	if !f.Matches(rec) {
		t.Fatalf("expected resume text to be included with SearchText")
	}
}

func TestFilterDateBoundsInclusive(t *testing.T) {
	rec := sampleResume()
	from := rec.CreatedAt
	to := rec.CreatedAt

	f := Filter{From: &from, To: &to}
	if !f.Matches(rec) {
		t.Fatalf("expected bounds equal to createdAt to match")
	}

	after := rec.CreatedAt.Add(time.Second)
	f = Filter{From: &after}
	if f.Matches(rec) {
		t.Fatalf("expected record before from-bound to fail")
	}
}

func TestFilterSQLComposesConditions(t *testing.T) {
	min := 70
	f := Filter{
		Q:        "engineer",
		Keywords: []string{"go"},
		MinScore: &min,
		UserID:   "user-1",
	}

	clause, args := f.SQL(2)
	if clause == "" {
		t.Fatalf("expected non-empty clause")
	}
	if len(args) != 4 {
		t.Fatalf("expected 4 args, got %d: %v", len(args), args)
	}
	if !strings.Contains(clause, "$2") || !strings.Contains(clause, "$5") {
		t.Fatalf("expected placeholders starting at $2, got %q", clause)
	}
	if !strings.Contains(clause, "score IS NOT NULL") {
		t.Fatalf("expected score bound to exclude unscored rows, got %q", clause)
	}
}

func TestFilterSQLEmpty(t *testing.T) {
	clause, args := Filter{}.SQL(1)
	if clause != "" || args != nil {
		t.Fatalf("expected empty clause for empty filter, got %q %v", clause, args)
	}
}

func TestParseKeywords(t *testing.T) {
	got := ParseKeywords(" go , postgres ,,kubernetes ")
	if len(got) != 3 || got[0] != "go" || got[1] != "postgres" || got[2] != "kubernetes" {
		t.Fatalf("unexpected keywords: %v", got)
	}
	if ParseKeywords("   ") != nil {
		t.Fatalf("expected nil for blank input")
	}
}
