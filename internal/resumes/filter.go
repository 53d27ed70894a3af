package resumes

import (
	"fmt"
	"strings"
	"time"
)

// Filter narrows resume listings. Unset fields impose no constraint; set
// categories combine with AND. Keywords OR across their target columns and
// AND across terms.
type Filter struct {
	Q        string
	Keywords []string
	MinScore *int
	MaxScore *int
	From     *time.Time
	To       *time.Time
	UserID   string // staff-only owner filter
	// SearchText additionally matches Q against the extracted resume text
	// (privileged queries only).
	SearchText bool
}

// ParseKeywords splits a comma-separated keyword list into trimmed terms.
func ParseKeywords(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if term := strings.TrimSpace(part); term != "" {
			out = append(out, term)
		}
	}
	return out
}

// Matches evaluates the filter against a record in memory.
func (f Filter) Matches(r Resume) bool {
	if f.UserID != "" && r.UserID != f.UserID {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Q)); q != "" {
		targets := []string{r.Name, r.JobDesc, r.Feedback}
		if f.SearchText {
			targets = append(targets, r.ResumeText)
		}
		if !containsAny(targets, q) {
			return false
		}
	}
	for _, term := range f.Keywords {
		t := strings.ToLower(strings.TrimSpace(term))
		if t == "" {
			continue
		}
		if !containsAny([]string{r.ResumeText, r.JobDesc, r.Feedback}, t) {
			return false
		}
	}
	if f.MinScore != nil && (r.Score == nil || *r.Score < *f.MinScore) {
		return false
	}
	if f.MaxScore != nil && (r.Score == nil || *r.Score > *f.MaxScore) {
		return false
	}
	if f.From != nil && r.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && r.CreatedAt.After(*f.To) {
		return false
	}
	return true
}

func containsAny(targets []string, loweredNeedle string) bool {
	for _, t := range targets {
		if strings.Contains(strings.ToLower(t), loweredNeedle) {
			return true
		}
	}
	return false
}

// SQL renders the filter as WHERE conditions for the resumes table. Argument
// placeholders start at $startArg. The returned clause is empty when the
// filter is unset.
func (f Filter) SQL(startArg int) (string, []any) {
	var conds []string
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", startArg+len(args)-1)
	}

	if f.UserID != "" {
		conds = append(conds, "user_id = "+next(f.UserID))
	}
	if q := strings.TrimSpace(f.Q); q != "" {
		pat := next("%" + q + "%")
		cols := []string{"name", "job_desc", "feedback"}
		if f.SearchText {
			cols = append(cols, "resume_text")
		}
		var ors []string
		for _, col := range cols {
			ors = append(ors, col+" ILIKE "+pat)
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}
	for _, term := range f.Keywords {
		t := strings.TrimSpace(term)
		if t == "" {
			continue
		}
		pat := next("%" + t + "%")
		conds = append(conds, "(resume_text ILIKE "+pat+" OR job_desc ILIKE "+pat+" OR feedback ILIKE "+pat+")")
	}
	if f.MinScore != nil {
		conds = append(conds, "score IS NOT NULL AND score >= "+next(*f.MinScore))
	}
	if f.MaxScore != nil {
		conds = append(conds, "score IS NOT NULL AND score <= "+next(*f.MaxScore))
	}
	if f.From != nil {
		conds = append(conds, "created_at >= "+next(*f.From))
	}
	if f.To != nil {
		conds = append(conds, "created_at <= "+next(*f.To))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return strings.Join(conds, " AND "), args
}
