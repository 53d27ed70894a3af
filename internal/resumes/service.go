package resumes

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-screener/internal/extract"
	"resume-screener/internal/llm"
	"resume-screener/internal/users"
)

// Service contains resume business logic.
type Service struct {
	Repo Repo
	AI   llm.Client
	// Extract overrides PDF text extraction; nil means extract.PDFText.
	Extract func(ctx context.Context, data []byte, mimeType string) (string, error)
}

func (s *Service) extractText(ctx context.Context, data []byte, mimeType string) (string, error) {
	if s.Extract != nil {
		return s.Extract(ctx, data, mimeType)
	}
	return extract.PDFText(ctx, data, mimeType)
}

// Submit parses the uploaded PDF, asks the AI client for a score, and persists
// the record as a new version of (owner, name). Nothing is persisted if the
// AI call fails.
func (s *Service) Submit(ctx context.Context, actor Actor, targetUserID, name, jobDesc string, fileData []byte, mimeType string) (Resume, string, error) {
	name = strings.TrimSpace(name)
	jobDesc = strings.TrimSpace(jobDesc)
	if name == "" || jobDesc == "" {
		return Resume{}, "", ErrInvalidInput
	}
	if len(fileData) == 0 {
		return Resume{}, "", fmt.Errorf("%w: pdf file is required", ErrInvalidInput)
	}

	// Candidates always upload for themselves; staff may designate an owner.
	ownerID := actor.ID
	if users.IsStaff(actor.Role) && strings.TrimSpace(targetUserID) != "" {
		ownerID = strings.TrimSpace(targetUserID)
	}

	text, err := s.extractText(ctx, fileData, mimeType)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupported) {
			return Resume{}, "", fmt.Errorf("%w: only PDF files are accepted", ErrInvalidInput)
		}
		return Resume{}, "", fmt.Errorf("%w: unreadable pdf", ErrInvalidInput)
	}
	text = truncateForPrompt(text)

	raw, err := s.AI.Complete(ctx, buildScoringPrompt(text, jobDesc))
	if err != nil {
		return Resume{}, "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	score, feedback := ParseAIResult(raw)

	rec := Resume{
		ID:         uuid.NewString(),
		UserID:     ownerID,
		Name:       name,
		JobDesc:    jobDesc,
		ResumeText: text,
		Score:      score,
		Feedback:   feedback,
		Version:    1,
		IsLatest:   true,
		CreatedAt:  time.Now().UTC(),
	}

	prevID := ""
	prev, err := s.Repo.GetLatest(ctx, ownerID, name)
	switch {
	case err == nil:
		rec.Version = prev.Version + 1
		rec.ParentID = &prev.ID
		prevID = prev.ID
	case errors.Is(err, ErrNotFound):
		// first upload under this name
	default:
		return Resume{}, "", err
	}

	if err := s.Repo.CreateVersion(ctx, rec, prevID); err != nil {
		return Resume{}, "", err
	}
	return rec, raw, nil
}

// Get returns a record after an ownership check.
func (s *Service) Get(ctx context.Context, actor Actor, id string) (Resume, error) {
	rec, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Resume{}, err
	}
	if err := s.canRead(actor, rec); err != nil {
		return Resume{}, err
	}
	return rec, nil
}

// Mine lists the actor's own records matching f, newest first.
func (s *Service) Mine(ctx context.Context, actor Actor, f Filter) ([]Resume, error) {
	f.UserID = ""
	f.SearchText = false
	return s.Repo.ListByUser(ctx, actor.ID, f)
}

// ListAll lists records across users for staff callers.
func (s *Service) ListAll(ctx context.Context, actor Actor, f Filter, limit, offset int) ([]Resume, int, error) {
	if !users.IsStaff(actor.Role) {
		return nil, 0, ErrForbidden
	}
	f.SearchText = true
	return s.Repo.List(ctx, f, limit, offset)
}

// Versions returns the full revision chain containing id, version ascending.
// Ownership is checked against the requested record.
func (s *Service) Versions(ctx context.Context, actor Actor, id string) ([]Resume, error) {
	anchor, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	chain := []Resume{anchor}

	// Walk up to the root.
	cur := anchor
	for cur.ParentID != nil {
		parent, err := s.Repo.GetByID(ctx, *cur.ParentID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				break
			}
			return nil, err
		}
		chain = append(chain, parent)
		cur = parent
	}

	// Walk down to the latest.
	cur = anchor
	for !cur.IsLatest {
		child, err := s.Repo.GetChild(ctx, cur.ID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				break
			}
			return nil, err
		}
		chain = append(chain, child)
		cur = child
	}

	sort.Slice(chain, func(i, j int) bool { return chain[i].Version < chain[j].Version })
	return chain, nil
}

// Compare returns the full records for at least two ids, each ownership
// checked. The ids are validated before any store access.
func (s *Service) Compare(ctx context.Context, actor Actor, ids []string) ([]Resume, error) {
	if len(ids) < 2 {
		return nil, fmt.Errorf("%w: at least two ids are required", ErrInvalidInput)
	}
	out := make([]Resume, 0, len(ids))
	for _, id := range ids {
		rec, err := s.Get(ctx, actor, id)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// CoverLetter drafts a cover letter for a record via the AI client. An empty
// AI response is an upstream failure.
func (s *Service) CoverLetter(ctx context.Context, actor Actor, id, company, role, tone, notes string) (string, error) {
	company = strings.TrimSpace(company)
	role = strings.TrimSpace(role)
	if company == "" || role == "" {
		return "", ErrInvalidInput
	}

	rec, err := s.Get(ctx, actor, id)
	if err != nil {
		return "", err
	}

	prompt := buildCoverLetterPrompt(truncateForPrompt(rec.ResumeText), rec.JobDesc, company, role, strings.TrimSpace(tone), strings.TrimSpace(notes))
	text, err := s.AI.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: empty response", ErrUpstream)
	}
	return text, nil
}

func (s *Service) canRead(actor Actor, rec Resume) error {
	if users.IsStaff(actor.Role) {
		return nil
	}
	if rec.UserID != actor.ID {
		return ErrForbidden
	}
	return nil
}
