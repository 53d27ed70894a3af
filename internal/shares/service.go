package shares

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"resume-screener/internal/resumes"
	"resume-screener/internal/shared/telemetry"
	"resume-screener/internal/users"
)

// Service contains share-link business logic.
type Service struct {
	Repo    Repo
	Resumes resumes.Repo
	// BaseURL prefixes public share URLs, e.g. https://app.example.com.
	BaseURL string
}

// Resolved is what a token grants access to.
type Resolved struct {
	Resume        resumes.Resume
	AllowDownload bool
	Note          string
	SharedAt      time.Time
}

// Create issues a share link for a resume the actor owns (staff may share any
// record they can read). expiresInDays <= 0 means the link never expires.
func (s *Service) Create(ctx context.Context, actor resumes.Actor, resumeID string, expiresInDays int, allowDownload bool, note string) (ShareLink, string, error) {
	rec, err := s.Resumes.GetByID(ctx, resumeID)
	if err != nil {
		if errors.Is(err, resumes.ErrNotFound) {
			return ShareLink{}, "", ErrNotFound
		}
		return ShareLink{}, "", err
	}
	if rec.UserID != actor.ID && !users.IsStaff(actor.Role) {
		return ShareLink{}, "", ErrForbidden
	}

	token, err := newToken()
	if err != nil {
		return ShareLink{}, "", err
	}

	now := time.Now().UTC()
	link := ShareLink{
		Token:         token,
		ResumeID:      rec.ID,
		OwnerID:       actor.ID,
		AllowDownload: allowDownload,
		Note:          strings.TrimSpace(note),
		CreatedAt:     now,
	}
	if expiresInDays > 0 {
		expires := now.Add(time.Duration(expiresInDays) * 24 * time.Hour)
		link.ExpiresAt = &expires
	}

	if err := s.Repo.Create(ctx, link); err != nil {
		return ShareLink{}, "", err
	}
	return link, s.publicURL(token), nil
}

// Resolve grants access by token without authentication. Expired links are
// purged best-effort and reported as expired.
func (s *Service) Resolve(ctx context.Context, token string) (Resolved, error) {
	link, err := s.Repo.GetByToken(ctx, token)
	if err != nil {
		return Resolved{}, err
	}

	if link.Expired(time.Now().UTC()) {
		if delErr := s.Repo.Delete(ctx, token); delErr != nil && !errors.Is(delErr, ErrNotFound) {
			telemetry.Warn("share.expired_cleanup_failed", map[string]any{
				"token_prefix": tokenPrefix(token),
				"error":        delErr.Error(),
			})
		}
		return Resolved{}, ErrExpired
	}

	rec, err := s.Resumes.GetByID(ctx, link.ResumeID)
	if err != nil {
		if errors.Is(err, resumes.ErrNotFound) {
			return Resolved{}, ErrNotFound
		}
		return Resolved{}, err
	}

	return Resolved{
		Resume:        rec,
		AllowDownload: link.AllowDownload,
		Note:          link.Note,
		SharedAt:      link.CreatedAt,
	}, nil
}

// List returns the actor's links, newest first.
func (s *Service) List(ctx context.Context, ownerID string) ([]ShareLink, error) {
	return s.Repo.ListByOwner(ctx, ownerID)
}

// Revoke deletes a link the actor owns. Foreign and unknown tokens are both
// reported as not found so tokens cannot be probed.
func (s *Service) Revoke(ctx context.Context, ownerID, token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrInvalidInput
	}
	return s.Repo.DeleteOwned(ctx, ownerID, token)
}

// PublicURL renders the public link for a token.
func (s *Service) PublicURL(token string) string {
	return s.publicURL(token)
}

func (s *Service) publicURL(token string) string {
	return fmt.Sprintf("%s/share/%s", strings.TrimSuffix(s.BaseURL, "/"), token)
}

func newToken() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generate share token: %w", err)
	}
	return hex.EncodeToString(b[:]), nil
}

func tokenPrefix(token string) string {
	if len(token) > 8 {
		return token[:8]
	}
	return token
}
