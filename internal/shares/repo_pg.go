package shares

import (
	"context"
	"database/sql"
	"errors"
)

const shareColumns = "token, resume_id, owner_id, expires_at, allow_download, note, created_at"

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new share link.
func (r *PGRepo) Create(ctx context.Context, link ShareLink) error {
	const query = `
INSERT INTO share_links (token, resume_id, owner_id, expires_at, allow_download, note, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	var expiresAt sql.NullTime
	if link.ExpiresAt != nil {
		expiresAt = sql.NullTime{Time: *link.ExpiresAt, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		link.Token,
		link.ResumeID,
		link.OwnerID,
		expiresAt,
		link.AllowDownload,
		link.Note,
		link.CreatedAt,
	)
	return err
}

// GetByToken fetches a link by token.
func (r *PGRepo) GetByToken(ctx context.Context, token string) (ShareLink, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+shareColumns+` FROM share_links WHERE token = $1`, token)

	var link ShareLink
	var expiresAt sql.NullTime
	err := row.Scan(
		&link.Token,
		&link.ResumeID,
		&link.OwnerID,
		&expiresAt,
		&link.AllowDownload,
		&link.Note,
		&link.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ShareLink{}, ErrNotFound
		}
		return ShareLink{}, err
	}
	if expiresAt.Valid {
		link.ExpiresAt = &expiresAt.Time
	}
	return link, nil
}

// ListByOwner returns an owner's links, newest first.
func (r *PGRepo) ListByOwner(ctx context.Context, ownerID string) ([]ShareLink, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+shareColumns+` FROM share_links WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ShareLink
	for rows.Next() {
		var link ShareLink
		var expiresAt sql.NullTime
		if err := rows.Scan(
			&link.Token,
			&link.ResumeID,
			&link.OwnerID,
			&expiresAt,
			&link.AllowDownload,
			&link.Note,
			&link.CreatedAt,
		); err != nil {
			return nil, err
		}
		if expiresAt.Valid {
			link.ExpiresAt = &expiresAt.Time
		}
		out = append(out, link)
	}
	return out, rows.Err()
}

// Delete removes a link by token.
func (r *PGRepo) Delete(ctx context.Context, token string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM share_links WHERE token = $1`, token)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteOwned removes a link iff owned by ownerID.
func (r *PGRepo) DeleteOwned(ctx context.Context, ownerID, token string) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM share_links WHERE token = $1 AND owner_id = $2`, token, ownerID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
