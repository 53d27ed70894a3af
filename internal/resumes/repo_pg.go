package resumes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const resumeColumns = "id, user_id, name, job_desc, resume_text, score, feedback, version, parent_id, is_latest, created_at"

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// CreateVersion inserts a record, demoting its predecessor in one transaction.
func (r *PGRepo) CreateVersion(ctx context.Context, rec Resume, prevID string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if prevID != "" {
		// Conditional demotion closes the race between two concurrent
		// submissions claiming the same predecessor.
		res, err := tx.ExecContext(ctx,
			`UPDATE resumes SET is_latest = FALSE WHERE id = $1 AND is_latest`, prevID)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrVersionConflict
		}
	}

	const query = `
INSERT INTO resumes (id, user_id, name, job_desc, resume_text, score, feedback, version, parent_id, is_latest, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	var score sql.NullInt64
	if rec.Score != nil {
		score = sql.NullInt64{Int64: int64(*rec.Score), Valid: true}
	}
	var parentID sql.NullString
	if rec.ParentID != nil {
		parentID = sql.NullString{String: *rec.ParentID, Valid: true}
	}

	if _, err := tx.ExecContext(
		ctx,
		query,
		rec.ID,
		rec.UserID,
		rec.Name,
		rec.JobDesc,
		rec.ResumeText,
		score,
		rec.Feedback,
		rec.Version,
		parentID,
		rec.IsLatest,
		rec.CreatedAt,
	); err != nil {
		return err
	}

	return tx.Commit()
}

// GetByID fetches a record by id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Resume, error) {
	query := fmt.Sprintf(`SELECT %s FROM resumes WHERE id = $1`, resumeColumns)
	return scanResume(r.DB.QueryRowContext(ctx, query, id))
}

// GetLatest fetches the latest record for a (user, name) pair.
func (r *PGRepo) GetLatest(ctx context.Context, userID, name string) (Resume, error) {
	query := fmt.Sprintf(`SELECT %s FROM resumes WHERE user_id = $1 AND name = $2 AND is_latest`, resumeColumns)
	return scanResume(r.DB.QueryRowContext(ctx, query, userID, name))
}

// GetChild fetches the record whose parent is id.
func (r *PGRepo) GetChild(ctx context.Context, id string) (Resume, error) {
	query := fmt.Sprintf(`SELECT %s FROM resumes WHERE parent_id = $1`, resumeColumns)
	return scanResume(r.DB.QueryRowContext(ctx, query, id))
}

// ListByUser lists a user's records matching f, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, f Filter) ([]Resume, error) {
	query := fmt.Sprintf(`SELECT %s FROM resumes WHERE user_id = $1`, resumeColumns)
	args := []any{userID}
	if clause, filterArgs := f.SQL(2); clause != "" {
		query += " AND " + clause
		args = append(args, filterArgs...)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectResumes(rows)
}

// List returns records matching f across all users, newest first, with total.
func (r *PGRepo) List(ctx context.Context, f Filter, limit, offset int) ([]Resume, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	where := ""
	clause, args := f.SQL(1)
	if clause != "" {
		where = " WHERE " + clause
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM resumes" + where
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM resumes%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		resumeColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := collectResumes(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var rec Resume
	var score sql.NullInt64
	var parentID sql.NullString
	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Name,
		&rec.JobDesc,
		&rec.ResumeText,
		&score,
		&rec.Feedback,
		&rec.Version,
		&parentID,
		&rec.IsLatest,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	if score.Valid {
		n := int(score.Int64)
		rec.Score = &n
	}
	if parentID.Valid {
		rec.ParentID = &parentID.String
	}
	return rec, nil
}

func collectResumes(rows *sql.Rows) ([]Resume, error) {
	var out []Resume
	for rows.Next() {
		rec, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
