package resumes

import "time"

// Resume is one scored upload. Re-uploading under the same (user, name) forms
// a revision chain: the new record points at its predecessor via ParentID and
// becomes the only record with IsLatest set for that pair.
type Resume struct {
	ID         string
	UserID     string
	Name       string
	JobDesc    string
	ResumeText string
	Score      *int // nil = the AI response carried no recognizable score
	Feedback   string
	Version    int
	ParentID   *string
	IsLatest   bool
	CreatedAt  time.Time
}

// Actor is the authenticated identity performing an operation.
type Actor struct {
	ID   string
	Role string
}
