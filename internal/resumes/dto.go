package resumes

import "time"

// Response is the outward-facing representation of a resume record.
type Response struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Name      string    `json:"name"`
	JobDesc   string    `json:"jobDesc"`
	Score     *int      `json:"score"`
	Feedback  string    `json:"feedback"`
	Version   int       `json:"version"`
	ParentID  *string   `json:"parentResume"`
	IsLatest  bool      `json:"isLatest"`
	CreatedAt time.Time `json:"createdAt"`
}

func toResponse(rec Resume) Response {
	return Response{
		ID:        rec.ID,
		UserID:    rec.UserID,
		Name:      rec.Name,
		JobDesc:   rec.JobDesc,
		Score:     rec.Score,
		Feedback:  rec.Feedback,
		Version:   rec.Version,
		ParentID:  rec.ParentID,
		IsLatest:  rec.IsLatest,
		CreatedAt: rec.CreatedAt,
	}
}

func toResponses(recs []Resume) []Response {
	out := make([]Response, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toResponse(rec))
	}
	return out
}
