package resume

import "time"

// UploadResponse represents the response for POST /v1/resumes.
type UploadResponse struct {
	ResumeID string `json:"resume_id"`
	FileName string `json:"file_name"`
	Status   string `json:"status"` // "uploaded" | "analyzed"
}

// Item represents a resume in list/detail responses.
type Item struct {
	ResumeID        string    `json:"resume_id"`
	FileName        string    `json:"file_name"`
	Score           *int      `json:"score,omitempty"`
	Skills          []string  `json:"skills,omitempty"`
	ExperienceYears *int      `json:"experience_years,omitempty"`
	Education       *string   `json:"education,omitempty"`
	UploadedAt      time.Time `json:"uploaded_at"`
}

// ListResponse represents the response for GET /v1/resumes.
type ListResponse struct {
	Resumes []Item `json:"resumes"`
}
