package database

import (
	"time"

	"github.com/google/uuid"
)

// Assessment is one stored task rating with its computed fit scores
type Assessment struct {
	ID         string    `json:"id" db:"id"`
	TaskHash   string    `json:"-" db:"task_hash"`
	TaskVector string    `json:"task_vector" db:"task_vector"` // JSON array
	Scores     string    `json:"scores" db:"scores"`           // JSON map
	BestFit    string    `json:"best_fit" db:"best_fit"`
	BestScore  float64   `json:"best_score" db:"best_score"`
	IPAddress  string    `json:"-" db:"ip_address"`
	UserAgent  string    `json:"-" db:"user_agent"`
	IsPublic   bool      `json:"is_public" db:"is_public"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// NewAssessment creates an assessment record with a generated ID
func NewAssessment(taskHash, taskVector, scores, bestFit string, bestScore float64, ipAddress, userAgent string, isPublic bool) *Assessment {
	now := time.Now()
	return &Assessment{
		ID:         uuid.New().String(),
		TaskHash:   taskHash,
		TaskVector: taskVector,
		Scores:     scores,
		BestFit:    bestFit,
		BestScore:  bestScore,
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		IsPublic:   isPublic,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
