package database

import (
	"database/sql"
	"fmt"
	"time"
)

// Repository handles database operations
type Repository struct {
	db *DB
}

// NewRepository creates a new repository
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// SaveAssessment inserts an assessment, upserting on task hash so a repeated
// rating refreshes the stored scores instead of duplicating the row
func (r *Repository) SaveAssessment(a *Assessment) error {
	stmt, err := r.db.GetPreparedStatement("insert_assessment")
	if err != nil {
		return err
	}

	_, err = stmt.Exec(
		a.ID, a.TaskHash, a.TaskVector, a.Scores, a.BestFit, a.BestScore,
		a.IPAddress, a.UserAgent, a.IsPublic, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save assessment: %w", err)
	}

	return nil
}

// GetAssessmentByHash looks up a stored assessment for a task vector hash
func (r *Repository) GetAssessmentByHash(taskHash string) (*Assessment, error) {
	stmt, err := r.db.GetPreparedStatement("get_assessment_by_hash")
	if err != nil {
		return nil, err
	}

	var a Assessment
	err = stmt.QueryRow(taskHash).Scan(
		&a.ID, &a.TaskHash, &a.TaskVector, &a.Scores, &a.BestFit, &a.BestScore,
		&a.IsPublic, &a.CreatedAt, &a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query assessment: %w", err)
	}

	return &a, nil
}

// GetRecentAssessments returns the most recent public assessments
func (r *Repository) GetRecentAssessments(limit int) ([]*Assessment, error) {
	stmt, err := r.db.GetPreparedStatement("get_recent_assessments")
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent assessments: %w", err)
	}
	defer rows.Close()

	var assessments []*Assessment
	for rows.Next() {
		var a Assessment
		if err := rows.Scan(
			&a.ID, &a.TaskHash, &a.TaskVector, &a.Scores, &a.BestFit, &a.BestScore,
			&a.IsPublic, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		assessments = append(assessments, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assessments: %w", err)
	}

	return assessments, nil
}

// GetStats returns aggregate assessment statistics grouped by best-fit profile
func (r *Repository) GetStats() (map[string]interface{}, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM assessments`).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("failed to count assessments: %w", err)
	}

	rows, err := r.db.Query(`
		SELECT best_fit, COUNT(*), AVG(best_score)
		FROM assessments
		GROUP BY best_fit
		ORDER BY COUNT(*) DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessment stats: %w", err)
	}
	defer rows.Close()

	byProfile := make(map[string]interface{})
	for rows.Next() {
		var name string
		var count int
		var avgScore float64
		if err := rows.Scan(&name, &count, &avgScore); err != nil {
			return nil, fmt.Errorf("failed to scan stats row: %w", err)
		}
		percentage := float64(0)
		if total > 0 {
			percentage = float64(count) / float64(total) * 100
		}
		byProfile[name] = map[string]interface{}{
			"count":      count,
			"avg_score":  avgScore,
			"percentage": percentage,
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stats rows: %w", err)
	}

	return map[string]interface{}{
		"total_assessments": total,
		"by_best_fit":       byProfile,
	}, nil
}

// PurgeOlderThan deletes assessments created before the cutoff and
// returns the number of rows removed
func (r *Repository) PurgeOlderThan(cutoff time.Time) (int64, error) {
	stmt, err := r.db.GetPreparedStatement("delete_old_assessments")
	if err != nil {
		return 0, err
	}

	result, err := stmt.Exec(cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge old assessments: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read purge result: %w", err)
	}

	return affected, nil
}
