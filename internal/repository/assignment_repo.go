package repository

import (
	"database/sql"
	"time"

	"tutorbot/internal/domain"
)

// AssignmentRepository handles assignment records
type AssignmentRepository struct {
	db *DB
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// Create registers an assignment question paper and returns its id
func (r *AssignmentRepository) Create(a *domain.Assignment) error {
	a.UpdatedAt = time.Now()
	res, err := r.db.Exec(`
		INSERT INTO assignments (course_name, assignment_name, assignment_uri, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (course_name, assignment_name)
		DO UPDATE SET assignment_uri = excluded.assignment_uri, updated_at = excluded.updated_at
	`, a.CourseName, a.AssignmentName, a.AssignmentURI, a.UpdatedAt)
	if err != nil {
		return err
	}
	if id, err := res.LastInsertId(); err == nil && id > 0 {
		a.ID = id
	}
	return nil
}

// Get retrieves an assignment by id, returning (nil, nil) on a miss
func (r *AssignmentRepository) Get(id int64) (*domain.Assignment, error) {
	a := &domain.Assignment{}
	var solutionURI sql.NullString
	var score sql.NullInt64

	err := r.db.QueryRow(`
		SELECT id, course_name, assignment_name, assignment_uri, solution_uri, score, updated_at
		FROM assignments WHERE id = ?
	`, id).Scan(&a.ID, &a.CourseName, &a.AssignmentName, &a.AssignmentURI,
		&solutionURI, &score, &a.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if solutionURI.Valid {
		a.SolutionURI = solutionURI.String
	}
	if score.Valid {
		s := int(score.Int64)
		a.Score = &s
	}
	return a, nil
}

// SetSolution records the submitted solution link and score
func (r *AssignmentRepository) SetSolution(id int64, solutionURI string, score int) error {
	res, err := r.db.Exec(`
		UPDATE assignments SET solution_uri = ?, score = ?, updated_at = ? WHERE id = ?
	`, solutionURI, score, time.Now(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
