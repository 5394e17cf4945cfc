package repository

import (
	"tutorbot/internal/domain"
)

// CourseRepository reads the course/chapter/document catalog
type CourseRepository struct {
	db *DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// ListCourses returns all known course identifiers
func (r *CourseRepository) ListCourses() ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT course_id FROM course_materials ORDER BY course_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// ListChapters returns the chapters of a course
func (r *CourseRepository) ListChapters(courseID string) ([]string, error) {
	rows, err := r.db.Query(`
		SELECT DISTINCT chapter_name FROM course_materials
		WHERE course_id = ? ORDER BY chapter_name
	`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chapters []string
	for rows.Next() {
		var ch string
		if err := rows.Scan(&ch); err != nil {
			return nil, err
		}
		chapters = append(chapters, ch)
	}
	return chapters, rows.Err()
}

// ListMaterials returns the document references for a course, optionally
// filtered to one chapter (nil means all chapters).
func (r *CourseRepository) ListMaterials(courseID string, chapter *string) ([]domain.Material, error) {
	query := `SELECT course_id, chapter_name, doc_uri FROM course_materials WHERE course_id = ?`
	args := []any{courseID}
	if chapter != nil {
		query += ` AND chapter_name = ?`
		args = append(args, *chapter)
	}
	query += ` ORDER BY chapter_name, doc_uri`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var materials []domain.Material
	for rows.Next() {
		var m domain.Material
		if err := rows.Scan(&m.CourseID, &m.ChapterName, &m.DocURI); err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

// AddMaterial registers a course document
func (r *CourseRepository) AddMaterial(m domain.Material) error {
	_, err := r.db.Exec(`
		INSERT INTO course_materials (course_id, chapter_name, doc_uri)
		VALUES (?, ?, ?)
		ON CONFLICT (course_id, chapter_name, doc_uri) DO NOTHING
	`, m.CourseID, m.ChapterName, m.DocURI)
	return err
}
