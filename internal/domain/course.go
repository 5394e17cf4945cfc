package domain

import "time"

// Material references one course document in the external document store.
type Material struct {
	CourseID    string `json:"course_id"`
	ChapterName string `json:"chapter_name"`
	DocURI      string `json:"doc_uri"`
}

// Assignment is a question paper registered for scoring, with the submitted
// solution and score filled in after grading.
type Assignment struct {
	ID             int64     `json:"id"`
	CourseName     string    `json:"course_name"`
	AssignmentName string    `json:"assignment_name"`
	AssignmentURI  string    `json:"assignment_uri"`
	SolutionURI    string    `json:"solution_uri,omitempty"`
	Score          *int      `json:"score,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}
