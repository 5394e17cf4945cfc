package domain

// ChatRequest is the body of /chat (JSON or form variants).
type ChatRequest struct {
	SessionID string `json:"session_id" form:"session_id"`
	Message   string `json:"message" form:"message"`
	Language  string `json:"language" form:"language"`
}

// ChatResponse is the response from a chat turn.
type ChatResponse struct {
	Answer         string       `json:"answer"`
	SessionID      string       `json:"session_id"`
	State          SessionState `json:"state"`
	CurrentCourse  string       `json:"current_course,omitempty"`
	CurrentChapter string       `json:"current_chapter,omitempty"`
	Language       string       `json:"language"`
}

// SubmissionResult is the response from /submit_solution.
type SubmissionResult struct {
	AssignmentID int64  `json:"assignment_id"`
	Score        int    `json:"score"`
	Feedback     string `json:"feedback"`
	SolutionURI  string `json:"solution_uri"`
}
