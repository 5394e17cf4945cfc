package domain

// SessionState is the dialogue mode a conversation is in.
type SessionState string

const (
	StateGeneral          SessionState = "general"
	StateCourseSelection  SessionState = "course_selection"
	StateChapterSelection SessionState = "chapter_selection"
	StateQA               SessionState = "qa_mode"
	StateScoring          SessionState = "scoring_mode"
)

// ExtractedDocument is an uploaded file with its OCR text.
type ExtractedDocument struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
}

// Session holds the per-conversation dialogue state. It is mutated only by
// the dialogue engine, one request at a time.
type Session struct {
	ID             string
	State          SessionState
	CurrentCourse  string
	CurrentChapter *string // nil means "all chapters"
	UploadedDocs   []ExtractedDocument
	AssignmentDoc  *ExtractedDocument
	AnswerDoc      *ExtractedDocument
	Language       string
}

// NewSession creates a session in the initial state.
func NewSession(id, language string) *Session {
	return &Session{
		ID:       id,
		State:    StateGeneral,
		Language: language,
	}
}

// Reset returns the session to its initial state, preserving ID and language.
func (s *Session) Reset() {
	s.State = StateGeneral
	s.CurrentCourse = ""
	s.CurrentChapter = nil
	s.UploadedDocs = nil
	s.AssignmentDoc = nil
	s.AnswerDoc = nil
}
