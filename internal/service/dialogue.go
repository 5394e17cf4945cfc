package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"tutorbot/internal/config"
	"tutorbot/internal/domain"
	"tutorbot/internal/i18n"
	"tutorbot/internal/llm"
)

// Token budgets per completion call.
const (
	practiceMaxTokens = 1500
	groundedMaxTokens = 1000
	scoringMaxTokens  = 1500
)

// intent is the typed result of classifying a message against the
// localized keyword tables. Transitions are decided from it directly,
// never by re-inspecting rendered response text.
type intent int

const (
	intentNone intent = iota
	intentScoring
	intentQA
	intentCourse
	intentGenerate
)

// Engine is the dialogue state machine. Given a session and one incoming
// message or uploaded document, it decides the next state and produces the
// response. All external failures are converted to localized error messages
// at the transition boundary; a failed transition leaves state unchanged.
type Engine struct {
	catalog   CourseCatalog
	materials MaterialSource
	llm       Completer
	prompt    config.PromptConfig
	logger    *zap.Logger
}

// NewEngine creates a dialogue engine.
func NewEngine(
	catalog CourseCatalog,
	materials MaterialSource,
	completer Completer,
	prompt config.PromptConfig,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		catalog:   catalog,
		materials: materials,
		llm:       completer,
		prompt:    prompt,
		logger:    logger,
	}
}

// HandleMessage routes a text message through the state machine, mutating
// the session and returning the response text.
func (e *Engine) HandleMessage(ctx context.Context, s *domain.Session, message string) string {
	switch s.State {
	case domain.StateGeneral:
		return e.handleGeneral(ctx, s, message)
	case domain.StateCourseSelection:
		return e.handleCourseSelection(s, message)
	case domain.StateChapterSelection:
		return e.handleChapterSelection(s, message)
	case domain.StateQA:
		return e.handleQA(ctx, s, message)
	case domain.StateScoring:
		return e.handleScoring(ctx, s)
	default:
		// Unknown state, recover defensively.
		s.Reset()
		return e.handleGeneral(ctx, s, message)
	}
}

// HandleUpload routes an extracted document. In scoring mode it fills the
// first empty slot (assignment before answer) and triggers scoring once both
// are filled; in every other state the document becomes added context.
func (e *Engine) HandleUpload(ctx context.Context, s *domain.Session, doc domain.ExtractedDocument) string {
	if s.State == domain.StateScoring {
		switch {
		case s.AssignmentDoc == nil:
			s.AssignmentDoc = &doc
			return i18n.Td(s.Language, "AssignmentReceived", map[string]any{"Filename": doc.Filename})
		case s.AnswerDoc == nil:
			s.AnswerDoc = &doc
			return e.handleScoring(ctx, s)
		default:
			return e.handleScoring(ctx, s)
		}
	}

	s.UploadedDocs = append(s.UploadedDocs, doc)
	return i18n.Td(s.Language, "DocumentReceived", map[string]any{"Filename": doc.Filename})
}

func (e *Engine) classify(lang, message string) intent {
	switch {
	case i18n.Matches(lang, i18n.CategoryScoring, message):
		return intentScoring
	case i18n.Matches(lang, i18n.CategoryQA, message):
		return intentQA
	case i18n.Matches(lang, i18n.CategoryCourse, message):
		return intentCourse
	default:
		return intentNone
	}
}

func (e *Engine) handleGeneral(ctx context.Context, s *domain.Session, message string) string {
	switch e.classify(s.Language, message) {
	case intentScoring:
		s.State = domain.StateScoring
		return i18n.T(s.Language, "ScoringIntro")

	case intentQA:
		courses := e.listCourses()
		if len(courses) == 0 {
			return i18n.T(s.Language, "NoCourses")
		}
		s.State = domain.StateCourseSelection
		return i18n.Td(s.Language, "ChooseCourseQA", map[string]any{"Courses": bulletList(courses)})

	case intentCourse:
		courses := e.listCourses()
		if len(courses) == 0 {
			return i18n.T(s.Language, "NoCourses")
		}
		s.State = domain.StateCourseSelection
		return i18n.Td(s.Language, "CourseListIntro", map[string]any{"Courses": bulletList(courses)})

	default:
		answer, err := e.llm.Complete(ctx, llm.GeneralPrompt(message), 0)
		if err != nil {
			e.logger.Error("completion failed for general query", zap.Error(err))
			return i18n.T(s.Language, "GenericError")
		}
		return answer
	}
}

func (e *Engine) handleCourseSelection(s *domain.Session, message string) string {
	courses := e.listCourses()
	input := strings.TrimSpace(message)

	if !contains(courses, input) {
		return i18n.Td(s.Language, "CourseUnknown", map[string]any{
			"Input":   input,
			"Courses": bulletList(courses),
		})
	}

	s.CurrentCourse = input
	chapters := e.listChapters(input)
	if len(chapters) == 0 {
		return i18n.Td(s.Language, "CourseNoChapters", map[string]any{"Course": input})
	}

	s.State = domain.StateChapterSelection
	return i18n.Td(s.Language, "ChapterListIntro", map[string]any{
		"Course":   input,
		"Chapters": bulletList(chapters),
	})
}

func (e *Engine) handleChapterSelection(s *domain.Session, message string) string {
	if s.CurrentCourse == "" {
		s.Reset()
		return i18n.T(s.Language, "RestartNotice")
	}

	chapters := e.listChapters(s.CurrentCourse)
	input := strings.TrimSpace(message)

	if i18n.IsAllToken(s.Language, input) {
		s.CurrentChapter = nil
		s.State = domain.StateQA
		return i18n.Td(s.Language, "ReadyAllChapters", map[string]any{"Course": s.CurrentCourse})
	}

	if contains(chapters, input) {
		chapter := input
		s.CurrentChapter = &chapter
		s.State = domain.StateQA
		return i18n.Td(s.Language, "ReadyChapter", map[string]any{
			"Chapter": chapter,
			"Course":  s.CurrentCourse,
		})
	}

	return i18n.Td(s.Language, "ChapterUnknown", map[string]any{
		"Input":    input,
		"Chapters": bulletList(chapters),
	})
}

func (e *Engine) handleQA(ctx context.Context, s *domain.Session, message string) string {
	if s.CurrentCourse == "" {
		s.Reset()
		return i18n.T(s.Language, "RestartNotice")
	}

	chapterInfo := " from all chapters"
	scope := s.CurrentCourse
	if s.CurrentChapter != nil {
		chapterInfo = " from " + *s.CurrentChapter
		scope = s.CurrentCourse + ", " + *s.CurrentChapter
	}

	if i18n.Matches(s.Language, i18n.CategoryGenerate, message) {
		material := e.materials.Materials(ctx, s.CurrentCourse, s.CurrentChapter)
		if strings.TrimSpace(material) == "" {
			return i18n.Td(s.Language, "NoMaterial", map[string]any{"Scope": scope})
		}

		prompt := llm.PracticePrompt(s.CurrentCourse, chapterInfo, llm.Clip(material, e.prompt.PracticeChars))
		answer, err := e.llm.Complete(ctx, prompt, practiceMaxTokens)
		if err != nil {
			e.logger.Error("completion failed for practice questions", zap.Error(err))
			return i18n.T(s.Language, "GenericError")
		}
		return answer
	}

	var uploaded strings.Builder
	for _, doc := range s.UploadedDocs {
		uploaded.WriteString("\n[Uploaded Document] " + doc.Text)
	}

	material := e.materials.Materials(ctx, s.CurrentCourse, s.CurrentChapter)
	combined := material + uploaded.String()

	if strings.TrimSpace(combined) == "" {
		// No material and no uploads: ungrounded fallback.
		answer, err := e.llm.Complete(ctx, llm.FallbackPrompt(message), 0)
		if err != nil {
			e.logger.Error("completion failed for fallback query", zap.Error(err))
			return i18n.T(s.Language, "GenericError")
		}
		return answer
	}

	prompt := llm.GroundedPrompt(s.CurrentCourse, chapterInfo, message, llm.Clip(combined, e.prompt.ContextChars))
	answer, err := e.llm.Complete(ctx, prompt, groundedMaxTokens)
	if err != nil {
		e.logger.Error("completion failed for grounded question", zap.Error(err))
		return i18n.T(s.Language, "GenericError")
	}
	return answer
}

// handleScoring runs the scoring transition. It is reached by any message in
// scoring mode and by the upload that fills the second slot. Slots are
// cleared and the session returns to general only after a successful
// completion call; a failure keeps the uploads so the user can retry.
func (e *Engine) handleScoring(ctx context.Context, s *domain.Session) string {
	switch {
	case s.AssignmentDoc != nil && s.AnswerDoc != nil:
		prompt := llm.ScoringPrompt(
			llm.Clip(s.AssignmentDoc.Text, e.prompt.ScoringChars),
			llm.Clip(s.AnswerDoc.Text, e.prompt.ScoringChars),
		)
		answer, err := e.llm.Complete(ctx, prompt, scoringMaxTokens)
		if err != nil {
			e.logger.Error("completion failed for scoring", zap.Error(err))
			return i18n.T(s.Language, "ScoringError")
		}

		s.AssignmentDoc = nil
		s.AnswerDoc = nil
		s.State = domain.StateGeneral
		return answer + "\n\n---\n" + i18n.T(s.Language, "ScoringComplete")

	case s.AssignmentDoc != nil:
		return i18n.T(s.Language, "ScoringNeedAnswer")

	case s.AnswerDoc != nil:
		return i18n.T(s.Language, "ScoringNeedAssignment")

	default:
		return i18n.T(s.Language, "ScoringNeedBoth")
	}
}

// listCourses and listChapters degrade to empty results when the metadata
// store is unavailable, letting the dialogue continue.
func (e *Engine) listCourses() []string {
	courses, err := e.catalog.ListCourses()
	if err != nil {
		e.logger.Error("failed to list courses", zap.Error(err))
		return nil
	}
	return courses
}

func (e *Engine) listChapters(course string) []string {
	chapters, err := e.catalog.ListChapters(course)
	if err != nil {
		e.logger.Error("failed to list chapters", zap.String("course", course), zap.Error(err))
		return nil
	}
	return chapters
}

func bulletList(items []string) string {
	var sb strings.Builder
	for i, item := range items {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("• " + item)
	}
	return sb.String()
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
