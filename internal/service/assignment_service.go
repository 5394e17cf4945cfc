package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"tutorbot/internal/config"
	"tutorbot/internal/domain"
	"tutorbot/internal/llm"
	"tutorbot/internal/ocr"
	"tutorbot/internal/repository"
)

// AssignmentService grades submitted solutions against registered
// assignment question papers and persists the result.
type AssignmentService struct {
	assignments *repository.AssignmentRepository
	docs        DocumentStore
	extractor   ocr.Extractor
	llm         Completer
	prompt      config.PromptConfig
	logger      *zap.Logger
}

// NewAssignmentService creates a new assignment service.
func NewAssignmentService(
	assignments *repository.AssignmentRepository,
	docs DocumentStore,
	extractor ocr.Extractor,
	completer Completer,
	prompt config.PromptConfig,
	logger *zap.Logger,
) *AssignmentService {
	return &AssignmentService{
		assignments: assignments,
		docs:        docs,
		extractor:   extractor,
		llm:         completer,
		prompt:      prompt,
		logger:      logger,
	}
}

// SubmitSolution downloads the assignment's question paper, extracts both
// texts, asks the completion API for a score and feedback, uploads the
// solution to the document store, and records the result. A response that
// does not follow the SCORE/FEEDBACK convention falls back to a fixed score.
func (s *AssignmentService) SubmitSolution(ctx context.Context, assignmentID int64, file *multipart.FileHeader) (*domain.SubmissionResult, error) {
	assignment, err := s.assignments.Get(assignmentID)
	if err != nil {
		return nil, fmt.Errorf("lookup assignment %d: %w", assignmentID, err)
	}
	if assignment == nil {
		return nil, domain.ErrNotFound
	}

	if s.docs == nil || s.extractor == nil {
		return nil, fmt.Errorf("%w: document store or OCR", domain.ErrServiceUnavailable)
	}

	dir, err := os.MkdirTemp("", "tutorbot-submission-*")
	if err != nil {
		return nil, fmt.Errorf("create submission dir: %w", err)
	}
	defer os.RemoveAll(dir)

	assignmentPath := filepath.Join(dir, "assignment"+filepath.Ext(assignment.AssignmentURI))
	if err := s.docs.Download(ctx, assignment.AssignmentURI, assignmentPath); err != nil {
		return nil, fmt.Errorf("download assignment paper: %w", err)
	}
	assignmentText, err := s.extractor.Extract(ctx, assignmentPath)
	if err != nil {
		return nil, fmt.Errorf("extract assignment paper: %w", err)
	}

	solutionPath := filepath.Join(dir, filepath.Base(file.Filename))
	if err := saveMultipart(file, solutionPath); err != nil {
		return nil, fmt.Errorf("save solution: %w", err)
	}
	solutionText, err := s.extractor.Extract(ctx, solutionPath)
	if err != nil {
		return nil, fmt.Errorf("extract solution: %w", err)
	}

	prompt := llm.SubmissionPrompt(
		llm.Clip(assignmentText, s.prompt.ScoringChars),
		llm.Clip(solutionText, s.prompt.ScoringChars),
	)
	graded, err := s.llm.Complete(ctx, prompt, scoringMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("grade solution: %w", err)
	}
	score, feedback := llm.ParseScore(graded)

	link, err := s.docs.Upload(ctx, solutionPath, file.Filename)
	if err != nil {
		return nil, fmt.Errorf("upload solution: %w", err)
	}

	if err := s.assignments.SetSolution(assignment.ID, link, score); err != nil {
		return nil, fmt.Errorf("persist solution: %w", err)
	}

	s.logger.Info("solution graded",
		zap.Int64("assignment_id", assignment.ID),
		zap.Int("score", score))

	return &domain.SubmissionResult{
		AssignmentID: assignment.ID,
		Score:        score,
		Feedback:     feedback,
		SolutionURI:  link,
	}, nil
}
