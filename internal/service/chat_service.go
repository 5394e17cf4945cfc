package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"tutorbot/internal/config"
	"tutorbot/internal/domain"
	"tutorbot/internal/i18n"
	"tutorbot/internal/ocr"
	"tutorbot/internal/session"
)

// ChatService runs one request-response cycle: it resolves the session,
// handles an optional file upload, and dispatches to the dialogue engine.
type ChatService struct {
	sessions  *session.Store
	engine    *Engine
	catalog   CourseCatalog
	extractor ocr.Extractor
	cfg       *config.Config
	logger    *zap.Logger
}

// NewChatService creates a new chat service.
func NewChatService(
	sessions *session.Store,
	engine *Engine,
	catalog CourseCatalog,
	extractor ocr.Extractor,
	cfg *config.Config,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		sessions:  sessions,
		engine:    engine,
		catalog:   catalog,
		extractor: extractor,
		cfg:       cfg,
		logger:    logger,
	}
}

// Handle processes one chat turn. A request may carry a file, a message, or
// both; when a file is present it is handled and the response returned
// without consuming the message, matching the upload-first contract.
func (s *ChatService) Handle(ctx context.Context, req *domain.ChatRequest, file *multipart.FileHeader) (*domain.ChatResponse, error) {
	sess := s.sessions.GetOrCreate(req.SessionID)
	if req.Language != "" {
		sess.Language = i18n.Normalize(req.Language)
	}

	if file != nil {
		answer, err := s.handleUpload(ctx, sess, file)
		if err != nil {
			return nil, err
		}
		return s.response(sess, answer), nil
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, domain.ErrInvalidRequest
	}

	answer := s.engine.HandleMessage(ctx, sess, message)
	return s.response(sess, answer), nil
}

// handleUpload validates the file, extracts its text, and routes the
// extracted document through the engine. Session state is untouched when
// validation or extraction fails.
func (s *ChatService) handleUpload(ctx context.Context, sess *domain.Session, file *multipart.FileHeader) (string, error) {
	if !s.allowedFile(file.Filename) {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFile, file.Filename)
	}
	if s.extractor == nil {
		return "", fmt.Errorf("%w: OCR", domain.ErrServiceUnavailable)
	}

	dir, err := os.MkdirTemp("", "tutorbot-upload-*")
	if err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, filepath.Base(file.Filename))
	if err := saveMultipart(file, path); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}

	text, err := s.extractor.Extract(ctx, path)
	if err != nil {
		s.logger.Error("failed to extract uploaded file",
			zap.String("filename", file.Filename), zap.Error(err))
		return "", fmt.Errorf("%w: extraction failed", domain.ErrServiceUnavailable)
	}

	doc := domain.ExtractedDocument{
		Filename: filepath.Base(file.Filename),
		Text:     text,
	}
	return s.engine.HandleUpload(ctx, sess, doc), nil
}

func (s *ChatService) response(sess *domain.Session, answer string) *domain.ChatResponse {
	resp := &domain.ChatResponse{
		Answer:        answer,
		SessionID:     sess.ID,
		State:         sess.State,
		CurrentCourse: sess.CurrentCourse,
		Language:      sess.Language,
	}
	if sess.CurrentChapter != nil {
		resp.CurrentChapter = *sess.CurrentChapter
	}
	return resp
}

func (s *ChatService) allowedFile(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return false
	}
	for _, allowed := range s.cfg.Upload.AllowedExtensions {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

// AllowedExtensions returns the configured upload allow-list.
func (s *ChatService) AllowedExtensions() []string {
	return s.cfg.Upload.AllowedExtensions
}

// Sessions exposes the session store for the HTTP layer.
func (s *ChatService) Sessions() *session.Store {
	return s.sessions
}

// Courses lists courses, degrading to an empty list when the metadata
// store is unavailable.
func (s *ChatService) Courses() []string {
	courses, err := s.catalog.ListCourses()
	if err != nil {
		s.logger.Error("failed to list courses", zap.Error(err))
		return []string{}
	}
	if courses == nil {
		courses = []string{}
	}
	return courses
}

// Chapters lists a course's chapters with the same degraded behavior.
func (s *ChatService) Chapters(courseID string) []string {
	chapters, err := s.catalog.ListChapters(courseID)
	if err != nil {
		s.logger.Error("failed to list chapters", zap.String("course", courseID), zap.Error(err))
		return []string{}
	}
	if chapters == nil {
		chapters = []string{}
	}
	return chapters
}
