package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"tutorbot/internal/domain"
	"tutorbot/internal/ocr"
	"tutorbot/internal/repository"
)

// MaterialsService aggregates OCR'd course material text, caching extraction
// results per (course, chapter, document) triple.
type MaterialsService struct {
	courses *repository.CourseRepository
	cache   *repository.OCRCacheRepository
	docs    Downloader
	ocr     ocr.Extractor
	logger  *zap.Logger
}

// NewMaterialsService creates a new course-material aggregator.
func NewMaterialsService(
	courses *repository.CourseRepository,
	cache *repository.OCRCacheRepository,
	docs Downloader,
	extractor ocr.Extractor,
	logger *zap.Logger,
) *MaterialsService {
	return &MaterialsService{
		courses: courses,
		cache:   cache,
		docs:    docs,
		ocr:     extractor,
		logger:  logger,
	}
}

// Materials returns the concatenated text of all matching course documents,
// each prefixed by its chapter name. A nil chapter means all chapters. One
// chapter's failure is logged and skipped, never propagated; the result is
// empty when no material exists.
func (s *MaterialsService) Materials(ctx context.Context, course string, chapter *string) string {
	materials, err := s.courses.ListMaterials(course, chapter)
	if err != nil {
		s.logger.Error("failed to list course materials",
			zap.String("course", course), zap.Error(err))
		return ""
	}

	var sb strings.Builder
	for _, m := range materials {
		text, err := s.chapterText(ctx, m)
		if err != nil {
			s.logger.Warn("skipping chapter material",
				zap.String("course", m.CourseID),
				zap.String("chapter", m.ChapterName),
				zap.Error(err))
			continue
		}
		sb.WriteString("\n[" + m.ChapterName + "] " + text)
	}
	return sb.String()
}

// chapterText serves one document from the OCR cache, fetching and caching
// on a miss. The temporary download is removed on every exit path.
func (s *MaterialsService) chapterText(ctx context.Context, m domain.Material) (string, error) {
	cached, err := s.cache.Get(m.CourseID, m.ChapterName, m.DocURI)
	if err != nil {
		s.logger.Warn("OCR cache lookup failed", zap.Error(err))
	}
	if cached != "" {
		return cached, nil
	}

	if s.docs == nil || s.ocr == nil {
		return "", domain.ErrServiceUnavailable
	}

	dir, err := os.MkdirTemp("", "tutorbot-material-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(dir)

	dest := filepath.Join(dir, sanitizeFilename(m.ChapterName)+filepath.Ext(m.DocURI))
	if err := s.docs.Download(ctx, m.DocURI, dest); err != nil {
		return "", err
	}

	text, err := s.ocr.Extract(ctx, dest)
	if err != nil {
		return "", err
	}

	if err := s.cache.Put(m.CourseID, m.ChapterName, m.DocURI, text); err != nil {
		s.logger.Warn("failed to cache OCR text",
			zap.String("chapter", m.ChapterName), zap.Error(err))
	}
	return text, nil
}

func sanitizeFilename(name string) string {
	r := strings.NewReplacer(" ", "_", "/", "_", "\\", "_")
	return r.Replace(name)
}
