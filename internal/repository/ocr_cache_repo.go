package repository

import (
	"database/sql"
	"time"
)

// OCRCacheRepository stores extracted text keyed by (course, chapter, document)
type OCRCacheRepository struct {
	db *DB
}

// NewOCRCacheRepository creates a new OCR cache repository
func NewOCRCacheRepository(db *DB) *OCRCacheRepository {
	return &OCRCacheRepository{db: db}
}

// Get returns the cached text for the triple, or "" on a cache miss
func (r *OCRCacheRepository) Get(courseID, chapter, docURI string) (string, error) {
	var text string
	err := r.db.QueryRow(`
		SELECT ocr_text FROM ocr_cache
		WHERE course_id = ? AND chapter_name = ? AND doc_uri = ?
	`, courseID, chapter, docURI).Scan(&text)

	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return text, nil
}

// Put stores text for the triple, replacing any previous entry
func (r *OCRCacheRepository) Put(courseID, chapter, docURI, text string) error {
	_, err := r.db.Exec(`
		INSERT INTO ocr_cache (course_id, chapter_name, doc_uri, ocr_text, last_updated)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (course_id, chapter_name, doc_uri)
		DO UPDATE SET ocr_text = excluded.ocr_text, last_updated = excluded.last_updated
	`, courseID, chapter, docURI, text, time.Now())
	return err
}
