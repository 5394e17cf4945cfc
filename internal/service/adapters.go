package service

import "context"

// Completer is the completion API contract the dialogue engine needs.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Downloader fetches a document from the external store by its URI.
type Downloader interface {
	Download(ctx context.Context, uri, dest string) error
}

// DocumentStore extends Downloader with uploads producing shareable links.
type DocumentStore interface {
	Downloader
	Upload(ctx context.Context, path, name string) (string, error)
}

// CourseCatalog lists the course/chapter metadata the dialogue engine
// routes against.
type CourseCatalog interface {
	ListCourses() ([]string, error)
	ListChapters(courseID string) ([]string, error)
}

// MaterialSource resolves the aggregated OCR text for a course scope.
// An empty string means "no context available", not an error.
type MaterialSource interface {
	Materials(ctx context.Context, course string, chapter *string) string
}
