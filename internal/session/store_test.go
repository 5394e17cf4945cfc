package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorbot/internal/domain"
	"tutorbot/internal/i18n"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	if _, err := i18n.Init("en"); err != nil {
		t.Fatalf("i18n.Init: %v", err)
	}
	return NewStore(0, "en")
}

func TestGetOrCreate(t *testing.T) {
	s := newTestStore(t)

	sess := s.GetOrCreate("abc")
	require.NotNil(t, sess)
	assert.Equal(t, "abc", sess.ID)
	assert.Equal(t, domain.StateGeneral, sess.State)
	assert.Equal(t, "en", sess.Language)
	assert.Empty(t, sess.CurrentCourse)
	assert.Nil(t, sess.CurrentChapter)

	// Same identifier returns the same session.
	sess.CurrentCourse = "Math101"
	again := s.GetOrCreate("abc")
	assert.Same(t, sess, again)
	assert.Equal(t, "Math101", again.CurrentCourse)
}

func TestGetOrCreateGeneratesID(t *testing.T) {
	s := newTestStore(t)

	sess := s.GetOrCreate("")
	require.NotEmpty(t, sess.ID)

	other := s.GetOrCreate("")
	assert.NotEqual(t, sess.ID, other.ID)
}

func TestReset(t *testing.T) {
	s := newTestStore(t)

	sess := s.GetOrCreate("abc")
	sess.State = domain.StateQA
	sess.CurrentCourse = "Math101"
	chapter := "Ch1"
	sess.CurrentChapter = &chapter
	sess.UploadedDocs = []domain.ExtractedDocument{{Filename: "notes.pdf", Text: "notes"}}
	sess.AssignmentDoc = &domain.ExtractedDocument{Filename: "a.pdf"}
	sess.AnswerDoc = &domain.ExtractedDocument{Filename: "b.pdf"}
	sess.Language = "es"

	require.NoError(t, s.Reset("abc"))

	assert.Equal(t, domain.StateGeneral, sess.State)
	assert.Empty(t, sess.CurrentCourse)
	assert.Nil(t, sess.CurrentChapter)
	assert.Nil(t, sess.UploadedDocs)
	assert.Nil(t, sess.AssignmentDoc)
	assert.Nil(t, sess.AnswerDoc)
	assert.Equal(t, "es", sess.Language, "reset must preserve language")
}

func TestResetIdempotent(t *testing.T) {
	s := newTestStore(t)

	sess := s.GetOrCreate("abc")
	sess.State = domain.StateScoring

	require.NoError(t, s.Reset("abc"))
	first := *sess
	require.NoError(t, s.Reset("abc"))
	assert.Equal(t, first, *sess)
}

func TestResetUnknownSession(t *testing.T) {
	s := newTestStore(t)
	assert.ErrorIs(t, s.Reset("nope"), domain.ErrNotFound)
}

func TestSetLanguage(t *testing.T) {
	s := newTestStore(t)
	s.GetOrCreate("abc")

	lang, err := s.SetLanguage("abc", "fr")
	require.NoError(t, err)
	assert.Equal(t, "fr", lang)

	// Unsupported locale substitutes the default.
	lang, err = s.SetLanguage("abc", "zz")
	require.NoError(t, err)
	assert.Equal(t, "en", lang)

	_, err = s.SetLanguage("missing", "fr")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIdleTTLEviction(t *testing.T) {
	if _, err := i18n.Init("en"); err != nil {
		t.Fatalf("i18n.Init: %v", err)
	}
	s := NewStore(10*time.Millisecond, "en")
	sess := s.GetOrCreate("abc")
	require.NotNil(t, sess)

	time.Sleep(30 * time.Millisecond)

	_, ok := s.Get("abc")
	assert.False(t, ok, "session should expire after the idle TTL")
}
