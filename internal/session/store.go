package session

import (
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"tutorbot/internal/domain"
	"tutorbot/internal/i18n"
)

// Store is an in-memory session table. Sessions are ephemeral process state:
// nothing survives a restart. An idle TTL of zero means sessions live for
// the lifetime of the process.
type Store struct {
	cache       *gocache.Cache
	defaultLang string
}

// NewStore creates a session store with the given idle TTL.
func NewStore(idleTTL time.Duration, defaultLang string) *Store {
	ttl := idleTTL
	cleanup := 10 * time.Minute
	if ttl <= 0 {
		ttl = gocache.NoExpiration
		cleanup = 0
	}
	return &Store{
		cache:       gocache.New(ttl, cleanup),
		defaultLang: defaultLang,
	}
}

// GetOrCreate returns the session for the identifier, creating one with
// default field values when unseen. An empty identifier gets a fresh UUID.
// Each call refreshes the idle TTL.
func (s *Store) GetOrCreate(id string) *domain.Session {
	if id == "" {
		id = uuid.New().String()
	}
	if v, ok := s.cache.Get(id); ok {
		sess := v.(*domain.Session)
		s.cache.Set(id, sess, gocache.DefaultExpiration)
		return sess
	}

	sess := domain.NewSession(id, s.defaultLang)
	if err := s.cache.Add(id, sess, gocache.DefaultExpiration); err != nil {
		// Lost a create race; the stored session wins.
		if v, ok := s.cache.Get(id); ok {
			return v.(*domain.Session)
		}
	}
	return sess
}

// Get returns the session for a known identifier.
func (s *Store) Get(id string) (*domain.Session, bool) {
	if v, ok := s.cache.Get(id); ok {
		return v.(*domain.Session), true
	}
	return nil, false
}

// Reset restores a session to its initial state, preserving language.
func (s *Store) Reset(id string) error {
	sess, ok := s.Get(id)
	if !ok {
		return domain.ErrNotFound
	}
	sess.Reset()
	return nil
}

// SetLanguage updates a session's language, substituting the default for
// unsupported locale codes.
func (s *Store) SetLanguage(id, lang string) (string, error) {
	sess, ok := s.Get(id)
	if !ok {
		return "", domain.ErrNotFound
	}
	sess.Language = i18n.Normalize(lang)
	return sess.Language, nil
}

// Count returns the number of live sessions.
func (s *Store) Count() int {
	return s.cache.ItemCount()
}
