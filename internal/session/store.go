package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"discord_rps/internal/game"
	"discord_rps/internal/logger"

	"github.com/patrickmn/go-cache"
)

var (
	ErrSessionExists  = errors.New("session already exists")
	ErrInvalidSession = errors.New("invalid session")
)

// Session is a challenge waiting for an opponent.
type Session struct {
	ID               string
	ChallengerID     string
	ChallengerChoice game.Choice
	CreatedAt        time.Time
}

// Store keeps pending sessions in process memory. A session leaves the
// store either through ConsumeAndDelete or by expiring after ttl.
type Store struct {
	mu    sync.Mutex
	items *cache.Cache
	ttl   time.Duration
	log   *slog.Logger
}

// NewStore creates a store whose sessions expire after ttl. A ttl of zero
// keeps sessions until they are consumed.
func NewStore(ttl time.Duration) *Store {
	expiration, cleanup := cache.NoExpiration, time.Duration(0)
	if ttl > 0 {
		expiration, cleanup = ttl, ttl/2
	}

	s := &Store{
		items: cache.New(expiration, cleanup),
		ttl:   ttl,
		log:   logger.With("component", "session_store"),
	}
	s.items.OnEvicted(s.onEvicted)
	return s
}

// Create registers a new session. It fails if id is already present.
func (s *Store) Create(id, challengerID string, choice game.Choice) error {
	if id == "" || challengerID == "" {
		return fmt.Errorf("%w: empty id or challenger", ErrInvalidSession)
	}
	if !choice.Valid() {
		return fmt.Errorf("%w: %w", ErrInvalidSession, game.ErrInvalidChoice)
	}

	sess := Session{
		ID:               id,
		ChallengerID:     challengerID,
		ChallengerChoice: choice,
		CreatedAt:        time.Now(),
	}
	if err := s.items.Add(id, sess, cache.DefaultExpiration); err != nil {
		s.log.Warn("session already exists", "session_id", id, "challenger_id", challengerID)
		return fmt.Errorf("%w: %s", ErrSessionExists, id)
	}

	s.log.Debug("session created", "session_id", id, "challenger_id", challengerID, "choice", choice)
	return nil
}

// Get returns a copy of the session without removing it.
func (s *Store) Get(id string) (Session, bool) {
	v, ok := s.items.Get(id)
	if !ok {
		return Session{}, false
	}
	return v.(Session), true
}

// ConsumeAndDelete removes the session and returns it. Of several
// concurrent callers for one id, exactly one observes the session.
func (s *Store) ConsumeAndDelete(id string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.items.Get(id)
	if !ok {
		return Session{}, false
	}
	s.items.Delete(id)
	return v.(Session), true
}

// Len returns the number of stored sessions, including expired ones not
// yet cleaned up.
func (s *Store) Len() int {
	return s.items.ItemCount()
}

func (s *Store) onEvicted(id string, v interface{}) {
	sess, ok := v.(Session)
	if !ok || s.ttl <= 0 {
		return
	}
	if age := time.Since(sess.CreatedAt); age >= s.ttl {
		s.log.Info("session expired", "session_id", id, "challenger_id", sess.ChallengerID, "age", age.Round(time.Second))
	}
}
