package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/skillsprint/skillsprint/internal/api"
)

const (
	tokenFile = "token"
	userFile  = "user.json"
)

// Session is the authenticated state: an opaque bearer token plus the
// profile returned at login. A zero Session means "not logged in".
type Session struct {
	Token string
	User  api.User
}

// Active reports whether a token is present. Token presence is the only
// client-side auth signal; an expired token surfaces as a failed API call.
func (s Session) Active() bool {
	return s.Token != ""
}

// Store persists the session as two files under the data directory, the
// same two values the original client kept in browser storage. Reads and
// writes are serialized; the token is read on every API request.
type Store struct {
	dir string

	mu      sync.RWMutex
	session Session
}

// NewStore creates a Store rooted at dir and loads any persisted session.
func NewStore(dir string) (*Store, error) {
	s := &Store{dir: dir}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// load reads the persisted token and user, tolerating absence.
func (s *Store) load() error {
	tok, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}

	sess := Session{Token: strings.TrimSpace(string(tok))}

	raw, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err == nil {
		// A corrupt profile is not fatal; the token still authenticates
		// and /users/me refreshes the profile.
		_ = json.Unmarshal(raw, &sess.User)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read user profile: %w", err)
	}

	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()
	return nil
}

// Current returns the in-memory session.
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Token returns the current bearer token ("" when logged out). Shaped to
// plug directly into api.New as the TokenFunc.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token
}

// Save persists a new session, replacing any previous one.
func (s *Store) Save(sess Session) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(sess.Token), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	raw, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encode user profile: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, userFile), raw, 0o600); err != nil {
		return fmt.Errorf("write user profile: %w", err)
	}

	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()
	return nil
}

// Clear removes the persisted session. Idempotent: clearing an already
// empty store succeeds.
func (s *Store) Clear() error {
	for _, name := range []string{tokenFile, userFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", name, err)
		}
	}
	s.mu.Lock()
	s.session = Session{}
	s.mu.Unlock()
	return nil
}
