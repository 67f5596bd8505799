package app

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_desk/internal/domain"
)

// AuthOptions are the two policies the deployment must pick explicitly.
type AuthOptions struct {
	// RestoreSession keeps the active session across restarts. When false
	// the persisted session is cleared at boot and every start requires a
	// fresh login.
	RestoreSession bool
	// FoldEmails makes duplicate detection and login lookup
	// case-insensitive. Off by default: the historical behavior is an
	// exact byte match, and changing it silently would reject previously
	// valid registrations.
	FoldEmails bool
}

// AuthService registers users, validates credentials and tracks the single
// active session. Users and session are persisted independently on every
// change.
type AuthService struct {
	store  domain.Store
	hasher domain.PasswordHasher
	opts   AuthOptions

	mu      sync.Mutex
	users   []domain.User
	session *domain.User
	lastID  int64
}

func NewAuthService(ctx context.Context, store domain.Store, hasher domain.PasswordHasher, opts AuthOptions) *AuthService {
	s := &AuthService{store: store, hasher: hasher, opts: opts}

	ok, err := store.Load(ctx, domain.KeyUsers, &s.users)
	if err != nil {
		log.Warn().Err(err).Str("key", domain.KeyUsers).Msg("stored user list unreadable, starting empty")
		s.users = nil
	} else if !ok {
		s.users = nil
	}
	for _, u := range s.users {
		if u.ID > s.lastID {
			s.lastID = u.ID
		}
	}

	if opts.RestoreSession {
		var cur *domain.User
		if ok, err := store.Load(ctx, domain.KeySession, &cur); err != nil {
			log.Warn().Err(err).Str("key", domain.KeySession).Msg("stored session unreadable, starting signed out")
		} else if ok {
			s.session = cur
		}
	} else {
		// Force re-authentication on every start.
		s.session = nil
		s.persistSession(ctx)
	}
	return s
}

// Register appends a new account. It fails with ErrDuplicateEmail when the
// email is already taken and never touches the session: the caller must log
// in separately.
func (s *AuthService) Register(ctx context.Context, candidate domain.User, password string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if s.sameEmail(u.Email, candidate.Email) {
			return domain.User{}, domain.ErrDuplicateEmail
		}
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return domain.User{}, err
	}

	candidate.ID = s.nextID()
	candidate.Password = digest
	s.users = append(s.users, candidate)
	s.persistUsers(ctx)
	return candidate.Redacted(), nil
}

// Login validates the credentials and, on success, makes that user the
// active session. Failures are always ErrInvalidCredentials regardless of
// which check failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if !s.sameEmail(s.users[i].Email, email) {
			continue
		}
		if !s.hasher.Verify(s.users[i].Password, password) {
			return domain.User{}, domain.ErrInvalidCredentials
		}
		u := s.users[i]
		s.session = &u
		s.persistSession(ctx)
		return u.Redacted(), nil
	}
	return domain.User{}, domain.ErrInvalidCredentials
}

// Logout unconditionally clears the session; it always succeeds.
func (s *AuthService) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	s.persistSession(ctx)
}

func (s *AuthService) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session != nil
}

// Current returns the active user, redacted, if any.
func (s *AuthService) Current() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return domain.User{}, false
	}
	return s.session.Redacted(), true
}

func (s *AuthService) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func (s *AuthService) sameEmail(a, b string) bool {
	if s.opts.FoldEmails {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func (s *AuthService) nextID() int64 {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *AuthService) persistUsers(ctx context.Context) {
	if err := s.store.Save(ctx, domain.KeyUsers, s.users); err != nil {
		log.Error().Err(err).Str("key", domain.KeyUsers).Msg("persist user list failed")
	}
}

func (s *AuthService) persistSession(ctx context.Context) {
	if err := s.store.Save(ctx, domain.KeySession, s.session); err != nil {
		log.Error().Err(err).Str("key", domain.KeySession).Msg("persist session failed")
	}
}
