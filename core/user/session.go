package user

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Session is the identity of a logged-in client. It is either an AdminSession or a StudentSession.
type Session interface {
	Role() string
	Username() string
	YearGroup() string

	session() // sealed
}

type AdminSession struct {
	Group string
}

func (s AdminSession) Role() string      { return RoleAdmin }
func (s AdminSession) Username() string  { return AdminUsername }
func (s AdminSession) YearGroup() string { return s.Group }
func (AdminSession) session()            {}

type StudentSession struct {
	Name  string
	Group string
}

func (s StudentSession) Role() string      { return RoleStudent }
func (s StudentSession) Username() string  { return s.Name }
func (s StudentSession) YearGroup() string { return s.Group }
func (StudentSession) session()            {}

// SessionInfo is the wire representation of a Session.
type SessionInfo struct {
	Username  string `json:"username"`
	YearGroup string `json:"yearGroup"`
	Role      string `json:"role"`
}

func Info(s Session) SessionInfo {
	return SessionInfo{Username: s.Username(), YearGroup: s.YearGroup(), Role: s.Role()}
}

// ErrSessionNotFound is returned for unknown, closed or expired session ids.
var ErrSessionNotFound = errors.New("session not found")

var nowFunc = time.Now // mockable

type openSession struct {
	Session
	expiresAt time.Time
}

// Sessions is the volatile registry of logged-in clients, keyed by session id.
// An id that is not registered is LoggedOut. Nothing here is ever persisted.
// Sessions expire ttl after they are opened; expired ones are dropped on the next Open or Len.
type Sessions struct {
	ttl time.Duration

	mu       sync.RWMutex
	sessions map[string]openSession
}

func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{ttl: ttl, sessions: make(map[string]openSession)}
}

// Open moves a client to LoggedIn and returns its session id and expiry.
func (r *Sessions) Open(s Session) (string, time.Time) {
	id := uuid.New().String()
	now := nowFunc()
	expiresAt := now.Add(r.ttl)

	r.mu.Lock()
	r.sweep(now)
	r.sessions[id] = openSession{Session: s, expiresAt: expiresAt}
	r.mu.Unlock()
	return id, expiresAt
}

func (r *Sessions) Get(id string) (Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	if !nowFunc().Before(s.expiresAt) {
		r.Close(id)
		return nil, ErrSessionNotFound
	}
	return s.Session, nil
}

// Close moves a client back to LoggedOut. Closing an unknown id is a no-op.
func (r *Sessions) Close(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Len returns the number of live sessions.
func (r *Sessions) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweep(nowFunc())
	return len(r.sessions)
}

// sweep drops expired sessions. r.mu must be held.
func (r *Sessions) sweep(now time.Time) {
	for id, s := range r.sessions {
		if !now.Before(s.expiresAt) {
			delete(r.sessions, id)
		}
	}
}
