// internal/session/store.go
//
// The session store holds the authenticated agent's identity and bearer
// token. It mirrors the two durable keys the backend contract expects
// (safra_token and safra_user): both are written on login, read back on
// startup and removed on logout.

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidAuthData is returned when a login payload is missing the token
// or the user object.
var ErrInvalidAuthData = errors.New("dados de autenticação inválidos")

// User is the canonical, normalized user shape kept by the client.
type User struct {
	ID           string `json:"id"`
	Nome         string `json:"nome"`
	Email        string `json:"email"`
	CPF          string `json:"cpf,omitempty"`
	Tipo         string `json:"tipo,omitempty"`
	Telefone     string `json:"telefone,omitempty"`
	MatriculaIPA string `json:"matriculaIpa,omitempty"`
	LocalAtuacao string `json:"localAtuacao,omitempty"`
}

// FlexID accepts both numeric and string identifiers; backends have sent
// either "id": 7 and "id": "7" for the same user.
type FlexID string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexID) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

// UserPayload is the raw user object inside a login response.
type UserPayload struct {
	ID           FlexID `json:"id"`
	Nome         string `json:"nome"`
	Email        string `json:"email"`
	CPF          string `json:"cpf"`
	Tipo         string `json:"tipo"`
	Telefone     string `json:"telefone"`
	MatriculaIPA string `json:"matriculaIpa"`
	LocalAtuacao string `json:"localAtuacao"`
}

// LoginPayload is the backend's login response. The user key has varied
// across backend revisions: "usuario" on current deployments, "user" on
// older ones. Both are accepted.
type LoginPayload struct {
	Token   string       `json:"token"`
	Usuario *UserPayload `json:"usuario"`
	User    *UserPayload `json:"user"`
	Message string       `json:"message"`
}

// Store keeps the session in memory and mirrors it to two files on disk.
type Store struct {
	tokenPath string
	userPath  string

	mu    sync.RWMutex
	user  *User
	token string

	now func() time.Time // test hook for token expiry
}

// NewStore creates a session store backed by the given file paths.
func NewStore(tokenPath, userPath string) *Store {
	return &Store{tokenPath: tokenPath, userPath: userPath, now: time.Now}
}

// Login normalizes a backend login payload and persists the session.
// Fails with ErrInvalidAuthData when the token or user object is absent,
// leaving the current session untouched.
func (s *Store) Login(payload LoginPayload) (*User, error) {
	raw := payload.Usuario
	if raw == nil {
		raw = payload.User
	}
	if strings.TrimSpace(payload.Token) == "" || raw == nil {
		return nil, ErrInvalidAuthData
	}

	user := &User{
		ID:           string(raw.ID),
		Nome:         raw.Nome,
		Email:        raw.Email,
		CPF:          raw.CPF,
		Tipo:         raw.Tipo,
		Telefone:     raw.Telefone,
		MatriculaIPA: raw.MatriculaIPA,
		LocalAtuacao: raw.LocalAtuacao,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.token = payload.Token
	if err := s.persistLocked(); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout clears the in-memory session and removes both files.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

// Restore loads the persisted session. Corrupt or expired stored data is
// discarded and the store starts unauthenticated; this is never fatal.
func (s *Store) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokenBytes, err := os.ReadFile(s.tokenPath)
	if err != nil {
		return
	}
	userBytes, err := os.ReadFile(s.userPath)
	if err != nil {
		return
	}

	token := strings.TrimSpace(string(tokenBytes))
	var user User
	if token == "" || json.Unmarshal(userBytes, &user) != nil {
		s.clearLocked()
		return
	}
	if expired, known := tokenExpired(token, s.now()); known && expired {
		s.clearLocked()
		return
	}
	s.token = token
	s.user = &user
}

// IsAuthenticated reports whether both a user and a token are present.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != ""
}

// User returns a copy of the current user, or nil when logged out.
func (s *Store) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the current bearer token, empty when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAdmin reports whether the logged-in user carries the ADMIN role.
func (s *Store) IsAdmin() bool {
	return s.User().IsAdmin()
}

// IsAdmin reports whether this user carries the ADMIN role.
func (u *User) IsAdmin() bool {
	return u != nil && strings.EqualFold(u.Tipo, "ADMIN")
}

func (s *Store) persistLocked() error {
	userJSON, err := json.Marshal(s.user)
	if err != nil {
		return fmt.Errorf("session: marshal user: %w", err)
	}
	if err := os.WriteFile(s.tokenPath, []byte(s.token), 0o600); err != nil {
		return fmt.Errorf("session: write token: %w", err)
	}
	if err := os.WriteFile(s.userPath, userJSON, 0o600); err != nil {
		return fmt.Errorf("session: write user: %w", err)
	}
	return nil
}

func (s *Store) clearLocked() {
	s.user = nil
	s.token = ""
	_ = os.Remove(s.tokenPath)
	_ = os.Remove(s.userPath)
}

// tokenExpired inspects a bearer token's exp claim without verifying the
// signature; verification belongs to the backend. The second return value is
// false when the token is not a parseable JWT or carries no expiry.
func tokenExpired(token string, now time.Time) (expired, known bool) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false, false
	}
	return exp.Time.Before(now), true
}

// String renders a short identity line for the TUI header.
func (u *User) String() string {
	if u == nil {
		return "não autenticado"
	}
	parts := []string{u.Nome}
	if u.MatriculaIPA != "" {
		parts = append(parts, "matrícula "+u.MatriculaIPA)
	}
	if u.Tipo != "" {
		parts = append(parts, strings.ToLower(u.Tipo))
	}
	return strings.Join(parts, " · ")
}

// ParseID converts the normalized string identifier back to a numeric ID
// when the backend requires one.
func (u *User) ParseID() (int64, error) {
	return strconv.ParseInt(u.ID, 10, 64)
}
