package session

import (
	"encoding/json"
	"errors"
)

// Roles supported by the portal. The backend is the authority for what a
// role may do; the client only uses it to decide which links to show.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// DefaultGraduationYear is assumed when the backend omits the field.
const DefaultGraduationYear = "2026"

// Domain errors
var (
	ErrMissingID    = errors.New("session identity has no id")
	ErrMissingEmail = errors.New("session identity has no email")
	ErrEmptyToken   = errors.New("session token cannot be empty")
)

// User mirrors the backend's user payload. The backend serves either `id`
// or Mongo-style `_id` depending on the endpoint, so both are decoded.
type User struct {
	ID             string `json:"id"`
	MongoID        string `json:"_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	College        string `json:"college"`
	Branch         string `json:"branch"`
	GraduationYear string `json:"graduationYear"`
	ProfilePic     string `json:"profilePic"`
}

// Session is the authenticated identity plus the backend bearer token.
// It is created by login/restore, destroyed by logout, and read-only
// everywhere else.
type Session struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	College        string `json:"college"`
	Branch         string `json:"branch"`
	GraduationYear string `json:"graduationYear"`
	ProfilePicURL  string `json:"profilePicUrl"`
	Token          string `json:"-"`
}

// FromServer maps a backend user payload and token onto a Session. Every
// field is mapped explicitly: the id falls back to the Mongo _id, the role
// defaults to student, the graduation year defaults to DefaultGraduationYear,
// and the optional profile fields default to empty strings.
// PRE: u came from a successful auth response
// POST: returns a fully populated Session or an error; no field is dropped
func FromServer(u User, token string) (Session, error) {
	id := u.ID
	if id == "" {
		id = u.MongoID
	}
	if id == "" {
		return Session{}, ErrMissingID
	}
	if u.Email == "" {
		return Session{}, ErrMissingEmail
	}
	if token == "" {
		return Session{}, ErrEmptyToken
	}

	role := u.Role
	if role != RoleAdmin {
		role = RoleStudent
	}
	gradYear := u.GraduationYear
	if gradYear == "" {
		gradYear = DefaultGraduationYear
	}

	return Session{
		ID:             id,
		Name:           u.Name,
		Email:          u.Email,
		Role:           role,
		College:        u.College,
		Branch:         u.Branch,
		GraduationYear: gradYear,
		ProfilePicURL:  u.ProfilePic,
		Token:          token,
	}, nil
}

// IsAdmin reports whether the session belongs to an admin.
// INVARIANT: Session fields are not mutated
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// MarshalIdentity serialises the identity (without the token) for the
// durable session cache. Identity and token are persisted as separate
// values and always cleared together.
func (s Session) MarshalIdentity() ([]byte, error) {
	return json.Marshal(s)
}

// UnmarshalIdentity parses a cached identity and reattaches the token.
// PRE: data was produced by MarshalIdentity
// POST: returns an equivalent Session, or an error when the cache is corrupt
func UnmarshalIdentity(data []byte, token string) (Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, err
	}
	if s.ID == "" || s.Email == "" {
		return Session{}, errors.New("cached identity is incomplete")
	}
	s.Token = token
	return s, nil
}
