package user

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	validator "github.com/go-playground/validator/v10"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/ploychompoo03/management-market/internal/common"
)

const (
	defaultAccessTTL = 12 * time.Hour
	tokenIssuer      = "management-market"
	roleClaim        = "role"

	// passwordMask is what the edit form shows for an unchanged password;
	// receiving it back means keep the stored hash.
	passwordMask = "********"
)

// Sentinel errors for the account and login flows.
var (
	ErrNotFound           = errors.New("user: account not found")
	ErrInvalidInput       = errors.New("user: invalid input")
	ErrUsernameTaken      = errors.New("user: username already in use")
	ErrInvalidCredentials = errors.New("user: invalid username or password")
	ErrAccountDisabled    = errors.New("user: account disabled")
)

// Input carries the editable account form fields. Role is picked from the
// fixed set; on edit the form locks the role so it is ignored there.
type Input struct {
	EmpName  string `json:"empName" validate:"required"`
	Username string `json:"username" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=แอดมิน พนักงานขาย"`
	Password string `json:"password"`
	Active   bool   `json:"active"`
}

// Session is the result of a successful login.
type Session struct {
	User        Public    `json:"user"`
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Service manages staff accounts and issues access tokens.
type Service struct {
	Repo      *Repository
	Secret    []byte
	AccessTTL time.Duration
	Now       func() time.Time

	validate *validator.Validate
}

// NewService constructs a Service. The signing secret is required.
func NewService(repo *Repository, secret string) (*Service, error) {
	if repo == nil {
		return nil, errors.New("user: repository is required")
	}
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("user: signing secret is required")
	}
	return &Service{
		Repo:      repo,
		Secret:    []byte(secret),
		AccessTTL: defaultAccessTTL,
		Now:       time.Now,
		validate:  validator.New(),
	}, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// List returns all accounts, optionally filtered by a free-text query matched
// against name, username and role.
func (s *Service) List(query string) ([]Public, error) {
	users, err := s.Repo.Load()
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Public, 0, len(users))
	for _, u := range users {
		if q != "" {
			match := false
			for _, field := range []string{u.EmpName, u.Username, u.Role} {
				if strings.Contains(strings.ToLower(field), q) {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, u.View())
	}
	return out, nil
}

// Get returns a single account by id.
func (s *Service) Get(id string) (Public, error) {
	u, ok, err := s.Repo.Get(id)
	if err != nil {
		return Public{}, err
	}
	if !ok {
		return Public{}, ErrNotFound
	}
	return u.View(), nil
}

// Create validates the form input and inserts a new account with a generated
// id. Usernames are unique; new accounts require a password.
func (s *Service) Create(in Input) (Public, error) {
	in.EmpName = strings.TrimSpace(in.EmpName)
	in.Username = strings.TrimSpace(in.Username)
	if err := s.validate.Struct(in); err != nil {
		return Public{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(in.Password) < 8 {
		return Public{}, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}
	if _, taken, err := s.Repo.FindByUsername(in.Username); err != nil {
		return Public{}, err
	} else if taken {
		return Public{}, ErrUsernameTaken
	}
	hash, err := argon2id.CreateHash(in.Password, argon2id.DefaultParams)
	if err != nil {
		return Public{}, fmt.Errorf("hash password: %w", err)
	}
	id, err := s.Repo.NextID()
	if err != nil {
		return Public{}, err
	}
	u := User{ID: id, EmpName: in.EmpName, Username: in.Username, Role: in.Role, Active: in.Active, PasswordHash: hash}
	if err := s.Repo.Insert(u); err != nil {
		return Public{}, err
	}
	return u.View(), nil
}

// Update replaces the editable fields of the stored account. The role is
// locked after creation and a blank or masked password keeps the stored hash.
func (s *Service) Update(id string, in Input) (Public, error) {
	current, ok, err := s.Repo.Get(id)
	if err != nil {
		return Public{}, err
	}
	if !ok {
		return Public{}, ErrNotFound
	}
	in.Role = current.Role
	in.EmpName = strings.TrimSpace(in.EmpName)
	in.Username = strings.TrimSpace(in.Username)
	if err := s.validate.Struct(in); err != nil {
		return Public{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if in.Username != current.Username {
		if _, taken, err := s.Repo.FindByUsername(in.Username); err != nil {
			return Public{}, err
		} else if taken {
			return Public{}, ErrUsernameTaken
		}
	}
	current.EmpName = in.EmpName
	current.Username = in.Username
	current.Active = in.Active
	if in.Password != "" && in.Password != passwordMask {
		if len(in.Password) < 8 {
			return Public{}, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
		}
		hash, err := argon2id.CreateHash(in.Password, argon2id.DefaultParams)
		if err != nil {
			return Public{}, fmt.Errorf("hash password: %w", err)
		}
		current.PasswordHash = hash
	}
	if _, err := s.Repo.Replace(current); err != nil {
		return Public{}, err
	}
	return current.View(), nil
}

// Delete removes the account. Deleting an absent id is idempotent.
func (s *Service) Delete(id string) error {
	return s.Repo.Remove(id)
}

// Login verifies credentials against the stored hash and issues an access
// token. Disabled accounts are rejected after the password check so the
// error does not leak which usernames exist.
func (s *Service) Login(username, password string) (Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Session{}, ErrInvalidCredentials
	}
	u, ok, err := s.Repo.FindByUsername(username)
	if err != nil {
		return Session{}, err
	}
	if !ok {
		return Session{}, ErrInvalidCredentials
	}
	match, err := argon2id.ComparePasswordAndHash(password, u.PasswordHash)
	if err != nil || !match {
		return Session{}, ErrInvalidCredentials
	}
	if !u.Active {
		return Session{}, ErrAccountDisabled
	}
	token, expiresAt, err := s.signAccessToken(u)
	if err != nil {
		return Session{}, fmt.Errorf("sign access token: %w", err)
	}
	return Session{User: u.View(), AccessToken: token, ExpiresAt: expiresAt}, nil
}

// ParseAccessToken validates a token and returns the subject account id and
// its role claim.
func (s *Service) ParseAccessToken(token string) (string, string, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return "", "", ErrInvalidCredentials
	}
	parsed, err := jwt.ParseString(trimmed,
		jwt.WithKey(jwa.HS256, s.Secret),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithClock(jwt.ClockFunc(s.now)),
	)
	if err != nil {
		return "", "", common.NewAppError("UNAUTHORIZED", "invalid or expired token", http.StatusUnauthorized, err)
	}
	role := ""
	if v, ok := parsed.Get(roleClaim); ok {
		role, _ = v.(string)
	}
	return parsed.Subject(), role, nil
}

func (s *Service) signAccessToken(u User) (string, time.Time, error) {
	now := s.now()
	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = defaultAccessTTL
	}
	expiresAt := now.Add(ttl)
	token, err := jwt.NewBuilder().
		Subject(u.ID).
		Issuer(tokenIssuer).
		IssuedAt(now).
		Expiration(expiresAt).
		Claim(roleClaim, u.Role).
		Build()
	if err != nil {
		return "", time.Time{}, err
	}
	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, s.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return string(signed), expiresAt, nil
}
