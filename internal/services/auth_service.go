package services

import (
	"crypto/subtle"
	"errors"
	"time"

	"drowsiness-dashboard/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var errNoCredential = errors.New("admin credential not configured")

// AuthService is the dashboard's authentication gate: a single configured
// username/password pair and HS256 session tokens.
type AuthService struct {
	Username     string
	PasswordHash []byte
	Secret       []byte
	// TTL of issued sessions. Zero issues tokens without an expiry.
	TTL time.Duration
	Now func() time.Time
}

type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

// NewAuthService uses passwordHash when set, otherwise hashes password.
func NewAuthService(username, password, passwordHash, secret string, ttl time.Duration) (AuthService, error) {
	if username == "" || (password == "" && passwordHash == "") {
		return AuthService{}, errNoCredential
	}
	if secret == "" {
		return AuthService{}, errors.New("jwt secret not configured")
	}
	hash := []byte(passwordHash)
	if passwordHash == "" {
		generated, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return AuthService{}, err
		}
		hash = generated
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return AuthService{}, err
	}
	return AuthService{
		Username:     username,
		PasswordHash: hash,
		Secret:       []byte(secret),
		TTL:          ttl,
	}, nil
}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Authenticate checks the pair against the configured credential.
func (s AuthService) Authenticate(username, password string) domain.AuthResult {
	if len(s.PasswordHash) == 0 {
		return domain.Unauthorized
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword(s.PasswordHash, []byte(password))
	if !userOK || passErr != nil {
		return domain.Unauthorized
	}
	return domain.Authorized
}

// Login authenticates and issues a session token.
func (s AuthService) Login(username, password string) (Session, error) {
	if s.Authenticate(username, password) != domain.Authorized {
		return Session{}, domain.UnauthorizedError{Msg: "invalid username or password"}
	}

	issued := s.now()
	claims := jwt.RegisteredClaims{
		Subject:  username,
		IssuedAt: jwt.NewNumericDate(issued),
	}
	session := Session{Username: username}
	if s.TTL > 0 {
		session.ExpiresAt = issued.Add(s.TTL)
		claims.ExpiresAt = jwt.NewNumericDate(session.ExpiresAt)
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return Session{}, err
	}
	session.Token = token
	return session, nil
}

// ValidateToken returns the session behind a token issued by Login.
func (s AuthService) ValidateToken(token string) (domain.RequestContext, error) {
	if token == "" {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "missing session token"}
	}
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(_ *jwt.Token) (interface{}, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "invalid session token", Err: err}
	}
	if !parsed.Valid || claims.Subject != s.Username {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "invalid session token"}
	}
	rc := domain.RequestContext{Username: claims.Subject}
	if claims.ExpiresAt != nil {
		rc.ExpiresAt = claims.ExpiresAt.Time
	}
	return rc, nil
}
