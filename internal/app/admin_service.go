package app

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"hr-assistant/internal/pkg/jwtutil"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidCredential = errors.New("invalid admin key")
)

// AdminService issues admin tokens and runs privileged maintenance. The
// admin key is never stored in clear; only its bcrypt hash is configured.
type AdminService struct {
	adminKeyHash  string
	jwtSecret     string
	jwtExpiration time.Duration
	reload        func() error
}

type AdminAuthResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func NewAdminService(adminKeyHash, jwtSecret string, jwtExpiration time.Duration, reload func() error) *AdminService {
	return &AdminService{
		adminKeyHash:  adminKeyHash,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
		reload:        reload,
	}
}

// Login exchanges the admin key for a JWT.
func (s *AdminService) Login(adminKey string) (*AdminAuthResult, error) {
	adminKey = strings.TrimSpace(adminKey)
	if adminKey == "" {
		return nil, ErrInvalidInput
	}
	if s.adminKeyHash == "" {
		return nil, ErrInvalidCredential
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.adminKeyHash), []byte(adminKey)); err != nil {
		return nil, ErrInvalidCredential
	}

	expiresAt := time.Now().Add(s.jwtExpiration)
	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, "admin")
	if err != nil {
		return nil, err
	}
	return &AdminAuthResult{Token: token, ExpiresAt: expiresAt}, nil
}

// Reload rebuilds the knowledge corpus and rereads the record files.
func (s *AdminService) Reload() error {
	if s.reload == nil {
		return nil
	}
	return s.reload()
}
