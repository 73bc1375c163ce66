// Package auth registers users, checks passwords and issues the bearer
// tokens every other endpoint requires.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/thenoetrevino/gtd/internal/database"
	"github.com/thenoetrevino/gtd/internal/models"
	"github.com/thenoetrevino/gtd/internal/types"
)

// MinSecretLength is the shortest HMAC key the service accepts
const MinSecretLength = 32

// maxPasswordBytes is bcrypt's input limit
const maxPasswordBytes = 72

// Service defines account and token operations
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Session, error)
	Login(ctx context.Context, req LoginRequest) (*Session, error)
	Me(ctx context.Context, userID types.UserID) (*models.User, error)
	ParseToken(token string) (types.UserID, error)
}

// Config holds token settings
type Config struct {
	Secret   []byte
	Issuer   string
	TokenTTL time.Duration
}

// RegisterRequest encapsulates data for creating an account
type RegisterRequest struct {
	Email       string
	Password    string
	DisplayName string
}

// LoginRequest encapsulates credentials
type LoginRequest struct {
	Email    string
	Password string
}

// Session is a freshly issued token and the user it belongs to
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

// Claims defines the information stored in the JWT.
// The subject is the user id.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// service implements Service interface
type service struct {
	repo       database.UserRepository
	cfg        Config
	now        func() time.Time
	bcryptCost int

	// compared against when the email is unknown so both failure paths
	// spend the same time in bcrypt
	dummyHash []byte
}

// NewService creates a new auth service. The secret must be at least
// MinSecretLength bytes.
func NewService(repo database.UserRepository, cfg Config) (Service, error) {
	return newService(repo, cfg, bcrypt.DefaultCost)
}

func newService(repo database.UserRepository, cfg Config, cost int) (*service, error) {
	if len(cfg.Secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", cfg.TokenTTL)
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("placeholder-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare password hashing: %w", err)
	}
	return &service{
		repo:       repo,
		cfg:        cfg,
		now:        time.Now,
		bcryptCost: cost,
		dummyHash:  dummy,
	}, nil
}

// Register creates an account and signs the caller in
func (s *service) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	user, err := createAccount(ctx, s.repo, req, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	slog.Info("user registered", "user_id", user.ID)
	return s.issue(user)
}

// CreateAccount validates and stores a new user without issuing a token.
// It applies the same rules as Register and needs no signing secret.
func CreateAccount(ctx context.Context, repo database.UserRepository, req RegisterRequest) (*models.User, error) {
	return createAccount(ctx, repo, req, bcrypt.DefaultCost)
}

func createAccount(ctx context.Context, repo database.UserRepository, req RegisterRequest, cost int) (*models.User, error) {
	user, err := validateRegister(req)
	if err != nil {
		return nil, err
	}

	hash, err := HashPassword(req.Password, cost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	if err := repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, ErrEmailAlreadyInUse
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login checks credentials and issues a token
func (s *service) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	user, err := s.repo.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

// Me returns the account behind a verified token
func (s *service) Me(ctx context.Context, userID types.UserID) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrUserGone
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// ParseToken verifies signature, algorithm, issuer and expiry and returns
// the user id in the subject
func (s *service) ParseToken(token string) (types.UserID, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.cfg.Secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		slog.Debug("token rejected", "error", err)
		return 0, ErrInvalidToken
	}

	userID, err := types.ParseUserID(claims.Subject)
	if err != nil || userID <= 0 {
		return 0, ErrInvalidToken
	}
	return userID, nil
}

// issue signs a token for user
func (s *service) issue(user *models.User) (*Session, error) {
	now := s.now().UTC()
	expiresAt := now.Add(s.cfg.TokenTTL)

	claims := Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    s.cfg.Issuer,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &Session{Token: signed, ExpiresAt: expiresAt.Truncate(time.Second), User: user}, nil
}

// HashPassword bcrypt-hashes password at cost
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func validateRegister(req RegisterRequest) (*models.User, error) {
	var errs models.ValidationErrors

	email := normalizeEmail(req.Email)
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		errs.Add("email", ErrInvalidEmail)
	}

	if utf8.RuneCountInString(req.Password) < models.MinPasswordLength {
		errs.Add("password", ErrPasswordTooShort)
	} else if len(req.Password) > maxPasswordBytes {
		errs.Add("password", ErrPasswordTooLong)
	}

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName, _, _ = strings.Cut(email, "@")
	}
	if utf8.RuneCountInString(displayName) > models.MaxDisplayNameLength {
		errs.Add("displayName", ErrDisplayNameTooLong)
	}

	return &models.User{Email: email, DisplayName: displayName}, errs.Err()
}

// normalizeEmail is the stored form of an email: trimmed, lower-cased
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
