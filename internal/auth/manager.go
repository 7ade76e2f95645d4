package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"homeenergy/server/internal/database"
	"homeenergy/server/internal/models"
)

const minPasswordLength = 6

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email or phone already registered")
	ErrInvalidSignUp      = errors.New("invalid sign-up details")
)

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Manager handles sign-up, sign-in, sign-out and session lookup.
type Manager struct {
	users      UserStore
	sessions   SessionStore
	ttl        time.Duration
	bcryptCost int
	logger     *logrus.Logger
}

// NewManager creates a session manager issuing tokens valid for ttl.
func NewManager(users UserStore, sessions SessionStore, ttl time.Duration, logger *logrus.Logger) *Manager {
	if logger == nil {
		logger = logrus.New()
	}
	return &Manager{
		users:      users,
		sessions:   sessions,
		ttl:        ttl,
		bcryptCost: bcrypt.DefaultCost,
		logger:     logger,
	}
}

// SetBcryptCost overrides the hashing cost; tests use bcrypt.MinCost.
func (m *Manager) SetBcryptCost(cost int) {
	m.bcryptCost = cost
}

// Emails are stored lower-cased so the unique index also rejects case variants.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp registers a user and signs them in.
func (m *Manager) SignUp(ctx context.Context, req models.SignUpRequest) (*models.User, string, error) {
	email := normalizeEmail(req.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", fmt.Errorf("%w: invalid email address", ErrInvalidSignUp)
	}
	if len(req.Password) < minPasswordLength {
		return nil, "", fmt.Errorf("%w: password must be at least %d characters", ErrInvalidSignUp, minPasswordLength)
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, "", fmt.Errorf("%w: name is required", ErrInvalidSignUp)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), m.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		UserID:       uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Phone:        req.Phone,
		Role:         models.RoleUser,
		PasswordHash: string(hash),
	}
	if err := m.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := m.issue(ctx, user.UserID)
	if err != nil {
		return nil, "", err
	}

	m.logger.WithField("user_id", user.UserID).Info("User signed up")
	return user, token, nil
}

// SignIn checks the password and issues a new token.
func (m *Manager) SignIn(ctx context.Context, req models.SignInRequest) (*models.User, string, error) {
	user, err := m.users.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, database.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := m.issue(ctx, user.UserID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// SignOut invalidates the token.
func (m *Manager) SignOut(ctx context.Context, token string) error {
	return m.sessions.Delete(ctx, token)
}

// Session resolves a bearer token to its user.
func (m *Manager) Session(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}
	userID, err := m.sessions.Lookup(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := m.users.GetUser(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}
	return user, nil
}

func (m *Manager) issue(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	if err := m.sessions.Save(ctx, token, userID, m.ttl); err != nil {
		return "", err
	}
	return token, nil
}
