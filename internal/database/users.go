package database

import (
	"context"
	"fmt"
	"time"

	"homeenergy/server/internal/models"
)

// CreateUser inserts a user. A taken email or phone fails with ErrDuplicate.
func (d *Database) CreateUser(ctx context.Context, user *models.User) error {
	if err := d.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", translate(err))
	}
	return nil
}

// GetUser returns a user by id or ErrNotFound.
func (d *Database) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := d.db.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// GetUserByEmail finds a user by email, ignoring case.
func (d *Database) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := d.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// SaveSession stores a session token.
func (d *Database) SaveSession(ctx context.Context, session *models.Session) error {
	if err := d.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// GetSession returns an unexpired session or ErrNotFound.
func (d *Database) GetSession(ctx context.Context, token string, now time.Time) (*models.Session, error) {
	var session models.Session
	err := d.db.WithContext(ctx).
		Where("token = ? AND expires_at > ?", token, now).
		First(&session).Error
	if err != nil {
		return nil, translate(err)
	}
	return &session, nil
}

// DeleteSession removes a session token. Unknown tokens are ignored.
func (d *Database) DeleteSession(ctx context.Context, token string) error {
	if err := d.db.WithContext(ctx).Where("token = ?", token).Delete(&models.Session{}).Error; err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
