// Package users provides database operations for users and their access tokens.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	token, err := repo.GetAccessTokenByHash(hash)
package users

import (
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user with an already hashed password.
func (r *Repository) CreateUser(name, email, passwordHash string) (*entities.User, error) {
	user := &entities.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}

	if err := r.db.Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email.
func (r *Repository) GetUserByEmail(email string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailTaken reports whether a user already registered the email.
func (r *Repository) EmailTaken(email string) (bool, error) {
	var count int64
	err := r.db.Model(&entities.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// UpdatePasswordHash replaces a user's password hash.
func (r *Repository) UpdatePasswordHash(userID uint, passwordHash string) error {
	result := r.db.Model(&entities.User{}).Where("id = ?", userID).Update("password_hash", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateAccessToken stores a new token record.
func (r *Repository) CreateAccessToken(token *entities.AccessToken) error {
	return r.db.Create(token).Error
}

// GetAccessTokenByHash retrieves a token record by the hash of its plaintext.
func (r *Repository) GetAccessTokenByHash(tokenHash string) (*entities.AccessToken, error) {
	var token entities.AccessToken
	err := r.db.Where("token_hash = ?", tokenHash).First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// TouchAccessToken records the last time a token was used.
func (r *Repository) TouchAccessToken(id uint, at time.Time) error {
	return r.db.Model(&entities.AccessToken{}).Where("id = ?", id).Update("last_used_at", at).Error
}

// DeleteAccessToken revokes a single token.
func (r *Repository) DeleteAccessToken(id uint) error {
	return r.db.Delete(&entities.AccessToken{}, id).Error
}

// DeleteAccessTokensExcept revokes every token of a user except keepID.
func (r *Repository) DeleteAccessTokensExcept(userID, keepID uint) (int64, error) {
	result := r.db.Where("user_id = ? AND id <> ?", userID, keepID).Delete(&entities.AccessToken{})
	return result.RowsAffected, result.Error
}

// DeleteExpiredAccessTokens removes tokens whose expiry is before now.
func (r *Repository) DeleteExpiredAccessTokens(now time.Time) (int64, error) {
	result := r.db.Where("expires_at IS NOT NULL AND expires_at <= ?", now).Delete(&entities.AccessToken{})
	return result.RowsAffected, result.Error
}
