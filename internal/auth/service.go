package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/apperrors"
	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/database/audit"
	"github.com/mrlokans/catalog/internal/database/users"
	"github.com/mrlokans/catalog/internal/entities"
)

// TokenName labels tokens issued by Login.
const TokenName = "auth_token"

const (
	msgInvalidCredentials = "Invalid credentials"
	msgUnauthenticated    = "Unauthenticated"
	msgEmailTaken         = "The email has already been taken."
)

type RegisterInput struct {
	Name                 string `json:"name" binding:"required,max=255"`
	Email                string `json:"email" binding:"required,email,max=255"`
	Password             string `json:"password" binding:"required,max=72"`
	PasswordConfirmation string `json:"password_confirmation" binding:"eqfield=Password"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordInput struct {
	Password             string `json:"password" binding:"required,max=72"`
	PasswordConfirmation string `json:"password_confirmation" binding:"eqfield=Password"`
}

// LoginResult carries the plaintext token. It is not stored anywhere and
// cannot be recovered later.
type LoginResult struct {
	User        *entities.User
	Token       *entities.AccessToken
	AccessToken string
}

// Identity is what a bearer token resolves to.
type Identity struct {
	UserID  uint
	TokenID uint
}

// Service handles registration, credentials and access tokens.
type Service struct {
	db     *database.Database
	config config.Auth
	now    func() time.Time
}

// NewService creates a new authentication service.
func NewService(db *database.Database, cfg config.Auth) *Service {
	return &Service{
		db:     db,
		config: cfg,
		now:    time.Now,
	}
}

func (s *Service) fail(action string, err error) error {
	if apperrors.As(err) != nil {
		return err
	}
	log.Printf("auth: failed to %s: %v", action, err)
	return apperrors.Internal("failed to "+action, err)
}

func hashOrFieldError(password string, cost int) (string, error) {
	hash, err := HashPassword(password, cost)
	switch {
	case errors.Is(err, ErrPasswordRequired):
		return "", apperrors.FieldError("password", "The password field is required.")
	case errors.Is(err, ErrPasswordTooLong):
		return "", apperrors.FieldError("password", "The password may not be greater than 72 characters.")
	case err != nil:
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

// NormalizeEmail is the stored and compared form of an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user account. A taken email is a validation failure
// on the email field.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entities.User, error) {
	email := NormalizeEmail(in.Email)
	hash, err := hashOrFieldError(in.Password, s.config.BcryptCost)
	if err != nil {
		return nil, s.fail("register", err)
	}

	var user *entities.User
	err = s.db.SerializableTransaction(ctx, func(tx *gorm.DB) error {
		repo := users.NewRepository(tx)

		taken, err := repo.EmailTaken(email)
		if err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if taken {
			return apperrors.FieldError("email", msgEmailTaken)
		}

		user, err = repo.CreateUser(strings.TrimSpace(in.Name), email, hash)
		if err != nil {
			return fmt.Errorf("insert user: %w", err)
		}
		return audit.NewRepository(tx).Record(user.ID, entities.AuditActionCreate, "user", user.ID, "Registered account")
	})
	if database.IsUniqueViolation(err) {
		return nil, apperrors.FieldError("email", msgEmailTaken)
	}
	if err != nil {
		return nil, s.fail("register", err)
	}
	return user, nil
}

// Login checks the credentials and issues a new access token.
// Unknown emails and wrong passwords are indistinguishable.
func (s *Service) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	repo := users.NewRepository(s.db.DB.WithContext(ctx))

	user, err := repo.GetUserByEmail(NormalizeEmail(in.Email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Unauthorized(msgInvalidCredentials)
	}
	if err != nil {
		return nil, s.fail("find user", err)
	}

	if err := CheckPassword(in.Password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return nil, apperrors.Unauthorized(msgInvalidCredentials)
		}
		return nil, s.fail("check password", err)
	}

	plaintext, hash, err := GenerateAccessToken()
	if err != nil {
		return nil, s.fail("generate token", err)
	}

	token := &entities.AccessToken{
		UserID:    user.ID,
		Name:      TokenName,
		TokenHash: hash,
	}
	if s.config.TokenExpiry > 0 {
		expiresAt := s.now().Add(s.config.TokenExpiry)
		token.ExpiresAt = &expiresAt
	}
	if err := repo.CreateAccessToken(token); err != nil {
		return nil, s.fail("save token", err)
	}

	return &LoginResult{User: user, Token: token, AccessToken: plaintext}, nil
}

// Authenticate resolves a plaintext bearer token. Unknown and expired
// tokens are Unauthorized.
func (s *Service) Authenticate(ctx context.Context, plaintext string) (*Identity, error) {
	if plaintext == "" {
		return nil, apperrors.Unauthorized(msgUnauthenticated)
	}

	repo := users.NewRepository(s.db.DB.WithContext(ctx))
	token, err := repo.GetAccessTokenByHash(HashToken(plaintext))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Unauthorized(msgUnauthenticated)
	}
	if err != nil {
		return nil, s.fail("find token", err)
	}

	now := s.now()
	if token.IsExpired(now) {
		return nil, apperrors.Unauthorized("Token expired")
	}

	if err := repo.TouchAccessToken(token.ID, now); err != nil {
		log.Printf("auth: failed to update last use of token %d: %v", token.ID, err)
	}

	return &Identity{UserID: token.UserID, TokenID: token.ID}, nil
}

// Profile returns the authenticated user.
func (s *Service) Profile(ctx context.Context, userID uint) (*entities.User, error) {
	user, err := users.NewRepository(s.db.DB.WithContext(ctx)).GetUserByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("user")
	}
	if err != nil {
		return nil, s.fail("get user", err)
	}
	return user, nil
}

// Logout revokes only the token used for the request.
func (s *Service) Logout(ctx context.Context, tokenID uint) error {
	if err := users.NewRepository(s.db.DB.WithContext(ctx)).DeleteAccessToken(tokenID); err != nil {
		return s.fail("revoke token", err)
	}
	return nil
}

// ChangePassword sets a new password and revokes every token of the user
// except currentTokenID, in one unit.
func (s *Service) ChangePassword(ctx context.Context, userID, currentTokenID uint, in ChangePasswordInput) error {
	hash, err := hashOrFieldError(in.Password, s.config.BcryptCost)
	if err != nil {
		return s.fail("change password", err)
	}

	err = s.db.Transaction(ctx, func(tx *gorm.DB) error {
		repo := users.NewRepository(tx)

		revoked, err := repo.DeleteAccessTokensExcept(userID, currentTokenID)
		if err != nil {
			return fmt.Errorf("revoke tokens: %w", err)
		}
		if err := repo.UpdatePasswordHash(userID, hash); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("user")
			}
			return fmt.Errorf("update password: %w", err)
		}
		return audit.NewRepository(tx).Record(userID, entities.AuditActionPasswordChange, "user", userID,
			fmt.Sprintf("Changed password, revoked %d other tokens", revoked))
	})
	if err != nil {
		return s.fail("change password", err)
	}
	return nil
}

// PruneExpiredTokens deletes tokens past their expiry.
func (s *Service) PruneExpiredTokens(ctx context.Context) (int64, error) {
	deleted, err := users.NewRepository(s.db.DB.WithContext(ctx)).DeleteExpiredAccessTokens(s.now())
	if err != nil {
		return 0, s.fail("prune tokens", err)
	}
	return deleted, nil
}
