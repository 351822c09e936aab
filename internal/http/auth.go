package http

import (
	"context"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/apperrors"
	"github.com/mrlokans/catalog/internal/auth"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/validation"
)

// AccountService is the subset of the auth service used by AuthController.
type AccountService interface {
	Register(ctx context.Context, in auth.RegisterInput) (*entities.User, error)
	Login(ctx context.Context, in auth.LoginInput) (*auth.LoginResult, error)
	Profile(ctx context.Context, userID uint) (*entities.User, error)
	Logout(ctx context.Context, tokenID uint) error
	ChangePassword(ctx context.Context, userID, currentTokenID uint, in auth.ChangePasswordInput) error
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
}

type AuthController struct {
	accounts AccountService
	limiter  *auth.RateLimiter
	statuses StatusTable
}

func NewAuthController(accounts AccountService, limiter *auth.RateLimiter, statuses StatusTable) *AuthController {
	return &AuthController{
		accounts: accounts,
		limiter:  limiter,
		statuses: statuses,
	}
}

// Register creates a user account
// POST /api/register
func (ac *AuthController) Register(c *gin.Context) {
	var in auth.RegisterInput
	if err := validation.Bind(c, &in); err != nil {
		respondAppError(c, err, "register")
		return
	}

	user, err := ac.accounts.Register(c.Request.Context(), in)
	if err != nil {
		respondAppError(c, err, "register")
		return
	}

	respondWrite(c, ac.statuses.For(OperationCreate), "The user account has been created", user)
}

// Login exchanges credentials for a bearer token
// POST /api/login
func (ac *AuthController) Login(c *gin.Context) {
	var in auth.LoginInput
	if err := validation.Bind(c, &in); err != nil {
		respondAppError(c, err, "login")
		return
	}

	ip := c.ClientIP()
	email := auth.NormalizeEmail(in.Email)

	if ac.limiter != nil {
		if allowed, retryAfter := ac.limiter.Allow(ip, email); !allowed {
			respondTooManyAttempts(c, retryAfter.Seconds())
			return
		}
	}

	result, err := ac.accounts.Login(c.Request.Context(), in)
	if err != nil {
		if ac.limiter != nil && apperrors.IsKind(err, apperrors.KindUnauthorized) {
			if locked, lockout := ac.limiter.RecordFailure(ip, email); locked {
				respondTooManyAttempts(c, lockout.Seconds())
				return
			}
		}
		respondAppError(c, err, "login")
		return
	}

	if ac.limiter != nil {
		ac.limiter.RecordSuccess(ip, email)
	}

	c.JSON(http.StatusOK, LoginResponse{
		Message:     "Successful authentication",
		AccessToken: result.AccessToken,
	})
}

func respondTooManyAttempts(c *gin.Context, retryAfterSeconds float64) {
	seconds := int(math.Ceil(retryAfterSeconds))
	c.Header("Retry-After", strconv.Itoa(seconds))
	c.JSON(http.StatusTooManyRequests, ErrorResponse{
		Error: "Too many failed login attempts, try again later",
		Code:  "too_many_attempts",
	})
}

// Profile returns the authenticated user
// GET /api/profile
func (ac *AuthController) Profile(c *gin.Context) {
	user, err := ac.accounts.Profile(c.Request.Context(), GetUserID(c))
	if err != nil {
		respondAppError(c, err, "profile")
		return
	}
	respondOK(c, user)
}

// Logout revokes the token used for the request
// POST /api/logout
func (ac *AuthController) Logout(c *gin.Context) {
	if err := ac.accounts.Logout(c.Request.Context(), auth.GetTokenID(c)); err != nil {
		respondAppError(c, err, "logout")
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Logout successful"})
}

// ChangePassword sets a new password and revokes the caller's other tokens
// POST /api/change-password
func (ac *AuthController) ChangePassword(c *gin.Context) {
	var in auth.ChangePasswordInput
	if err := validation.Bind(c, &in); err != nil {
		respondAppError(c, err, "change password")
		return
	}

	if err := ac.accounts.ChangePassword(c.Request.Context(), GetUserID(c), auth.GetTokenID(c), in); err != nil {
		respondAppError(c, err, "change password")
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Your password has been successfully updated!"})
}
