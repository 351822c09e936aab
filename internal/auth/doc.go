// Package auth provides user registration, login and bearer token
// authentication for the API.
//
// Login issues an opaque access token. Only its SHA-256 hash is stored, in
// the access_tokens table, so tokens can be enumerated and revoked one by
// one: logout revokes the current token, a password change revokes all
// the others.
//
// # Configuration
//
//	AUTH_TOKEN_EXPIRY=720h        # Token lifetime, 0 disables expiry
//	AUTH_BCRYPT_COST=12           # bcrypt cost factor
//	AUTH_MAX_LOGIN_ATTEMPTS=5     # Failed logins before lockout
//	AUTH_RATE_LIMIT_WINDOW=15m
//	AUTH_LOCKOUT_DURATION=30m
//
// # Usage
//
//	authService := auth.NewService(db, cfg.Auth)
//	authMiddleware := auth.NewMiddleware(authService)
//	api.Use(authMiddleware.RequireAuth())
//
// Extract the identity in handlers:
//
//	userID := auth.GetUserID(c)
//	tokenID := auth.GetTokenID(c)
package auth
