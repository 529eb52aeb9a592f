// Package auth provides authentication and authorization for the API.
//
// Clients obtain an HS256 access token from POST /api/auth/login and send it
// as "Authorization: Bearer <token>". Tokens carry the user ID, role and a
// random jti; logging out records the jti in a TokenRevoker until the token
// expires (database table by default, Redis when REDIS_ADDR is set).
//
// # Configuration
//
//	AUTH_JWT_SECRET=<secret>        # Generated per process if empty
//	AUTH_JWT_ISSUER=bookshelf
//	AUTH_TOKEN_EXPIRY=24h
//	AUTH_BCRYPT_COST=12
//	AUTH_MAX_LOGIN_ATTEMPTS=5       # Failed logins per IP+email before lockout
//	AUTH_RATE_LIMIT_WINDOW=15m
//	AUTH_LOCKOUT_DURATION=30m
//
// # Usage
//
//	tokens := auth.NewTokenService(secret, cfg.Auth.JWTIssuer, cfg.Auth.TokenExpiry)
//	mw := auth.NewMiddleware(tokens, revoker, renderError)
//
//	api.GET("/users/me", mw.RequireAuth(), users.Me)
//	api.GET("/users", mw.RequireAuth(), mw.RequireRole(entities.RoleAdmin), users.List)
//
// Extract the principal in handlers:
//
//	userID := auth.GetUserID(c)
package auth
