package middelware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"grocerflow-backend/models"
	"grocerflow-backend/repository"
	"grocerflow-backend/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// JWTManager handles JWT token operations
type JWTManager struct {
	Config            *models.Config
	Logger            logger.Logger
	UserRepo          repository.UserRepositoryInterface
	BlacklistedTokens map[string]time.Time // Token revocation blacklist (for immediate invalidation)
	ActiveTokens      map[string]string    // userID -> current active tokenID
	TokenMutex        sync.RWMutex         // Thread safety for both maps
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(cfg *models.Config, log logger.Logger, userRepo repository.UserRepositoryInterface) *JWTManager {
	return &JWTManager{
		Config:            cfg,
		Logger:            log,
		UserRepo:          userRepo,
		BlacklistedTokens: make(map[string]time.Time),
		ActiveTokens:      make(map[string]string),
	}
}

// authFailure writes an error envelope and stops the handler chain.
func authFailure(c *gin.Context, code int, message, errType, details string) {
	c.JSON(code, models.APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		Error: &models.APIError{
			Type:    errType,
			Details: details,
		},
	})
	c.Abort()
}

// GenerateToken generates a JWT token for a user
func (j *JWTManager) GenerateToken(user *models.User) (string, error) {
	claims := models.JWTClaims{
		UserID:      user.UserID,
		Email:       user.Email,
		Username:    user.Username,
		Role:        user.Role,
		Permissions: user.Permissions,
		Status:      user.Status,
		CustomerID:  user.CustomerID,
		SupplierID:  user.SupplierID,
		RiderID:     user.RiderID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.UserID,
			Issuer:    j.Config.AppName,
			Audience:  jwt.ClaimStrings{j.Config.AppName},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.Config.JWTExpiresIn)),
			NotBefore: jwt.NewNumericDate(time.Now()),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(j.Config.JWTSecret))
	if err != nil {
		j.Logger.Errorf("Failed to sign JWT token: %v", err)
		return "", err
	}

	j.Logger.Debugf("Generated JWT token for user: %s", user.UserID)

	return tokenString, nil
}

// ValidateToken validates a JWT token and returns the claims with database cross-verification
func (j *JWTManager) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Prevent algorithm confusion attacks
		if method, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		} else if method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("invalid signing algorithm: %v", method.Alg())
		}

		return []byte(j.Config.JWTSecret), nil
	})

	if err != nil {
		j.Logger.Errorf("Failed to parse JWT token: %v", err)
		return nil, err
	}

	if !token.Valid {
		j.Logger.Error("Invalid JWT token")
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok {
		j.Logger.Error("Failed to extract JWT claims")
		return nil, fmt.Errorf("invalid claims")
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		j.Logger.Error("JWT token expired")
		return nil, fmt.Errorf("token expired")
	}

	if claims.NotBefore != nil && claims.NotBefore.After(time.Now()) {
		j.Logger.Error("JWT token not yet valid")
		return nil, fmt.Errorf("token not yet valid")
	}

	// Check the revocation blacklist
	j.TokenMutex.RLock()
	if expiry, exists := j.BlacklistedTokens[claims.ID]; exists && expiry.After(time.Now()) {
		j.TokenMutex.RUnlock()
		j.Logger.Error("Token is blacklisted")
		return nil, fmt.Errorf("token has been revoked")
	}
	j.TokenMutex.RUnlock()

	// Cross-verify with the user record so suspended accounts lose
	// access before the token expires
	if j.UserRepo != nil {
		dbUser, err := j.UserRepo.GetByID(context.Background(), claims.UserID)
		if err != nil {
			j.Logger.Errorf("Failed to verify user in database: %v", err)
			return nil, fmt.Errorf("user verification failed")
		}
		if dbUser == nil {
			j.Logger.Errorf("User %s not found in database", claims.UserID)
			return nil, fmt.Errorf("user not found")
		}
		if dbUser.Status != models.UserStatusActive {
			j.Logger.Errorf("User %s account is %s", claims.UserID, dbUser.Status)
			return nil, fmt.Errorf("user account is %s", dbUser.Status)
		}
		if dbUser.Role != claims.Role {
			j.Logger.Errorf("Role mismatch for %s: token %s, database %s", claims.UserID, claims.Role, dbUser.Role)
			return nil, fmt.Errorf("role no longer assigned to user")
		}
	}

	j.Logger.Debugf("Successfully validated JWT token for user: %s", claims.UserID)
	return claims, nil
}

// SetActiveToken sets the current active token for a user and revokes any previous token
func (j *JWTManager) SetActiveToken(userID, tokenID string) {
	j.TokenMutex.Lock()
	defer j.TokenMutex.Unlock()

	if oldTokenID, exists := j.ActiveTokens[userID]; exists && oldTokenID != tokenID {
		j.BlacklistedTokens[oldTokenID] = time.Now().Add(24 * time.Hour)
		j.Logger.Debugf("Previous token %s for user %s added to blacklist", oldTokenID, userID)
	}

	j.ActiveTokens[userID] = tokenID
	j.Logger.Debugf("Set active token for user %s: %s", userID, tokenID)
}

// RevokeUserToken removes the active token for a user and adds it to blacklist (logout)
func (j *JWTManager) RevokeUserToken(userID string, tokenID string, expiry time.Time) {
	j.TokenMutex.Lock()
	defer j.TokenMutex.Unlock()

	j.BlacklistedTokens[tokenID] = expiry
	delete(j.ActiveTokens, userID)

	j.Logger.Debugf("Revoked token for user %s: %s", userID, tokenID)
}

// CleanupExpiredTokens removes expired tokens from blacklist
func (j *JWTManager) CleanupExpiredTokens() {
	j.TokenMutex.Lock()
	defer j.TokenMutex.Unlock()

	now := time.Now()
	for tokenID, expiry := range j.BlacklistedTokens {
		if expiry.Before(now) {
			delete(j.BlacklistedTokens, tokenID)
		}
	}
	j.Logger.Debugf("Cleaned up expired blacklisted tokens")
}

// AuthMiddleware validates the JWT from the Authorization header
func (j *JWTManager) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			j.Logger.Error("Missing Authorization header")
			authFailure(c, http.StatusUnauthorized, "Missing Authorization header",
				"AuthenticationError", "Authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			j.Logger.Error("Invalid Authorization header format")
			authFailure(c, http.StatusUnauthorized, "Invalid Authorization header format",
				"AuthenticationError", "Authorization header must be in format: Bearer <token>")
			return
		}
		tokenString := strings.TrimSpace(parts[1])

		claims, err := j.ValidateToken(tokenString)
		if err != nil {
			j.Logger.Errorf("Token validation failed: %v", err)
			authFailure(c, http.StatusUnauthorized, "Invalid or expired token",
				"AuthenticationError", err.Error())
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_role", claims.Role)
		c.Set("customer_id", claims.CustomerID)
		c.Set("supplier_id", claims.SupplierID)
		c.Set("rider_id", claims.RiderID)
		c.Set("jwt_claims", claims)

		j.Logger.Debugf("User authenticated: %s", claims.UserID)
		c.Next()
	}
}

// Login verifies credentials and issues a token
func (j *JWTManager) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		j.Logger.Error("Failed to bind JSON:", err)
		authFailure(c, http.StatusBadRequest, "Invalid login payload",
			"ValidationError", err.Error())
		return
	}

	user, err := j.UserRepo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil || user == nil {
		j.Logger.Errorf("Login failed for %s: %v", req.Email, err)
		authFailure(c, http.StatusUnauthorized, "Invalid email or password",
			"AuthenticationError", "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		j.Logger.Error("Invalid password")
		authFailure(c, http.StatusUnauthorized, "Invalid email or password",
			"AuthenticationError", "Invalid email or password")
		return
	}

	if user.Status != models.UserStatusActive {
		j.Logger.Errorf("Login rejected, account %s is %s", user.UserID, user.Status)
		authFailure(c, http.StatusForbidden, "Account is not active",
			"AuthenticationError", fmt.Sprintf("Account status: %s", user.Status))
		return
	}

	tokenString, err := j.GenerateToken(user)
	if err != nil {
		j.Logger.Error("Token generation failed", err)
		authFailure(c, http.StatusInternalServerError, "Token generation failed",
			"TokenError", err.Error())
		return
	}

	if err := j.UserRepo.RecordLogin(c.Request.Context(), user.UserID, user.Role); err != nil {
		j.Logger.Warnf("Could not record login for %s: %v", user.UserID, err)
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Token generated successfully",
		Data: models.LoginResponse{
			Token:     tokenString,
			ExpiresAt: time.Now().Add(j.Config.JWTExpiresIn).UTC().Format(time.RFC3339),
			UserID:    user.UserID,
			Role:      user.Role,
			Name:      user.Name,
		},
	})
}

// Logout blacklists the caller's token until its natural expiry
func (j *JWTManager) Logout(c *gin.Context) {
	claims, exists := c.Get("jwt_claims")
	if !exists {
		authFailure(c, http.StatusUnauthorized, "Authentication required",
			"AuthenticationError", "User not authenticated")
		return
	}

	jwtClaims := claims.(*models.JWTClaims)
	expiry := time.Now().Add(j.Config.JWTExpiresIn)
	if jwtClaims.ExpiresAt != nil {
		expiry = jwtClaims.ExpiresAt.Time
	}
	j.RevokeUserToken(jwtClaims.UserID, jwtClaims.ID, expiry)

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Logged out successfully",
	})
}

// Refresh issues a fresh token for a valid session and revokes the old one
func (j *JWTManager) Refresh(c *gin.Context) {
	claims, exists := c.Get("jwt_claims")
	if !exists {
		authFailure(c, http.StatusUnauthorized, "Authentication required",
			"AuthenticationError", "User not authenticated")
		return
	}

	jwtClaims := claims.(*models.JWTClaims)
	user, err := j.UserRepo.GetByID(c.Request.Context(), jwtClaims.UserID)
	if err != nil || user == nil {
		authFailure(c, http.StatusUnauthorized, "User not found",
			"AuthenticationError", "Account no longer exists")
		return
	}

	tokenString, err := j.GenerateToken(user)
	if err != nil {
		authFailure(c, http.StatusInternalServerError, "Token generation failed",
			"TokenError", err.Error())
		return
	}

	expiry := time.Now().Add(j.Config.JWTExpiresIn)
	if jwtClaims.ExpiresAt != nil {
		expiry = jwtClaims.ExpiresAt.Time
	}
	j.RevokeUserToken(jwtClaims.UserID, jwtClaims.ID, expiry)

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Token refreshed successfully",
		Data: models.LoginResponse{
			Token:     tokenString,
			ExpiresAt: time.Now().Add(j.Config.JWTExpiresIn).UTC().Format(time.RFC3339),
			UserID:    user.UserID,
			Role:      user.Role,
			Name:      user.Name,
		},
	})
}

// hasPermission checks a permission against the token's grants.
// A "*" grant matches everything.
func hasPermission(permissions []string, required string) bool {
	for _, p := range permissions {
		if p == "*" || p == required {
			return true
		}
	}
	return false
}

// RequireRole middleware checks if the caller holds one of the given roles
func (j *JWTManager) RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, exists := c.Get("jwt_claims")
		if !exists {
			j.Logger.Error("JWT claims not found in context")
			authFailure(c, http.StatusUnauthorized, "Authentication required",
				"AuthenticationError", "User not authenticated")
			return
		}

		jwtClaims := claims.(*models.JWTClaims)
		if jwtClaims.Role == models.RoleSuperAdmin {
			c.Next()
			return
		}
		for _, role := range roles {
			if jwtClaims.Role == role {
				c.Next()
				return
			}
		}

		j.Logger.Errorf("User %s with role %s denied, requires one of %v", jwtClaims.UserID, jwtClaims.Role, roles)
		authFailure(c, http.StatusForbidden, "Insufficient permissions",
			"AuthorizationError", fmt.Sprintf("Required role: %v", roles))
	}
}

// RequirePermission middleware checks if the caller holds a specific permission
func (j *JWTManager) RequirePermission(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, exists := c.Get("jwt_claims")
		if !exists {
			j.Logger.Error("JWT claims not found in context")
			authFailure(c, http.StatusUnauthorized, "Authentication required",
				"AuthenticationError", "User not authenticated")
			return
		}

		jwtClaims := claims.(*models.JWTClaims)
		if !hasPermission(jwtClaims.Permissions, required) {
			j.Logger.Errorf("User %s does not have required permission: %s", jwtClaims.UserID, required)
			authFailure(c, http.StatusForbidden, "Insufficient permissions",
				"AuthorizationError", fmt.Sprintf("Required permission: %s", required))
			return
		}

		c.Next()
	}
}
