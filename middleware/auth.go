package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/abhiraj-restaurant/restaurant-api/config"
	"github.com/abhiraj-restaurant/restaurant-api/models"
	"github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	userIDKey    = "user_id"
	claimsKey    = "validated_claims"
	principalKey = "principal"
)

// CustomClaims contains custom data we want from the token.
type CustomClaims struct {
	Scope string `json:"scope"`
}

// Validate satisfies validator.CustomClaims; scopes are checked per route.
func (c CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// HasScope checks whether our claims have a specific scope.
func (c CustomClaims) HasScope(expectedScope string) bool {
	for _, scope := range strings.Split(c.Scope, " ") {
		if scope == expectedScope {
			return true
		}
	}
	return false
}

// NewValidator builds the HS256 validator for tokens signed with JWT_SECRET
func NewValidator(cfg *config.Config) (*validator.Validator, error) {
	keyFunc := func(ctx context.Context) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	}

	return validator.New(
		keyFunc,
		validator.HS256,
		cfg.JWTIssuer,
		[]string{cfg.JWTAudience},
		validator.WithCustomClaims(
			func() validator.CustomClaims {
				return &CustomClaims{}
			},
		),
		validator.WithAllowedClockSkew(time.Minute),
	)
}

// EnsureValidToken is a middleware that rejects requests without a valid bearer token.
func EnsureValidToken(cfg *config.Config) gin.HandlerFunc {
	return tokenMiddleware(cfg, false)
}

// OptionalToken validates a bearer token when one is sent and lets
// anonymous requests through. A present but invalid token is still rejected.
func OptionalToken(cfg *config.Config) gin.HandlerFunc {
	return tokenMiddleware(cfg, true)
}

func tokenMiddleware(cfg *config.Config, optional bool) gin.HandlerFunc {
	jwtValidator, err := NewValidator(cfg)
	if err != nil {
		log.Fatalf("Failed to set up the jwt validator: %v", err)
	}

	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		log.Printf("Encountered error while validating JWT: %v", err)

		body := `{"success":false,"error":{"code":"INVALID_TOKEN","message":"Failed to validate JWT."}}`
		if errors.Is(err, jwtmiddleware.ErrJWTMissing) {
			body = `{"success":false,"error":{"code":"MISSING_TOKEN","message":"Authorization token required"}}`
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		if _, writeErr := w.Write([]byte(body)); writeErr != nil {
			log.Printf("Failed to write error response: %v", writeErr)
		}
	}

	middleware := jwtmiddleware.New(
		jwtValidator.ValidateToken,
		jwtmiddleware.WithErrorHandler(errorHandler),
		jwtmiddleware.WithCredentialsOptional(optional),
	)

	return func(c *gin.Context) {
		passed := false
		var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r

			// Absent when the credential is optional and was not sent
			if token, ok := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims); ok {
				c.Set(userIDKey, token.RegisteredClaims.Subject)
				c.Set(claimsKey, token)
			}

			c.Next()
		}

		middleware.CheckJWT(handler).ServeHTTP(c.Writer, c.Request)
		if !passed {
			c.Abort()
		}
	}
}

// LoadPrincipal resolves the token subject to a user and rejects the request
// when no authenticated user can be found.
func LoadPrincipal() gin.HandlerFunc {
	return loadPrincipal(false)
}

// LoadOptionalPrincipal resolves the user when a token was sent and lets
// anonymous requests continue without a principal.
func LoadOptionalPrincipal() gin.HandlerFunc {
	return loadPrincipal(true)
}

func loadPrincipal(optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := GetUserID(c)
		if err != nil {
			if optional {
				c.Next()
				return
			}
			abortWithError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
			return
		}

		id, err := strconv.ParseUint(userID, 10, 64)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Token subject is not a valid user")
			return
		}

		var user models.User
		if err := config.GetDB().First(&user, uint(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				abortWithError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "User not found")
				return
			}
			log.Printf("Failed to load principal %d: %v", id, err)
			abortWithError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load user")
			return
		}

		SetPrincipal(c, &user)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the principal has the given role
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetPrincipal(c)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
			return
		}

		if user.Role != role {
			abortWithError(c, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions to access this resource")
			return
		}

		c.Next()
	}
}

// RequireScope is a middleware that checks if the token has a specific scope
func RequireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := GetClaims(c)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "MISSING_CLAIMS", "Could not retrieve token claims")
			return
		}

		customClaims, ok := claims.CustomClaims.(*CustomClaims)
		if !ok || !customClaims.HasScope(scope) {
			abortWithError(c, http.StatusForbidden, "INSUFFICIENT_SCOPE", "Insufficient permissions to access this resource")
			return
		}

		c.Next()
	}
}

// GetUserID extracts the token subject from the Gin context
func GetUserID(c *gin.Context) (string, error) {
	userID, exists := c.Get(userIDKey)
	if !exists {
		return "", &AuthError{Code: "MISSING_USER_ID", Message: "User ID not found in context"}
	}

	userIDStr, ok := userID.(string)
	if !ok {
		return "", &AuthError{Code: "INVALID_USER_ID", Message: "User ID is not a string"}
	}

	return userIDStr, nil
}

// GetClaims extracts the validated JWT claims from the Gin context
func GetClaims(c *gin.Context) (*validator.ValidatedClaims, error) {
	claims, exists := c.Get(claimsKey)
	if !exists {
		return nil, &AuthError{Code: "MISSING_CLAIMS", Message: "Claims not found in context"}
	}

	validatedClaims, ok := claims.(*validator.ValidatedClaims)
	if !ok {
		return nil, &AuthError{Code: "INVALID_CLAIMS", Message: "Claims are not in the expected format"}
	}

	return validatedClaims, nil
}

// SetPrincipal stores the authenticated user in the Gin context
func SetPrincipal(c *gin.Context, user *models.User) {
	c.Set(principalKey, user)
}

// GetPrincipal returns the authenticated user, if any
func GetPrincipal(c *gin.Context) (*models.User, error) {
	value, exists := c.Get(principalKey)
	if !exists {
		return nil, &AuthError{Code: "UNAUTHENTICATED", Message: "No authenticated user"}
	}

	user, ok := value.(*models.User)
	if !ok || user == nil {
		return nil, &AuthError{Code: "INVALID_PRINCIPAL", Message: "Principal is not a user"}
	}

	return user, nil
}

func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
