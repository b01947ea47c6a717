package middleware

import (
	"strings"

	"mechalung/internal/delivery/http/response"
	"mechalung/internal/domain/entity"
	"mechalung/internal/usecase"

	"github.com/labstack/echo/v4"
)

// contextKeyDoctor is where the authenticated doctor is stored on the Echo
// context for handlers downstream.
const contextKeyDoctor = "doctor"

// AuthMiddleware guards routes behind bearer-token authentication.
type AuthMiddleware struct {
	accounts usecase.AccountUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(accounts usecase.AccountUsecase) *AuthMiddleware {
	return &AuthMiddleware{accounts: accounts}
}

// Authenticate validates the Authorization header and resolves it to a doctor
// account. All failure modes return the same 401 so callers cannot distinguish
// a bad token from a deleted or deactivated account.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "INVALID_TOKEN", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid token format, must be Bearer token")
		}

		doctor, err := m.accounts.Authenticate(c.Request().Context(), tokenString)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		c.Set(contextKeyDoctor, doctor)

		return next(c)
	}
}

// CurrentDoctor returns the doctor set by Authenticate, or nil when the route
// was not guarded.
func CurrentDoctor(c echo.Context) *entity.Doctor {
	doctor, _ := c.Get(contextKeyDoctor).(*entity.Doctor)

	return doctor
}
