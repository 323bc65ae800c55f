package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"resto/internal/core/domain/model/access"
	"resto/internal/core/domain/model/kernel"
	"resto/internal/generated/servers"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// scopeContextKey is where the middleware stores the resolved access.Scope.
const scopeContextKey = "accessScope"

var (
	// ErrMissingToken is returned when the Authorization header is absent or
	// not a bearer token.
	ErrMissingToken = errors.New("missing bearer token")

	// ErrScopeNotResolved is returned when a handler runs without the scope
	// middleware in front of it.
	ErrScopeNotResolved = errors.New("access scope was not resolved for this request")
)

// scopeClaims is the token payload the admin panel issues. Older tokens carry
// a single branch_id claim instead of the branch_ids list.
type scopeClaims struct {
	Role      string   `json:"role"`
	BranchIDs []string `json:"branch_ids,omitempty"`
	BranchID  string   `json:"branch_id,omitempty"`
	jwt.RegisteredClaims
}

// ScopeMiddleware authenticates the bearer token and resolves the caller's
// branch scope into the request context. Requests without a valid token are
// rejected with 401 before any handler runs.
func ScopeMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			scope, err := resolveScope(ctx.Request().Header.Get(echo.HeaderAuthorization), secret)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, servers.Error{
					Code:    http.StatusUnauthorized,
					Message: err.Error(),
				})
			}

			ctx.Set(scopeContextKey, scope)
			return next(ctx)
		}
	}
}

// ScopeFromContext returns the scope resolved by ScopeMiddleware.
func ScopeFromContext(ctx echo.Context) (access.Scope, error) {
	scope, ok := ctx.Get(scopeContextKey).(access.Scope)
	if !ok {
		return access.Scope{}, ErrScopeNotResolved
	}
	return scope, nil
}

func resolveScope(authHeader, secret string) (access.Scope, error) {
	rawToken, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || rawToken == "" {
		return access.Scope{}, ErrMissingToken
	}

	claims := &scopeClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return access.Scope{}, err
	}
	if !token.Valid {
		return access.Scope{}, jwt.ErrTokenUnverifiable
	}

	role, err := access.RoleFromString(claims.Role)
	if err != nil {
		return access.Scope{}, err
	}
	if role == access.RoleSuperAdmin {
		return access.SuperAdminScope(), nil
	}

	// Legacy tokens carry one scalar branch id; NewBranchSet normalizes both
	// shapes into one canonical set.
	branchIDs := claims.BranchIDs
	if claims.BranchID != "" {
		branchIDs = append(branchIDs, claims.BranchID)
	}

	return access.NewScope(role, kernel.NewBranchSet(branchIDs...))
}
