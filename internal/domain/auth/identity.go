package auth

import (
	"context"
	"errors"

	"github.com/Durgaram26/hrms-sub000/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

var ErrInvalidToken = errors.New("invalid or missing token")

// Identity is the verified caller handed to the core by the authentication
// layer. Services never look at raw tokens.
type Identity struct {
	UserID     string
	Email      string
	EmployeeID string
	Role       user.Role
}

type identityKey struct{}

// WithIdentity places an identity on the context. Used by the auth
// middleware and by tests.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext resolves the caller identity. It prefers an identity injected
// via WithIdentity and otherwise projects it from the verified JWT claims.
func FromContext(ctx context.Context) (Identity, error) {
	if id, ok := ctx.Value(identityKey{}).(Identity); ok {
		return id, nil
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	return IdentityFromClaims(claims)
}

// IdentityFromClaims builds an Identity from token claims.
func IdentityFromClaims(claims map[string]interface{}) (Identity, error) {
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Identity{}, ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	employeeID, _ := claims["employee_id"].(string)

	roleStr, ok := claims["role"].(string)
	if !ok || roleStr == "" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{
		UserID:     userID,
		Email:      email,
		EmployeeID: employeeID,
		Role:       user.Role(roleStr),
	}, nil
}
