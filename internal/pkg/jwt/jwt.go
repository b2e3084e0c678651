package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/Durgaram26/hrms-sub000/internal/domain/user"
)

// Service verifies access tokens issued by the identity provider. Token
// issuance lives outside this service; GenerateAccessToken exists for
// integration tooling and tests.
type Service interface {
	GenerateAccessToken(userID string, email string, employeeID string, role user.Role, expiresIn time.Duration) (string, error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey string
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		secretKey: secretKey,
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(userID string, email string, employeeID string, role user.Role, expiresIn time.Duration) (string, error) {
	claims := map[string]interface{}{
		"user_id":     userID,
		"email":       email,
		"employee_id": employeeID,
		"role":        string(role),
		"type":        "access",
		"exp":         time.Now().Add(expiresIn).Unix(),
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}
