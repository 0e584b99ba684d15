package jwt

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/employee"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const tokenTypeAccess = "access"

type Service interface {
	GenerateAccessToken(claims auth.Claims) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
	now                       func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                       time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(claims auth.Claims) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = j.now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"employee_id": claims.EmployeeID,
		"email":       claims.Email,
		"role":        string(claims.Role),
		"type":        tokenTypeAccess,
		"exp":         expiresAt,
	})
	return tokenString, expiresAt, err
}

// ClaimsFromContext reads the access token placed on ctx by jwtauth.Verifier.
func ClaimsFromContext(ctx context.Context) (auth.Claims, error) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return auth.Claims{}, auth.ErrInvalidToken
	}
	return ClaimsFromMap(claims)
}

// ClaimsFromMap converts decoded token claims. Numeric claims arrive as
// float64 after a JSON round trip.
func ClaimsFromMap(claims map[string]interface{}) (auth.Claims, error) {
	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != tokenTypeAccess {
		return auth.Claims{}, auth.ErrInvalidToken
	}

	var employeeID int64
	switch v := claims["employee_id"].(type) {
	case float64:
		employeeID = int64(v)
	case int64:
		employeeID = v
	case int:
		employeeID = int64(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return auth.Claims{}, auth.ErrInvalidToken
		}
		employeeID = n
	default:
		return auth.Claims{}, auth.ErrInvalidToken
	}

	role, _ := claims["role"].(string)
	email, _ := claims["email"].(string)

	return auth.Claims{
		EmployeeID: employeeID,
		Email:      email,
		Role:       employee.Role(role),
	}, nil
}
