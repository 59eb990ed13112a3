package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"paper-review-api/config"
	"paper-review-api/models"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// Caller is the identity resolved once per request at the auth boundary.
type Caller struct {
	ID   string
	Name string
	Role models.Role
}

func (c Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

type AuthService struct {
	users  *UserService
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{
		users:  NewUserService(db),
		secret: []byte(config.App.JWTSecret),
		ttl:    config.App.TokenTTL,
		now:    time.Now,
	}
}

// LoginResult is returned by Authenticate on success.
type LoginResult struct {
	Token string
	User  models.User
}

// Authenticate checks the credentials and issues a token.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, ValidationError("Please provide email and password.")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if IsKind(err, KindNotFound) {
			return nil, AuthError("Incorrect email or password.")
		}
		return nil, err
	}
	if !CheckPasswordHash(password, user.PasswordHash) {
		return nil, AuthError("Incorrect email or password.")
	}

	token, err := s.IssueToken(*user)
	if err != nil {
		return nil, ServerError("Failed to generate token", err)
	}
	return &LoginResult{Token: token, User: *user}, nil
}

// IssueToken signs an HS256 token for user valid for the configured window.
func (s *AuthService) IssueToken(user models.User) (string, error) {
	if len(s.secret) == 0 {
		return "", errors.New("JWT_SECRET is not configured")
	}
	now := s.now()
	claims := Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Authorize validates the token and confirms the account still exists.
func (s *AuthService) Authorize(ctx context.Context, tokenString string) (Caller, error) {
	if tokenString == "" {
		return Caller{}, AuthError("You are not logged in! Please log in to get access.")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid || claims.UserID == "" {
		return Caller{}, AuthError("Invalid token. Please log in again.")
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if IsKind(err, KindNotFound) {
			return Caller{}, AuthError("The user belonging to this token no longer exists.")
		}
		return Caller{}, fmt.Errorf("authorize: %w", err)
	}

	return Caller{ID: user.ID, Name: user.Name, Role: user.Role}, nil
}

// RequireRole allows the caller only when its role is one of roles.
func RequireRole(caller Caller, roles ...models.Role) error {
	for _, role := range roles {
		if caller.Role == role {
			return nil
		}
	}
	return ForbiddenError("You do not have permission to perform this action.")
}
