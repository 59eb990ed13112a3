package services

import (
	"context"
	"errors"
	"fmt"

	"paper-review-api/config"
	"paper-review-api/models"
	"paper-review-api/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	if db == nil {
		db = config.DB
	}
	return &UserService{db: db}
}

// RegisterInput is the payload accepted for account creation.
type RegisterInput struct {
	Name     string `json:"name" yaml:"name"`
	Email    string `json:"email" yaml:"email"`
	Password string `json:"password" yaml:"password"`
	Role     string `json:"role" yaml:"role"`
}

// Register creates an account. A second account with the same email is a Conflict.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	name := utils.SanitizeInput(in.Name)
	email := models.NormalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, ValidationError("Please provide name, email, and password.")
	}
	if !utils.ValidateEmail(email) {
		return nil, ValidationError("Please provide a valid email address.")
	}
	if ok, msg := utils.ValidatePassword(in.Password); !ok {
		return nil, ValidationError(msg)
	}
	role, ok := models.ParseRole(in.Role)
	if !ok {
		return nil, ValidationError("Role must be either 'admin' or 'reviewer'.")
	}

	var existing int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if existing > 0 {
		return nil, ConflictError("An account with this email already exists.")
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ConflictError("An account with this email already exists.")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// FindByID returns NotFound when the account does not exist.
func (s *UserService) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("User not found.")
		}
		return nil, fmt.Errorf("load user %s: %w", id, err)
	}
	return &user, nil
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", models.NormalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("User not found.")
		}
		return nil, fmt.Errorf("load user by email: %w", err)
	}
	return &user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.list(ctx, "")
}

func (s *UserService) ListReviewers(ctx context.Context) ([]models.User, error) {
	return s.list(ctx, models.RoleReviewer)
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func (s *UserService) list(ctx context.Context, role models.Role) ([]models.User, error) {
	query := s.db.WithContext(ctx).Order("name ASC")
	if role != "" {
		query = query.Where("role = ?", role)
	}
	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// HashPassword hashes password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares password with hash
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// SanitizedUsers maps accounts to their credential-free response shape.
func SanitizedUsers(users []models.User) []models.UserResponse {
	out := make([]models.UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, user.Response())
	}
	return out
}

