package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuswatch/campuswatch-be/internal/models"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(name, email, password string, role models.Role, phone string) (models.User, error)
	Authenticate(email, password string) (models.User, error)
	GetUserByID(id string) (models.User, error)
}

// UserService provides business logic for user management.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a new user account with a hashed password.
// Email uniqueness is checked here and backed by the schema constraint.
func (s *UserService) Register(name, email, password string, role models.Role, phone string) (models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return models.User{}, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}
	if !models.ValidRole(role) {
		return models.User{}, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	var exists int
	if err := s.db.QueryRow("SELECT COUNT(1) FROM users WHERE email = ?", email).Scan(&exists); err != nil {
		return models.User{}, err
	}
	if exists > 0 {
		return models.User{}, ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
		Phone:        phone,
	}

	_, err = s.db.Exec(
		"INSERT INTO users(id, name, email, password_hash, role, phone, created_at) VALUES(?, ?, ?, ?, ?, ?, ?)",
		user.ID, user.Name, user.Email, user.PasswordHash, string(user.Role), user.Phone, time.Now().UTC(),
	)
	if err != nil {
		return models.User{}, err
	}

	return s.GetUserByID(user.ID)
}

// Authenticate verifies a user's credentials. Unknown email and wrong
// password produce the same error so the response leaks nothing.
func (s *UserService) Authenticate(email, password string) (models.User, error) {
	user, err := s.getUserByEmail(email)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}

// GetUserByID retrieves a single user by their ID, without the password hash.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	var user models.User
	var role string
	var phone sql.NullString
	row := s.db.QueryRow(
		"SELECT id, name, email, role, phone, reward_points, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &role, &phone, &user.RewardPoints, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return models.User{}, err
	}
	user.Role = models.Role(role)
	user.Phone = phone.String
	return user, nil
}

func (s *UserService) getUserByEmail(email string) (models.User, error) {
	var user models.User
	var role string
	var phone sql.NullString
	row := s.db.QueryRow(
		"SELECT id, name, email, password_hash, role, phone, reward_points, created_at FROM users WHERE email = ?", email)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &role, &phone, &user.RewardPoints, &user.CreatedAt)
	if err != nil {
		return models.User{}, err
	}
	user.Role = models.Role(role)
	user.Phone = phone.String
	return user, nil
}
