package domain

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrUsernameEmpty      = errors.New("username cannot be empty")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
)

type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Username     string    `json:"username" db:"username"`
	AvatarURL    string    `json:"avatar_url,omitempty" db:"avatar_url"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Profile is the identity slice the leaderboard joins in.
type Profile struct {
	UserID    string `json:"user_id" db:"id"`
	Username  string `json:"username" db:"username"`
	AvatarURL string `json:"avatar_url" db:"avatar_url"`
}

func NewUser(id, email, username string) (*User, error) {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)

	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if username == "" {
		return nil, ErrUsernameEmpty
	}

	now := time.Now().UTC()
	return &User{
		ID:        id,
		Email:     strings.ToLower(email),
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (u *User) SetPassword(plainPassword string) error {
	if utf8.RuneCountInString(plainPassword) < 8 {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), 12)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (u *User) CheckPassword(plainPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plainPassword))
}

func isValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

type UserRepository interface {
	// Create persists a new user. Returns ErrEmailAlreadyExists on a
	// duplicate email.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by id, or ErrUserNotFound.
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByEmail retrieves a user by normalized email, or ErrUserNotFound.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetProfile retrieves the identity slice used by the leaderboard.
	GetProfile(ctx context.Context, userID string) (*Profile, error)
}

// AchievementRepository reads the earned-achievement catalog. Criteria
// evaluation lives elsewhere; this service only consumes the results.
type AchievementRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*UserAchievement, error)
}
