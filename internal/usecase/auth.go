package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/ErlanBelekov/job-tracker/internal/domain"
	"github.com/ErlanBelekov/job-tracker/internal/metrics"
	"github.com/ErlanBelekov/job-tracker/internal/repository"
)

// bcrypt ignores input past 72 bytes.
const maxPasswordBytes = 72

type passwordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

type tokenIssuer interface {
	Issue(userID, name string) (string, error)
}

type inputValidator interface {
	Check(v any) error
}

type AuthUsecase struct {
	users    repository.UserRepository
	hasher   passwordHasher
	tokens   tokenIssuer
	validate inputValidator
	logger   *slog.Logger

	// compared against when the email is unknown, so both login failures cost one bcrypt run
	dummyHash func() string
}

func NewAuthUsecase(
	users repository.UserRepository,
	hasher passwordHasher,
	tokens tokenIssuer,
	validate inputValidator,
	logger *slog.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		validate: validate,
		logger:   logger.With("component", "auth_usecase"),
		dummyHash: sync.OnceValue(func() string {
			h, _ := hasher.Hash("not-a-real-password")
			return h
		}),
	}
}

type RegisterInput struct {
	Name     string `json:"name"     validate:"required,min=3,max=50"`
	Email    string `json:"email"    validate:"required,email_addr"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is returned by both Register and Login.
type AuthResult struct {
	User  *domain.User
	Token string
}

// Register validates the input, stores the user with a hashed password and
// returns a fresh identity token.
func (u *AuthUsecase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)

	if err := u.validate.Check(input); err != nil {
		recordAttempt("register", "invalid_input")
		return nil, err
	}
	if len(input.Password) > maxPasswordBytes {
		recordAttempt("register", "invalid_input")
		return nil, &domain.ValidationError{Violations: []domain.Violation{{
			Field:   "password",
			Message: fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes),
		}}}
	}

	hash, err := u.hasher.Hash(input.Password)
	if err != nil {
		recordAttempt("register", "error")
		return nil, fmt.Errorf("register: %w", err)
	}

	user, err := u.users.Create(ctx, &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			recordAttempt("register", "email_taken")
			return nil, domain.ErrEmailTaken
		}
		recordAttempt("register", "error")
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := u.tokens.Issue(user.ID, user.Name)
	if err != nil {
		recordAttempt("register", "error")
		return nil, fmt.Errorf("issue token: %w", err)
	}

	recordAttempt("register", "success")
	u.logger.InfoContext(ctx, "user registered", "user_id", user.ID)
	return &AuthResult{User: user, Token: token}, nil
}

// Login checks credentials. An unknown email and a wrong password both
// return domain.ErrInvalidCredentials.
func (u *AuthUsecase) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		recordAttempt("login", "missing_credentials")
		return nil, domain.ErrMissingCredentials
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			u.hasher.Verify(input.Password, u.dummyHash())
			recordAttempt("login", "invalid_credentials")
			return nil, domain.ErrInvalidCredentials
		}
		recordAttempt("login", "error")
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !u.hasher.Verify(input.Password, user.PasswordHash) {
		recordAttempt("login", "invalid_credentials")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := u.tokens.Issue(user.ID, user.Name)
	if err != nil {
		recordAttempt("login", "error")
		return nil, fmt.Errorf("issue token: %w", err)
	}

	recordAttempt("login", "success")
	return &AuthResult{User: user, Token: token}, nil
}

func recordAttempt(operation, outcome string) {
	metrics.AuthAttemptsTotal.WithLabelValues(operation, outcome).Inc()
}
