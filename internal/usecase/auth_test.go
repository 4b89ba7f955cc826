package usecase_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/ErlanBelekov/job-tracker/internal/auth"
	"github.com/ErlanBelekov/job-tracker/internal/domain"
	"github.com/ErlanBelekov/job-tracker/internal/usecase"
	"github.com/ErlanBelekov/job-tracker/internal/validate"
)

// ---- helpers ----

const testJWTKey = "test-jwt-secret-at-least-32-chars!!"

func newIssuer() *auth.Issuer {
	return auth.NewIssuer([]byte(testJWTKey), time.Hour)
}

func newUsecase(repo *fakeUserRepo, hasher *fakeHasher) *usecase.AuthUsecase {
	return usecase.NewAuthUsecase(repo, hasher, newIssuer(), validate.New(), slog.Default())
}

var ann = &domain.User{
	ID:           "user-1",
	Name:         "Ann",
	Email:        "ann@example.com",
	PasswordHash: "hashed:secret1",
}

// ---- Register ----

func TestRegister_StoresHashAndIssuesToken(t *testing.T) {
	var stored *domain.User
	repo := &fakeUserRepo{
		create: func(_ context.Context, u *domain.User) (*domain.User, error) {
			stored = u
			created := *u
			created.ID = "user-1"
			return &created, nil
		},
	}

	res, err := newUsecase(repo, &fakeHasher{}).Register(context.Background(), usecase.RegisterInput{
		Name:     "  Ann Lee ",
		Email:    " ann@example.com ",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored.PasswordHash == "secret1" {
		t.Error("password stored in plaintext")
	}
	if stored.PasswordHash != "hashed:secret1" {
		t.Errorf("stored hash = %q, want hashed:secret1", stored.PasswordHash)
	}
	if stored.Name != "Ann Lee" || stored.Email != "ann@example.com" {
		t.Errorf("name/email not trimmed: %q %q", stored.Name, stored.Email)
	}

	claims, err := newIssuer().Verify(res.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.UserID != "user-1" || claims.Name != "Ann Lee" {
		t.Errorf("claims = %+v, want user-1 / Ann Lee", claims)
	}
}

func TestRegister_InvalidInput_NoPersistence(t *testing.T) {
	tests := []struct {
		name  string
		input usecase.RegisterInput
		field string
	}{
		{"short name", usecase.RegisterInput{Name: "An", Email: "ann@example.com", Password: "secret1"}, "name"},
		{"bad email", usecase.RegisterInput{Name: "Ann", Email: "ann@", Password: "secret1"}, "email"},
		{"short password", usecase.RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "12345"}, "password"},
		{"missing password", usecase.RegisterInput{Name: "Ann", Email: "ann@example.com"}, "password"},
		{"password over 72 bytes", usecase.RegisterInput{Name: "Ann", Email: "ann@example.com", Password: strings.Repeat("é", 40)}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeUserRepo{
				create: func(context.Context, *domain.User) (*domain.User, error) {
					t.Fatal("store must not be called for invalid input")
					return nil, nil
				},
			}

			_, err := newUsecase(repo, &fakeHasher{}).Register(context.Background(), tt.input)

			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("err = %v, want *domain.ValidationError", err)
			}
			if ve.Violations[0].Field != tt.field {
				t.Errorf("violation field = %q, want %q", ve.Violations[0].Field, tt.field)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &fakeUserRepo{
		create: func(context.Context, *domain.User) (*domain.User, error) {
			return nil, domain.ErrEmailTaken
		},
	}

	_, err := newUsecase(repo, &fakeHasher{}).Register(context.Background(), usecase.RegisterInput{
		Name: "Ann", Email: "ann@example.com", Password: "secret1",
	})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestRegister_HashFailureIsFatal(t *testing.T) {
	repo := &fakeUserRepo{
		create: func(context.Context, *domain.User) (*domain.User, error) {
			t.Fatal("store must not be called when hashing fails")
			return nil, nil
		},
	}

	_, err := newUsecase(repo, &fakeHasher{hashErr: errors.New("boom")}).Register(context.Background(), usecase.RegisterInput{
		Name: "Ann", Email: "ann@example.com", Password: "secret1",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		t.Errorf("hash failure reported as validation error")
	}
}

// ---- Login ----

func TestLogin_Success(t *testing.T) {
	repo := &fakeUserRepo{
		findByEmail: func(_ context.Context, email string) (*domain.User, error) {
			if email != "ann@example.com" {
				t.Errorf("lookup email = %q", email)
			}
			return ann, nil
		},
	}

	res, err := newUsecase(repo, &fakeHasher{}).Login(context.Background(), usecase.LoginInput{
		Email: "ann@example.com", Password: "secret1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.User.Name != "Ann" {
		t.Errorf("user name = %q, want Ann", res.User.Name)
	}
	if _, err := newIssuer().Verify(res.Token); err != nil {
		t.Errorf("token does not verify: %v", err)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	repo := &fakeUserRepo{
		findByEmail: func(context.Context, string) (*domain.User, error) {
			t.Fatal("store must not be called")
			return nil, nil
		},
	}
	uc := newUsecase(repo, &fakeHasher{})

	for _, in := range []usecase.LoginInput{
		{Email: "", Password: "secret1"},
		{Email: "ann@example.com", Password: ""},
		{Email: "   ", Password: "secret1"},
	} {
		if _, err := uc.Login(context.Background(), in); !errors.Is(err, domain.ErrMissingCredentials) {
			t.Errorf("Login(%+v) err = %v, want ErrMissingCredentials", in, err)
		}
	}
}

func TestLogin_UnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	unknownHasher := &fakeHasher{}
	unknown := newUsecase(&fakeUserRepo{
		findByEmail: func(context.Context, string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}, unknownHasher)

	wrongHasher := &fakeHasher{}
	wrong := newUsecase(&fakeUserRepo{
		findByEmail: func(context.Context, string) (*domain.User, error) {
			return ann, nil
		},
	}, wrongHasher)

	_, errUnknown := unknown.Login(context.Background(), usecase.LoginInput{Email: "ghost@example.com", Password: "secret1"})
	_, errWrong := wrong.Login(context.Background(), usecase.LoginInput{Email: "ann@example.com", Password: "nope-nope"})

	if !errors.Is(errUnknown, domain.ErrInvalidCredentials) || !errors.Is(errWrong, domain.ErrInvalidCredentials) {
		t.Fatalf("errs = %v / %v, want ErrInvalidCredentials for both", errUnknown, errWrong)
	}
	if errUnknown.Error() != errWrong.Error() {
		t.Errorf("messages differ: %q vs %q", errUnknown, errWrong)
	}
	// unknown email still pays for one password comparison
	if unknownHasher.verified != 1 || wrongHasher.verified != 1 {
		t.Errorf("verify calls = %d / %d, want 1 / 1", unknownHasher.verified, wrongHasher.verified)
	}
}

func TestLogin_StoreErrorIsNotInvalidCredentials(t *testing.T) {
	repo := &fakeUserRepo{
		findByEmail: func(context.Context, string) (*domain.User, error) {
			return nil, errors.New("connection reset")
		},
	}

	_, err := newUsecase(repo, &fakeHasher{}).Login(context.Background(), usecase.LoginInput{
		Email: "ann@example.com", Password: "secret1",
	})
	if err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("err = %v, want wrapped store error", err)
	}
}
