package auth

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"

	"cryptojournal/internal/domain"
	"cryptojournal/internal/ports"
)

// Service handles registration and login for journal users. It is the identity
// collaborator: the journal core only ever sees the owner ID it produces.
type Service struct {
	logger     ports.Logger
	users      ports.UserRepository
	signer     ports.TokenSigner
	bcryptCost int
	validate   *validator.Validate
}

// NewService creates the auth service. A bcrypt cost outside the library's
// bounds falls back to the default cost.
func NewService(logger ports.Logger, users ports.UserRepository, signer ports.TokenSigner, bcryptCost int) (*Service, error) {
	if logger == nil || users == nil || signer == nil {
		return nil, fmt.Errorf("missing required dependencies for auth Service")
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Service{
		logger:     logger,
		users:      users,
		signer:     signer,
		bcryptCost: bcryptCost,
		validate:   v,
	}, nil
}

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginInput carries the fields accepted at login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Register creates a new user and issues a session token.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.User, string, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, "", firstAuthFieldError(err)
	}

	existing, err := s.users.FindUserByEmail(ctx, input.Email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", fmt.Errorf("user already exists: %w", ports.ErrDuplicateEntry)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           ulid.Make().String(),
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		s.logger.Error(ctx, err, "Failed to create user", map[string]interface{}{"email": input.Email})
		return nil, "", err
	}

	token, err := s.signer.Sign(user)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info(ctx, "User registered", map[string]interface{}{"userID": user.ID, "email": user.Email})
	return user, token, nil
}

// Login verifies credentials and issues a session token. Wrong email and wrong
// password produce the same error.
func (s *Service) Login(ctx context.Context, input LoginInput) (*domain.User, string, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, "", firstAuthFieldError(err)
	}

	user, err := s.users.FindUserByEmail(ctx, input.Email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", fmt.Errorf("%w: invalid email or password", ports.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", fmt.Errorf("%w: invalid email or password", ports.ErrUnauthorized)
	}

	token, err := s.signer.Sign(user)
	if err != nil {
		return nil, "", err
	}
	s.logger.Debug(ctx, "User logged in", map[string]interface{}{"userID": user.ID})
	return user, token, nil
}

func firstAuthFieldError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		reason := "is invalid"
		switch fe.Tag() {
		case "required":
			reason = "is required"
		case "email":
			reason = "must be a valid email address"
		case "min":
			reason = "must be at least " + fe.Param() + " characters"
		}
		return &ports.ValidationError{Field: fe.Field(), Reason: reason}
	}
	return fmt.Errorf("%w: %v", ports.ErrInvalidRequest, err)
}
