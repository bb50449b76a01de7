package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"garastore/internal/auth"
	"garastore/internal/model"
	"garastore/internal/notify"
	"garastore/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// userService implements UserService.
type userService struct {
	userRepo repository.UserRepository
	tokens   auth.TokenService
	mailer   notify.Queue
	baseURL  string
	resetTTL time.Duration
	logger   zerolog.Logger
}

// NewUserService creates a new user service. baseURL is the storefront
// address used to build password reset links.
func NewUserService(
	userRepo repository.UserRepository,
	tokens auth.TokenService,
	mailer notify.Queue,
	baseURL string,
	resetTTL time.Duration,
	logger zerolog.Logger,
) UserService {
	return &userService{
		userRepo: userRepo,
		tokens:   tokens,
		mailer:   mailer,
		baseURL:  strings.TrimRight(baseURL, "/"),
		resetTTL: resetTTL,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

// SignIn checks credentials and issues a session token.
func (s *userService) SignIn(ctx context.Context, req *model.SignInRequest) (*model.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}
	if user == nil {
		s.logger.Debug().Str("email", req.Email).Msg("sign in for unknown email")
		return nil, model.ErrInvalidCredentials
	}

	ok, err := auth.CheckPassword(user.PasswordHash, req.Password)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to check password")
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}
	if !ok {
		s.logger.Debug().Str("user_id", user.ID.String()).Msg("wrong password")
		return nil, model.ErrInvalidCredentials
	}

	return s.authResponse(user)
}

// SignUp registers a customer account and issues a session token.
func (s *userService) SignUp(ctx context.Context, req *model.SignUpRequest) (*model.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" {
		return nil, model.NewValidationError("Name is required")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if req.Password == "" {
		return nil, model.NewValidationError("Password is required")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("user signed up")
	return s.authResponse(user)
}

// UpdateProfile changes the caller's own name, email or password. Empty
// fields keep their current value.
func (s *userService) UpdateProfile(ctx context.Context, caller *auth.Identity, req *model.ProfileUpdateRequest) (*model.AuthResponse, error) {
	user, err := s.mustGet(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
	}
	if email := strings.TrimSpace(req.Email); email != "" {
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		user.Email = email
	}
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("profile updated")
	return s.authResponse(user)
}

// List retrieves every account.
func (s *userService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetByID retrieves an account.
func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.mustGet(ctx, id)
}

// Update applies an admin edit. Empty name or email keep their current
// value; both role flags are always overwritten.
func (s *userService) Update(ctx context.Context, id uuid.UUID, req *model.UserUpdateRequest) (*model.UserUpdateResponse, error) {
	user, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
	}
	if email := strings.TrimSpace(req.Email); email != "" {
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		user.Email = email
	}
	user.IsAdmin = req.IsAdmin
	user.IsSupplier = req.IsSupplier

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID.String()).
		Bool("is_admin", user.IsAdmin).
		Bool("is_supplier", user.IsSupplier).
		Msg("user updated by admin")

	return &model.UserUpdateResponse{Message: "User Updated", User: user}, nil
}

// Delete removes an account unless it is the seed administrator.
func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := s.mustGet(ctx, id)
	if err != nil {
		return err
	}

	if user.IsSeedAdmin() {
		s.logger.Warn().Str("user_id", id.String()).Msg("refusing to delete seed admin")
		return model.ErrCannotDeleteAdmin
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", id.String()).Msg("user deleted")
	return nil
}

// ForgetPassword stores a fresh reset token on the account and queues an
// email carrying the reset link. Any earlier reset token stops working.
func (s *userService) ForgetPassword(ctx context.Context, req *model.ForgetPasswordRequest) error {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return model.ErrUserNotFound
	}

	token, err := s.tokens.IssueReset(user)
	if err != nil {
		return err
	}
	user.ResetToken = &token

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	link := s.baseURL + "/reset-password/" + token
	msg, err := notify.RenderPasswordReset(user, link, s.resetTTL.String())
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to render reset email")
		return nil
	}
	s.mailer.Enqueue(msg)

	s.logger.Info().Str("user_id", user.ID.String()).Msg("password reset requested")
	return nil
}

// ResetPassword sets a new password for the holder of the reset token most
// recently issued to the account, then invalidates that token.
func (s *userService) ResetPassword(ctx context.Context, req *model.ResetPasswordRequest) error {
	userID, err := s.tokens.VerifyReset(req.Token)
	if err != nil {
		return model.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || user.ResetToken == nil || *user.ResetToken != req.Token {
		return model.ErrUserNotFound
	}

	if req.Password == "" {
		return model.NewValidationError("Password is required")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.ResetToken = nil

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("password reset")
	return nil
}

func (s *userService) mustGet(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to get user")
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *userService) authResponse(user *model.User) (*model.AuthResponse, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to issue token")
		return nil, err
	}

	return &model.AuthResponse{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		IsAdmin:    user.IsAdmin,
		IsSupplier: user.IsSupplier,
		Token:      token,
	}, nil
}

func validateEmail(email string) error {
	if email == "" {
		return model.NewValidationError("Email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return model.NewValidationError("Email is invalid")
	}
	return nil
}
