package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "storerating/internal/delivery/context"
	"storerating/internal/domain/entity"
	domainerrors "storerating/internal/domain/errors"
	"storerating/internal/domain/repository"
	"storerating/internal/domain/service"
	"storerating/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	validator    service.InputValidator
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Validator    service.InputValidator
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		validator:    params.Validator,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a USER account. Any role the caller might send is ignored.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = normalizeEmail(input.Email)
	input.Address = strings.TrimSpace(input.Address)

	if err := validateInput(srv.validator, input, passwordViolations(srv.hasher, "password", input.Password)...); err != nil {
		return nil, err
	}

	_, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.ErrUserAlreadyExists
	}
	if !errors.Is(err, domainerrors.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check existing email")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &entity.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Address:      input.Address,
		Role:         entity.RoleUser,
	}
	if err := srv.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}

	token, err := srv.tokenService.GenerateToken(user)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token")
	}

	srv.log(ctx).Info("User registered", slog.Int64("userID", user.ID))

	return &usecase.AuthOutput{Token: token, User: user}, nil
}

// Login verifies credentials. Unknown email and wrong password fail identically.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	input.Email = normalizeEmail(input.Email)
	if err := validateInput(srv.validator, input); err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if errors.Is(err, domainerrors.ErrUserNotFound) {
		srv.log(ctx).Debug("Login failed")

		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Debug("Login failed")

		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := srv.tokenService.GenerateToken(user)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token")
	}

	srv.log(ctx).Info("User logged in", slog.Int64("userID", user.ID), slog.String("role", user.Role.String()))

	return &usecase.AuthOutput{Token: token, User: user}, nil
}

// Authenticate validates the token and loads the user it names.
func (srv *authService) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	claims, err := srv.tokenService.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if errors.Is(err, domainerrors.ErrUserNotFound) {
		return nil, domainerrors.ErrUnauthenticated.WrapMessage("token user no longer exists")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load token user")
	}

	return user, nil
}

// GetProfile returns the current row of the user.
func (srv *authService) GetProfile(ctx context.Context, userID int64) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// UpdateProfile changes name and address of the caller.
func (srv *authService) UpdateProfile(ctx context.Context, userID int64, input *usecase.UpdateProfileInput) (*entity.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Address = strings.TrimSpace(input.Address)
	if err := validateInput(srv.validator, input); err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	user.Name = input.Name
	user.Address = input.Address
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update profile")
	}

	return user, nil
}

// UpdatePassword replaces the caller's password hash after the current password is confirmed.
func (srv *authService) UpdatePassword(ctx context.Context, userID int64, input *usecase.UpdatePasswordInput) error {
	if err := validateInput(srv.validator, input, passwordViolations(srv.hasher, "newPassword", input.NewPassword)...); err != nil {
		return err
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "failed to find user")
	}

	if !srv.hasher.Check(input.CurrentPassword, user.PasswordHash) {
		return domainerrors.ErrCurrentPasswordIncorrect
	}

	hash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	user.PasswordHash = hash
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to update password")
	}

	srv.log(ctx).Info("Password updated", slog.Int64("userID", userID))

	return nil
}
