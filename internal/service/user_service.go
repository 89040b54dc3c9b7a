package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/auth"
	"storefront/internal/errs"
	"storefront/internal/models"
	"storefront/internal/repository"
)

type userService struct {
	repo   repository.UserRepository
	hasher *auth.PasswordHasher
}

func NewUserService(repo repository.UserRepository, hasher *auth.PasswordHasher) UserService {
	return &userService{repo: repo, hasher: hasher}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account. Email uniqueness is checked first and enforced again by the
// unique index on write.
func (s *userService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)

	var missing []string
	if strings.TrimSpace(req.FirstName) == "" {
		missing = append(missing, "firstName")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if len(req.Password) < 6 {
		missing = append(missing, "password")
	}
	if req.Role != "" && !req.Role.Valid() {
		missing = append(missing, "role")
	}
	if len(missing) > 0 {
		return nil, errs.Invalid(missing...)
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, errs.ErrConflict
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}

	user := &models.User{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     email,
		Password:  hash,
		Role:      role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().Str("user_id", user.ID.Hex()).Str("role", string(role)).Msg("user registered")
	return user, nil
}

// Login verifies credentials and reports the role the client redirects on.
func (s *userService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.ErrUnauthorized
		}
		return nil, err
	}

	if !s.hasher.Verify(req.Password, user.Password) {
		log.Ctx(ctx).Warn().Str("user_id", user.ID.Hex()).Msg("login with wrong password")
		return nil, errs.ErrUnauthorized
	}
	if user.IsBlocked {
		return nil, errs.ErrForbidden
	}

	return &models.LoginResponse{
		Message: "Login successful",
		UserID:  user.ID.Hex(),
		Name:    user.FullName(),
		Role:    user.Role,
	}, nil
}

func (s *userService) ListCustomers(ctx context.Context) ([]models.User, error) {
	return s.repo.FindByRole(ctx, models.RoleCustomer)
}

func (s *userService) GetCustomer(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *userService) UpdateCustomer(ctx context.Context, id primitive.ObjectID, update models.CustomerUpdate) (*models.User, error) {
	set := bson.M{}
	if update.FirstName != nil {
		if strings.TrimSpace(*update.FirstName) == "" {
			return nil, errs.Invalid("firstName")
		}
		set["first_name"] = strings.TrimSpace(*update.FirstName)
	}
	if update.LastName != nil {
		set["last_name"] = strings.TrimSpace(*update.LastName)
	}
	if len(set) == 0 {
		return nil, errs.Invalidf("no valid fields to update")
	}
	return s.repo.Update(ctx, id, set)
}

func (s *userService) DeleteCustomer(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.Delete(ctx, id)
}

func (s *userService) ToggleBlocked(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.repo.ToggleBlocked(ctx, id)
	if err != nil {
		return nil, err
	}
	log.Ctx(ctx).Info().Str("user_id", id.Hex()).Bool("blocked", user.IsBlocked).Msg("customer block toggled")
	return user, nil
}
