package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	appErr "github.com/samims/notification-api/internal/errors"
	"github.com/samims/notification-api/internal/metrics"
	"github.com/samims/notification-api/internal/model"
	"github.com/samims/notification-api/internal/storage"
)

type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.Registration, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
}

type authService struct {
	store    storage.UserStorage
	logger   *slog.Logger
	tokenSvc TokenService
	validate *validator.Validate
}

func NewAuthService(store storage.UserStorage, logger *slog.Logger, tokenSvc TokenService) AuthService {
	l := logger.With("layer", "service", "component", "authService")
	return &authService{
		store:    store,
		logger:   l,
		tokenSvc: tokenSvc,
		validate: newValidator(),
	}
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (s *authService) Register(ctx context.Context, req model.RegisterRequest) (*model.Registration, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	s.logger.Info("Register called", slog.String("email", req.Email))

	role, err := s.validateRegistration(req)
	if err != nil {
		s.logger.Warn("Invalid registration", slog.String("email", req.Email), slog.Any("error", err))
		metrics.AuthAttempts.WithLabelValues("register", "invalid").Inc()
		return nil, err
	}

	if _, err := s.store.FindUserByEmail(ctx, req.Email); err == nil {
		s.logger.Warn("User already exists", slog.String("email", req.Email))
		metrics.AuthAttempts.WithLabelValues("register", "conflict").Inc()
		return nil, appErr.NewConflict("email %s is already registered", req.Email)
	} else if !appErr.IsNotFound(err) {
		s.logger.Error("Failed to look up user", slog.Any("error", err))
		return nil, appErr.NewInternal("failed to look up user: %v", err)
	}

	hashedPass, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Password hashing failed", slog.Any("error", err))
		return nil, appErr.NewInternal("password hashing failed: %v", err)
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		username = req.Email
	}

	reg := &model.Registration{}
	err = s.store.WithTx(ctx, func(tx storage.UserStorage) error {
		user := &model.User{
			Name:     strings.TrimSpace(req.Name),
			LastName: strings.TrimSpace(req.LastName),
			Email:    req.Email,
			Username: username,
			Password: string(hashedPass),
			Enabled:  true,
		}
		if err := tx.CreateUser(ctx, user); err != nil {
			return err
		}
		reg.User = user

		profile := &model.UserProfile{UserID: user.ID, Email: user.Email, IsAdmin: false, RoleType: role}
		if err := tx.CreateProfile(ctx, profile); err != nil {
			return err
		}
		reg.Profile = profile

		if role.IsCustomer() {
			c := req.Customer
			customer := &model.Customer{
				UserID:   user.ID,
				Name:     c.Name,
				DateYear: c.DateYear,
				DNI:      c.DNI,
				Email:    user.Email,
				Phone:    c.Phone,
				Address:  c.Address,
				GPSLat:   c.GPSLat,
				GPSLon:   c.GPSLon,
			}
			if err := tx.CreateCustomer(ctx, customer); err != nil {
				return err
			}
			reg.Customer = customer
		}

		if role.IsProvider() {
			p := req.Provider
			provider := &model.Provider{
				UserID:          user.ID,
				Name:            p.Name,
				Address:         p.Address,
				GPSLat:          p.GPSLat,
				GPSLong:         p.GPSLong,
				TypeProviderID:  p.TypeProviderID,
				GradeProviderID: p.GradeProviderID,
				ProfessionID:    p.ProfessionID,
				OfferID:         p.OfferID,
				CategoryID:      p.CategoryID,
			}
			if err := tx.CreateProvider(ctx, provider); err != nil {
				return err
			}
			reg.Provider = provider
		}
		return nil
	})
	if err != nil {
		if appErr.IsConflict(err) {
			s.logger.Warn("Registration conflicted", slog.String("email", req.Email), slog.Any("error", err))
			metrics.AuthAttempts.WithLabelValues("register", "conflict").Inc()
			return nil, appErr.NewConflict("email %s or username %s is already registered", req.Email, username)
		}
		s.logger.Error("User creation failed", slog.Any("error", err))
		return nil, appErr.NewInternal("user creation failed: %v", err)
	}

	metrics.AuthAttempts.WithLabelValues("register", "success").Inc()
	s.logger.Info("Register succeeded", slog.String("email", req.Email), slog.Int64("user_id", reg.User.ID))
	return reg, nil
}

func (s *authService) validateRegistration(req model.RegisterRequest) (model.Role, error) {
	if err := s.validate.Struct(req); err != nil {
		return "", validationError(err)
	}
	role, err := model.ParseRole(req.RoleType)
	if err != nil {
		return "", appErr.NewValidation("role_type must be one of CUSTOMER, PROVIDER, BOTH")
	}
	if role.IsCustomer() {
		if req.Customer == nil {
			return "", appErr.NewValidation("customer data is required for role %s", role)
		}
		if err := s.validate.Struct(req.Customer); err != nil {
			return "", validationError(err)
		}
	}
	if role.IsProvider() {
		if req.Provider == nil {
			return "", appErr.NewValidation("provider data is required for role %s", role)
		}
		if err := s.validate.Struct(req.Provider); err != nil {
			return "", validationError(err)
		}
	}
	return role, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	s.logger.Info("Login called", slog.String("email", email))

	if email == "" || password == "" {
		return nil, "", appErr.NewValidation("email and password are required")
	}

	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		if appErr.IsNotFound(err) {
			s.logger.Warn("User not found", slog.String("email", email))
			metrics.AuthAttempts.WithLabelValues("login", "rejected").Inc()
			return nil, "", appErr.ErrUnauthorized
		}
		s.logger.Error("Failed to fetch user by email", slog.String("email", email), slog.Any("error", err))
		return nil, "", appErr.NewInternal("failed to fetch user: %v", err)
	}

	if !user.Enabled {
		s.logger.Warn("Login for disabled user", slog.String("email", email))
		metrics.AuthAttempts.WithLabelValues("login", "rejected").Inc()
		return nil, "", appErr.ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.Warn("Invalid password", slog.String("email", email))
		metrics.AuthAttempts.WithLabelValues("login", "rejected").Inc()
		return nil, "", appErr.ErrUnauthorized
	}

	profile, err := s.store.FindProfileByUserID(ctx, user.ID)
	if err != nil {
		if appErr.IsNotFound(err) {
			s.logger.Warn("User has no profile", slog.Int64("user_id", user.ID))
			metrics.AuthAttempts.WithLabelValues("login", "rejected").Inc()
			return nil, "", appErr.ErrUnauthorized
		}
		s.logger.Error("Failed to fetch profile", slog.Int64("user_id", user.ID), slog.Any("error", err))
		return nil, "", appErr.NewInternal("failed to fetch profile: %v", err)
	}

	token, err := s.tokenSvc.GenerateToken(user.ID, profile.RoleType)
	if err != nil {
		s.logger.Error("Token generation failed", slog.String("email", email), slog.Any("error", err))
		return nil, "", appErr.NewInternal("token generation failed: %v", err)
	}

	metrics.AuthAttempts.WithLabelValues("login", "success").Inc()
	s.logger.Info("Token generated successfully", slog.String("email", email))
	return user, token, nil
}

// validationError turns validator output into a single client-facing
// message naming the first offending field.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return appErr.NewValidation("%s", fieldMessage(fe))
	}
	return appErr.NewValidation("invalid request: %v", err)
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}
