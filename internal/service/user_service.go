package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"notekeeper/internal/domain"
	"notekeeper/internal/repository"
)

// UserService coordina reglas de negocio para cuentas de usuario.
type UserService struct {
	logger *zap.Logger
	users  repository.UserRepository
}

func NewUserService(logger *zap.Logger, users repository.UserRepository) *UserService {
	return &UserService{
		logger: logger,
		users:  users,
	}
}

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

var emailPattern = regexp.MustCompile(`^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,3})+$`)

const uniqueViolationCode = "23505"

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type UpdateInput struct {
	Name     *string
	Email    *string
	Password *string
}

// Register valida los datos, deriva el hash de la contraseña y persiste
// el usuario. El duplicado de email lo decide la restricción de unicidad
// del almacenamiento, no una lectura previa.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("user service not configured")
	}

	name := strings.TrimSpace(input.Name)
	emailAddr := normalizeEmail(input.Email)
	password := input.Password

	if err := validateName(name); err != nil {
		return domain.User{}, err
	}
	if err := validateEmail(emailAddr); err != nil {
		return domain.User{}, err
	}
	if err := validatePassword(password); err != nil {
		return domain.User{}, err
	}

	passwordHash, err := HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        emailAddr,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

// Authenticate verifica credenciales. Email desconocido y contraseña
// incorrecta fallan con el mismo error para no permitir enumeración.
func (s *UserService) Authenticate(ctx context.Context, emailAddr, password string) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("user service not configured")
	}

	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	if user.PasswordHash == "" {
		return domain.User{}, ErrInvalidCredentials
	}
	if !CheckPassword(password, user.PasswordHash) {
		return domain.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// GetByID resuelve un usuario por id. El middleware lo llama en cada
// request, sin cachear, para que una cuenta borrada pierda acceso.
func (s *UserService) GetByID(ctx context.Context, id string) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("user service not configured")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// Update aplica cambios parciales. El hash solo se recalcula cuando el
// campo de contraseña viene en la entrada; otros cambios no lo tocan.
func (s *UserService) Update(ctx context.Context, id string, input UpdateInput) (domain.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if err := validateName(name); err != nil {
			return domain.User{}, err
		}
		user.Name = name
	}
	if input.Email != nil {
		emailAddr := normalizeEmail(*input.Email)
		if err := validateEmail(emailAddr); err != nil {
			return domain.User{}, err
		}
		user.Email = emailAddr
	}
	if input.Password != nil {
		if err := validatePassword(*input.Password); err != nil {
			return domain.User{}, err
		}
		passwordHash, err := HashPassword(*input.Password)
		if err != nil {
			return domain.User{}, err
		}
		user.PasswordHash = passwordHash
	}

	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}
	return user, nil
}

func validateName(name string) error {
	if name == "" {
		return newValidationError("name", "name is required")
	}
	if len(name) < 2 {
		return newValidationError("name", "name must be at least 2 characters")
	}
	if len(name) > 50 {
		return newValidationError("name", "name cannot exceed 50 characters")
	}
	return nil
}

func validateEmail(emailAddr string) error {
	if emailAddr == "" {
		return newValidationError("email", "email is required")
	}
	if !emailPattern.MatchString(emailAddr) {
		return newValidationError("email", "please provide a valid email")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return newValidationError("password", "password is required")
	}
	if len(password) < 6 {
		return newValidationError("password", "password must be at least 6 characters")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
