package service

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stridehq/stride/internal/model"
	"github.com/stridehq/stride/internal/repository"
	"github.com/stridehq/stride/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidEmail       = errors.New("invalid email address")
)

// AuthService is a thin bootstrap over the identity layer: anonymous
// sessions mirror the original sign-in-without-an-account flow, and an
// account can later be upgraded to email + password.
type AuthService struct {
	userRepository repository.UserRepository
	goalService    *GoalService
	jwtSecret      string
	isProduction   bool
	jwtExpiry      time.Duration
}

func NewAuthService(
	userRepository repository.UserRepository,
	goalService *GoalService,
	jwtSecret string,
	isProduction bool,
	jwtExpiry time.Duration,
) *AuthService {
	return &AuthService{
		userRepository: userRepository,
		goalService:    goalService,
		jwtSecret:      jwtSecret,
		isProduction:   isProduction,
		jwtExpiry:      jwtExpiry,
	}
}

// CreateAnonymousSession creates an anonymous user and seeds the starter
// goals so the first check-in has content.
func (s *AuthService) CreateAnonymousSession() (*model.User, error) {
	now := time.Now()
	user := &model.User{
		ID:        uuid.New().String(),
		Anonymous: true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.userRepository.Create(user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	err = s.goalService.EnsureStarterGoals(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to seed starter goals: %w", err)
	}

	return user, nil
}

// Register attaches email + password to the given user, turning an
// anonymous session into a durable account. A nil user registers fresh.
func (s *AuthService) Register(current *model.User, email, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	err := validation.ValidateEmail(email)
	if err != nil {
		return nil, ErrInvalidEmail
	}

	err = validation.ValidatePassword(password)
	if err != nil {
		return nil, err
	}

	existing, err := s.userRepository.ByEmail(email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	if current != nil {
		current.Email = &email
		current.PasswordHash = &hash
		current.Anonymous = false
		current.UpdatedAt = time.Now()

		err = s.userRepository.Update(current)
		if err != nil {
			return nil, fmt.Errorf("failed to upgrade account: %w", err)
		}
		return current, nil
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New().String(),
		Email:        &email,
		PasswordHash: &hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.userRepository.Create(user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	err = s.goalService.EnsureStarterGoals(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to seed starter goals: %w", err)
	}

	return user, nil
}

func (s *AuthService) Login(email, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.HasPassword() {
		return nil, ErrInvalidCredentials
	}

	err = s.ComparePassword(password, *user.PasswordHash)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (s *AuthService) GenerateJWT(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(s.jwtExpiry).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func (s *AuthService) VerifyJWT(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

func (s *AuthService) SetJWTCookie(w http.ResponseWriter, token string, expiry time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Expires:  expiry,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) ClearJWTCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) JWTExpiry() time.Duration {
	return s.jwtExpiry
}
