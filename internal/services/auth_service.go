package services

import (
	"errors"
	"fmt"
	"time"

	"agromarket/internal/models"
	"agromarket/internal/redis"
	"agromarket/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SessionStore is the slice of the redis client auth needs; tests swap in
// an in-memory fake.
type SessionStore interface {
	SetSession(sessionID string, data *redis.SessionData, ttl time.Duration) error
	GetSession(sessionID string) (*redis.SessionData, error)
	DeleteSession(sessionID string) error
}

type AuthClaims struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=farmer consumer"`
	Farm     string `json:"farm"`
	Location string `json:"location"`
}

type AuthService interface {
	Register(input RegisterInput) (*models.Profile, error)
	Login(email, password string) (string, *models.Profile, error)
	Logout(token string) error
	CurrentUser(token string) (*models.Profile, error)
	Validate(token string) (*AuthClaims, error)
}

type authService struct {
	profileRepo repository.ProfileRepository
	sessions    SessionStore
	jwtSecret   []byte
	sessionTTL  time.Duration
}

func NewAuthService(
	profileRepo repository.ProfileRepository,
	sessions SessionStore,
	jwtSecret string,
	sessionTTL time.Duration,
) AuthService {
	return &authService{
		profileRepo: profileRepo,
		sessions:    sessions,
		jwtSecret:   []byte(jwtSecret),
		sessionTTL:  sessionTTL,
	}
}

func (s *authService) Register(input RegisterInput) (*models.Profile, error) {
	if _, err := s.profileRepo.GetByEmail(input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	profile := &models.Profile{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         input.Role,
		Farm:         input.Farm,
		Location:     input.Location,
	}
	if err := s.profileRepo.Create(profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return profile, nil
}

func (s *authService) Login(email, password string) (string, *models.Profile, error) {
	profile, err := s.profileRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidLogin
		}
		return "", nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidLogin
	}

	sessionID := uuid.NewString()
	session := &redis.SessionData{
		UserID:    profile.ID,
		Email:     profile.Email,
		Role:      profile.Role,
		CreatedAt: time.Now(),
	}
	if err := s.sessions.SetSession(sessionID, session, s.sessionTTL); err != nil {
		return "", nil, fmt.Errorf("failed to store session: %w", err)
	}

	claims := &AuthClaims{
		UserID:    profile.ID,
		Role:      profile.Role,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "agromarket",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, profile, nil
}

func (s *authService) Logout(token string) error {
	claims, err := s.Validate(token)
	if err != nil {
		return err
	}
	return s.sessions.DeleteSession(claims.SessionID)
}

func (s *authService) CurrentUser(token string) (*models.Profile, error) {
	claims, err := s.Validate(token)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.GetByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return profile, nil
}

// Validate checks the token signature and that its session is still live.
func (s *authService) Validate(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrNotAuthenticated
	}
	claims, ok := token.Claims.(*AuthClaims)
	if !ok {
		return nil, ErrNotAuthenticated
	}
	if _, err := s.sessions.GetSession(claims.SessionID); err != nil {
		return nil, ErrNotAuthenticated
	}
	return claims, nil
}
