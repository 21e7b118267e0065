package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/events"
	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/models"
	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/repositories"
	"github.com/thatdevelopergirlcobham/unicross-pay-management-system/internal/validator"
)

const tokenLifetime = 24 * time.Hour

// Claims is the JWT payload issued on login. The role claim is a convenience
// for clients; authorization always re-reads the persisted user.
type Claims struct {
	UserID    string          `json:"userId"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	IsActive  bool            `json:"isActive"`
	jwt.RegisteredClaims
}

// TokenManager signs and validates portal JWTs.
type TokenManager struct {
	secret []byte
	issuer string
}

func NewTokenManager(secret, issuer string) *TokenManager {
	return &TokenManager{secret: []byte(secret), issuer: issuer}
}

// GenerateToken issues a signed token for the user, valid for 24 hours.
func (tm *TokenManager) GenerateToken(user *models.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(tokenLifetime)
	claims := &Claims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		IsActive:  user.IsActive,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    tm.issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken parses and verifies a token, returning its claims.
func (tm *TokenManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return tm.secret, nil
	}, jwt.WithIssuer(tm.issuer))
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

type authService struct {
	repo      repositories.Repository
	tokens    *TokenManager
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAuthService(repo repositories.Repository, tokens *TokenManager, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) AuthService {
	return &authService{
		repo:      repo,
		tokens:    tokens,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewInvalidInputError(err.Error())
	}
	if errs := s.validator.GetBusinessValidator().ValidateRegistration(req); len(errs) > 0 {
		return nil, NewInvalidInputError(errs.Error())
	}

	email := models.NormalizeEmail(req.Email)

	exists, err := s.repo.User().ExistsByEmail(ctx, email)
	if err != nil {
		return nil, NewInternalError("failed to check email", err)
	}
	if exists {
		return nil, NewConflictError("an account with this email already exists")
	}

	if req.MatricNo != nil && *req.MatricNo != "" {
		taken, err := s.repo.User().ExistsByMatricNo(ctx, *req.MatricNo)
		if err != nil {
			return nil, NewInternalError("failed to check matric number", err)
		}
		if taken {
			return nil, NewConflictError("an account with this matric number already exists")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewInternalError("failed to hash password", err)
	}

	user := &models.User{
		Email:     email,
		Password:  string(hash),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		IsActive:  true,
		MatricNo:  req.MatricNo,
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, NewConflictError("an account with these details already exists")
		}
		return nil, NewInternalError("failed to create user", err)
	}

	s.logger.Info("User registered", "user_id", user.ID, "role", user.Role)
	s.publish(ctx, events.NewEvent(events.EventUserRegistered, map[string]string{
		"user_id": user.ID,
		"role":    string(user.Role),
	}))

	return s.issueToken(user)
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewInvalidInputError(err.Error())
	}

	user, err := s.repo.User().GetByEmail(ctx, req.Email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			// Same response as a wrong password so callers cannot probe
			// which emails exist.
			return nil, NewUnauthenticatedError("invalid email or password")
		}
		return nil, NewInternalError("failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, NewUnauthenticatedError("invalid email or password")
	}

	if !user.IsActive {
		return nil, NewForbiddenError("account is deactivated")
	}

	s.logger.Info("User logged in", "user_id", user.ID, "role", user.Role)
	return s.issueToken(user)
}

func (s *authService) VerifyToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, NewUnauthenticatedError("invalid or expired token")
	}

	// The token is only a pointer; the persisted record is authoritative for
	// role and active state.
	user, err := s.repo.User().GetByID(ctx, claims.UserID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewUnauthenticatedError("user no longer exists")
		}
		return nil, NewInternalError("failed to look up user", err)
	}

	if !user.IsActive {
		return nil, NewForbiddenError("account is deactivated")
	}

	return user, nil
}

func (s *authService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("user")
		}
		return nil, NewInternalError("failed to get user", err)
	}
	return user, nil
}

func (s *authService) issueToken(user *models.User) (*AuthResponse, error) {
	token, expiresAt, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, NewInternalError("failed to issue token", err)
	}
	return &AuthResponse{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *authService) publish(ctx context.Context, event *events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", "event_type", event.Type, "error", err)
	}
}
