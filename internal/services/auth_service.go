package services

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"stockroom/internal/models"
	"stockroom/internal/repositories"
)

// TokenPair is an issued access/refresh token pair.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AuthService handles credential checks and JWT issuance/validation. Tokens
// are HS256 with a jti claim so logout can revoke them through the denylist.
type AuthService struct {
	userRepo        repositories.UserRepository
	tokenRepo       repositories.TokenRepository
	jwtSecret       []byte
	accessDuration  time.Duration
	refreshDuration time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, tokenRepo repositories.TokenRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		tokenRepo:       tokenRepo,
		jwtSecret:       []byte(jwtSecret),
		accessDuration:  24 * time.Hour,
		refreshDuration: 7 * 24 * time.Hour,
	}
}

// RegisterUser registers a new user, hashing their password before storage.
func (s *AuthService) RegisterUser(user *models.User) error {
	if existing, err := s.userRepo.GetByUsername(user.Username); err == nil && existing != nil {
		return NewValidationError("username", fmt.Sprintf("username %q already taken", user.Username))
	}
	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return NewValidationError("email", fmt.Sprintf("email %q already registered", user.Email))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// Authenticate checks a username/password pair and returns the matching user.
func (s *AuthService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates the user and issues a fresh token pair.
func (s *AuthService) Login(username, password string) (*models.User, *TokenPair, error) {
	user, err := s.Authenticate(username, password)
	if err != nil {
		return nil, nil, err
	}
	pair, err := s.GenerateTokenPair(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// GenerateTokenPair issues an access and a refresh token for the user.
func (s *AuthService) GenerateTokenPair(user *models.User) (*TokenPair, error) {
	access, err := s.signToken(user, "access", s.accessDuration)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(user, "refresh", s.refreshDuration)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *AuthService) signToken(user *models.User, typ string, duration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"is_staff": user.IsStaff,
		"typ":      typ,
		"jti":      uuid.New().String(),
		"exp":      now.Add(duration).Unix(),
		"iat":      now.Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", typ, err)
	}
	return signed, nil
}

// ValidateAccessToken parses an access token and returns its claims. Revoked
// and refresh-typed tokens are rejected.
func (s *AuthService) ValidateAccessToken(tokenString string) (jwt.MapClaims, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, err
	}
	if typ, _ := claims["typ"].(string); typ != "access" {
		return nil, fmt.Errorf("%w: not an access token", ErrInvalidToken)
	}
	return claims, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	claims, err := s.parse(refreshToken)
	if err != nil {
		return "", err
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return "", fmt.Errorf("%w: not a refresh token", ErrInvalidToken)
	}
	userID, _ := claims["user_id"].(string)
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return "", fmt.Errorf("%w: unknown user", ErrInvalidToken)
	}
	return s.signToken(user, "access", s.accessDuration)
}

// Verify reports whether a token of either type is currently valid.
func (s *AuthService) Verify(tokenString string) error {
	_, err := s.parse(tokenString)
	return err
}

// Logout revokes the presented token by putting its jti on the denylist until
// the token would have expired on its own.
func (s *AuthService) Logout(tokenString string) error {
	claims, err := s.parse(tokenString)
	if err != nil {
		return err
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return fmt.Errorf("%w: missing jti", ErrInvalidToken)
	}
	exp := time.Now().Add(s.refreshDuration)
	if unix, ok := claims["exp"].(float64); ok {
		exp = time.Unix(int64(unix), 0)
	}
	return s.tokenRepo.Revoke(jti, exp)
}

// parse verifies signature, expiry and the denylist.
func (s *AuthService) parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if jti, _ := claims["jti"].(string); jti != "" {
		revoked, err := s.tokenRepo.IsRevoked(jti)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, fmt.Errorf("%w: token has been revoked", ErrInvalidToken)
		}
	}
	return claims, nil
}
