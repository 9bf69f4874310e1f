package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"conferencecentral/internal/domain"
)

const (
	bcryptCost     = 10
	minPasswordLen = 8
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// AuthService implements domain.AuthService and domain.TokenVerifier.
type AuthService struct {
	profileRepo domain.ProfileRepository
	jwtSecret   []byte
	jwtExpiry   time.Duration
}

// NewAuthService creates an AuthService with the given profile repository and
// JWT config. The returned service also implements domain.TokenVerifier.
func NewAuthService(profileRepo domain.ProfileRepository, jwtSecret string, jwtExpiry time.Duration) *AuthService {
	return &AuthService{
		profileRepo: profileRepo,
		jwtSecret:   []byte(jwtSecret),
		jwtExpiry:   jwtExpiry,
	}
}

var (
	_ domain.AuthService   = (*AuthService)(nil)
	_ domain.TokenVerifier = (*AuthService)(nil)
)

func (s *AuthService) SignUp(ctx context.Context, email, password, displayName string) (*domain.Profile, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}

	if _, err := s.profileRepo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already in use", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get profile by email: %w", err)
	}

	saltBytes := make([]byte, 32)
	if _, err := rand.Read(saltBytes); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	salt := hex.EncodeToString(saltBytes)

	hash, err := bcrypt.GenerateFromPassword(saltedDigest(salt, password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if displayName == "" {
		// Fall back to the mailbox name, matching first-access profile creation.
		displayName = strings.SplitN(email, "@", 2)[0]
	}

	now := time.Now()
	profile := domain.NewProfile(email, strings.TrimSpace(displayName), now, now)
	profile.PasswordHash = string(hash)
	profile.Salt = salt
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return profile, nil
}

// saltedDigest pre-hashes the salted password so bcrypt's 72-byte input
// limit never truncates it.
func saltedDigest(salt, password string) []byte {
	sum := sha256.Sum256([]byte(salt + password))
	return []byte(hex.EncodeToString(sum[:]))
}

type jwtClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Profile, error) {
	profile, err := s.profileRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return "", nil, fmt.Errorf("%w: invalid credentials", domain.ErrInvalidInput)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), saltedDigest(profile.Salt, password)); err != nil {
		return "", nil, fmt.Errorf("%w: invalid credentials", domain.ErrInvalidInput)
	}

	now := time.Now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profile.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
		},
		Email: profile.Email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, profile, nil
}

// Verify validates an HS256 token and returns the profile ID from its subject.
func (s *AuthService) Verify(tokenString string) (string, error) {
	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("invalid token")
	}
	return claims.Subject, nil
}
