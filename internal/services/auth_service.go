package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/veinsight/portal-backend/internal/config"
	"github.com/veinsight/portal-backend/internal/dto"
	"github.com/veinsight/portal-backend/internal/identity"
	"github.com/veinsight/portal-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrMissingField       = errors.New("missing required field")
	ErrInvalidRole        = errors.New("role must be doctor, patient or nurse")
)

// AuthService owns credentials, token issuance and the sign-up orchestration
// that writes the user, role and profile rows.
type AuthService struct {
	db    *gorm.DB
	cfg   *config.Config
	bus   *SessionBus
	roles *RoleDirectory
}

func NewAuthService(db *gorm.DB, cfg *config.Config, bus *SessionBus, roles *RoleDirectory) *AuthService {
	return &AuthService{db: db, cfg: cfg, bus: bus, roles: roles}
}

// Register creates the account. The user row is committed first; the role and
// profile rows follow outside any transaction. A failure after the user write
// returns the error but keeps the user, so the account exists in a roleless
// state that the access guard denies without treating it as signed out.
// Register never signs the user in.
func (s *AuthService) Register(ctx context.Context, p identity.SignUpParams) (uuid.UUID, error) {
	p.Email = strings.TrimSpace(strings.ToLower(p.Email))
	if p.Email == "" || p.FullName == "" {
		return uuid.Nil, ErrMissingField
	}
	if len(p.Password) < 6 {
		return uuid.Nil, ErrWeakPassword
	}
	if !p.Role.Valid() {
		return uuid.Nil, ErrInvalidRole
	}

	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", p.Email).First(&existing).Error; err == nil {
		return uuid.Nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, fmt.Errorf("email lookup: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{ID: uuid.New(), Email: p.Email, Password: string(hashed)}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}

	role := models.UserRole{ID: uuid.New(), UserID: user.ID, Role: p.Role.String()}
	if err := s.db.WithContext(ctx).Create(&role).Error; err != nil {
		slog.Error("role write failed after user creation", "user_id", user.ID, "error", err)
		return user.ID, fmt.Errorf("failed to assign role: %w", err)
	}

	profile := models.Profile{
		ID:        uuid.New(),
		UserID:    user.ID,
		FullName:  p.FullName,
		Email:     p.Email,
		Specialty: p.Specialty,
	}
	if err := s.db.WithContext(ctx).Create(&profile).Error; err != nil {
		slog.Error("profile write failed after user creation", "user_id", user.ID, "error", err)
		return user.ID, fmt.Errorf("failed to create profile: %w", err)
	}

	return user.ID, nil
}

// Login verifies credentials, issues a token pair and announces the new
// session to any resolver subscribed to this user.
func (s *AuthService) Login(ctx context.Context, email, password string) (*dto.AuthResponse, *identity.Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	resp, sess, err := s.generateTokenPair(ctx, &user)
	if err != nil {
		return nil, nil, err
	}
	s.bus.Publish(user.ID, sess)
	return resp, sess, nil
}

// Refresh rotates the refresh token: the presented token is revoked and a new
// pair is issued. A revoked or expired token fails with ErrInvalidToken.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	hash := hashToken(refreshToken)

	var stored models.RefreshToken
	if err := s.db.WithContext(ctx).Where("token_hash = ? AND revoked = false", hash).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, ErrInvalidToken
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", stored.UserID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	if err := s.db.WithContext(ctx).Model(&stored).Update("revoked", true).Error; err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	resp, sess, err := s.generateTokenPair(ctx, &user)
	if err != nil {
		return nil, err
	}
	s.bus.Publish(user.ID, sess)
	return resp, nil
}

// Logout revokes the presented refresh token and announces sign-out. An
// already revoked or unknown token is a no-op, so logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	hash := hashToken(refreshToken)

	var stored models.RefreshToken
	if err := s.db.WithContext(ctx).Where("token_hash = ?", hash).First(&stored).Error; err != nil {
		return nil
	}
	if !stored.Revoked {
		if err := s.db.WithContext(ctx).Model(&stored).Update("revoked", true).Error; err != nil {
			return fmt.Errorf("failed to revoke refresh token: %w", err)
		}
	}
	s.bus.Publish(stored.UserID, nil)
	return nil
}

// SignOutAll revokes every live refresh token for the user and announces
// sign-out. Calling it with no live tokens is a no-op.
func (s *AuthService) SignOutAll(ctx context.Context, userID uuid.UUID) error {
	if err := s.db.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked = false", userID).
		Update("revoked", true).Error; err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	s.bus.Publish(userID, nil)
	return nil
}

// DeleteAccount removes the user and every row keyed to them after verifying
// the password. Unlike sign-up, deletion is transactional.
func (s *AuthService) DeleteAccount(ctx context.Context, userID uuid.UUID, password string) error {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserRole{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Profile{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&user).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	s.roles.Invalidate(ctx, userID)
	s.bus.Publish(userID, nil)
	return nil
}

func (s *AuthService) generateTokenPair(ctx context.Context, user *models.User) (*dto.AuthResponse, *identity.Session, error) {
	refreshRaw, err := randomToken()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(refreshRaw),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	expiresAt := time.Now().Add(s.cfg.JWTAccessExpiry)
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"jti":   record.ID.String(),
		"iat":   time.Now().Unix(),
		"exp":   expiresAt.Unix(),
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	resp := &dto.AuthResponse{
		AccessToken:  access,
		RefreshToken: refreshRaw,
		User:         dto.UserResponse{ID: user.ID, Email: user.Email},
	}
	sess := &identity.Session{
		ID:        record.ID.String(),
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: expiresAt,
	}
	return resp, sess, nil
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
