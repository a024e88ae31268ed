package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/veinsight/portal-backend/internal/cache"
	"github.com/veinsight/portal-backend/internal/identity"
	"github.com/veinsight/portal-backend/internal/models"
	"gorm.io/gorm"
)

// RoleDirectory resolves a user's role from the user_roles table through a
// cache. Roles are assigned once at sign-up and never change, so cached
// values cannot go stale; the TTL only bounds cache size.
type RoleDirectory struct {
	db    *gorm.DB
	cache cache.Cache
	ttl   time.Duration
}

func NewRoleDirectory(db *gorm.DB, c cache.Cache, ttl time.Duration) *RoleDirectory {
	return &RoleDirectory{db: db, cache: c, ttl: ttl}
}

func (d *RoleDirectory) RoleFor(ctx context.Context, userID uuid.UUID) (identity.Role, error) {
	key := cache.RoleKey(userID.String())
	if cached, err := d.cache.Get(ctx, key); err == nil {
		if role, err := identity.ParseRole(string(cached)); err == nil {
			return role, nil
		}
	}

	var row models.UserRole
	if err := d.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return identity.RoleUnknown, identity.ErrRoleNotAssigned
		}
		return identity.RoleUnknown, fmt.Errorf("role lookup: %w", err)
	}

	// The one place raw role strings are validated before entering the core.
	role, err := identity.ParseRole(row.Role)
	if err != nil {
		return identity.RoleUnknown, fmt.Errorf("role directory returned invalid role: %w", err)
	}

	if err := d.cache.Set(ctx, key, []byte(role.String()), d.ttl); err != nil {
		slog.Warn("role cache set failed", "user_id", userID, "error", err)
	}
	return role, nil
}

// Invalidate drops the cached role, used when the account is deleted.
func (d *RoleDirectory) Invalidate(ctx context.Context, userID uuid.UUID) {
	if err := d.cache.Delete(ctx, cache.RoleKey(userID.String())); err != nil {
		slog.Warn("role cache invalidation failed", "user_id", userID, "error", err)
	}
}

// ProfileDirectory resolves display profiles from the profiles table.
type ProfileDirectory struct {
	db *gorm.DB
}

func NewProfileDirectory(db *gorm.DB) *ProfileDirectory {
	return &ProfileDirectory{db: db}
}

func (d *ProfileDirectory) ProfileFor(ctx context.Context, userID uuid.UUID) (*identity.Profile, error) {
	var row models.Profile
	if err := d.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, identity.ErrProfileNotFound
		}
		return nil, fmt.Errorf("profile lookup: %w", err)
	}

	return &identity.Profile{
		UserID:    row.UserID,
		FullName:  row.FullName,
		Specialty: row.Specialty,
		Phone:     row.Phone,
		AvatarURL: row.AvatarURL,
	}, nil
}
