package diseases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("disease not found")

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns library entries, optionally filtered by category or a
// case-insensitive name search.
func (s *Service) List(ctx context.Context, category, search string) ([]Disease, error) {
	q := s.db.WithContext(ctx).Model(&Disease{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}

	var entries []Disease
	err := q.Order("name ASC").Find(&entries).Error
	return entries, err
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Disease, error) {
	var entry Disease
	if err := s.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}
