package repository

import (
	"context"
	"time"

	"sazonpos/entity"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(ctx context.Context, s *entity.Session) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

// FindActive loads a session that has not reached its expiry at now.
func (r *SessionRepository) FindActive(ctx context.Context, id string, now time.Time) (*entity.Session, error) {
	var s entity.Session
	err := r.DB.WithContext(ctx).
		Where("id = ? AND expires_at > ?", id, now).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Where("id = ?", id).Delete(&entity.Session{}).Error
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).Where("expires_at <= ?", now).Delete(&entity.Session{})
	return res.RowsAffected, res.Error
}
