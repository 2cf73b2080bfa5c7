package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"diarium/internal/model"
)

// DiaryRepository defines diary entry persistence operations. Every
// read and mutation of an existing entry goes through the owner scope,
// so an entry owned by someone else behaves exactly like a missing one.
type DiaryRepository interface {
	Create(ctx context.Context, entry *model.DiaryEntry) error
	Save(ctx context.Context, entry *model.DiaryEntry) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.DiaryEntry, error)
	FindOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.DiaryEntry, error)
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (bool, error)
}

type diaryRepository struct {
	db *gorm.DB
}

// NewDiaryRepository creates a new diary repository.
func NewDiaryRepository(db *gorm.DB) DiaryRepository {
	return &diaryRepository{db: db}
}

// scopedToOwner is the single ownership filter applied to every
// by-id operation.
func scopedToOwner(id, ownerID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ? AND owner_id = ?", id, ownerID)
	}
}

// Create creates a new entry.
func (r *diaryRepository) Create(ctx context.Context, entry *model.DiaryEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// Save persists changes to an existing entry.
func (r *diaryRepository) Save(ctx context.Context, entry *model.DiaryEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// ListByOwner returns all entries of the owner, most recent first.
func (r *diaryRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.DiaryEntry, error) {
	var entries []model.DiaryEntry
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindOwned finds an entry by ID only if it belongs to the owner.
func (r *diaryRepository) FindOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.DiaryEntry, error) {
	var entry model.DiaryEntry
	if err := r.db.WithContext(ctx).
		Scopes(scopedToOwner(id, ownerID)).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteOwned deletes an entry by ID only if it belongs to the owner.
// The bool reports whether a row was actually deleted.
func (r *diaryRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Scopes(scopedToOwner(id, ownerID)).
		Delete(&model.DiaryEntry{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
