package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"diarium/internal/cache"
	"diarium/internal/errors"
	"diarium/internal/model"
	"diarium/internal/repository"
)

const listCacheTTL = 5 * time.Minute

// DiaryService handles diary entry operations. Every operation is
// scoped to the resolved owner: an entry that exists but belongs to
// someone else is reported as not found.
type DiaryService interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]model.DiaryEntry, error)
	Get(ctx context.Context, id, ownerID uuid.UUID) (*model.DiaryEntry, error)
	Create(ctx context.Context, ownerID uuid.UUID, title, content string) (*model.DiaryEntry, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, title, content string) (*model.DiaryEntry, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

type diaryService struct {
	repo  repository.DiaryRepository
	cache *cache.Client
}

// NewDiaryService creates a new diary service.
func NewDiaryService(repo repository.DiaryRepository, cache *cache.Client) DiaryService {
	return &diaryService{
		repo:  repo,
		cache: cache,
	}
}

func (s *diaryService) listCacheKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("diary:list:%s", ownerID.String())
}

// List returns the owner's entries, most recent first, with caching.
func (s *diaryService) List(ctx context.Context, ownerID uuid.UUID) ([]model.DiaryEntry, error) {
	// Try cache first
	if data, _ := s.cache.Get(ctx, s.listCacheKey(ownerID)); data != nil {
		var cached []model.DiaryEntry
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	entries, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	if payload, err := json.Marshal(entries); err == nil {
		_ = s.cache.Set(ctx, s.listCacheKey(ownerID), payload, listCacheTTL)
	}

	return entries, nil
}

// Get returns a single owned entry.
func (s *diaryService) Get(ctx context.Context, id, ownerID uuid.UUID) (*model.DiaryEntry, error) {
	entry, err := s.repo.FindOwned(ctx, id, ownerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrEntryNotFound
		}
		return nil, fmt.Errorf("find entry: %w", err)
	}
	return entry, nil
}

// Create validates and persists a new entry owned by ownerID.
func (s *diaryService) Create(ctx context.Context, ownerID uuid.UUID, title, content string) (*model.DiaryEntry, error) {
	title, content, err := validateEntryFields(title, content)
	if err != nil {
		return nil, err
	}

	entry := &model.DiaryEntry{
		Title:   title,
		Content: content,
		OwnerID: ownerID,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}

	_ = s.cache.Delete(ctx, s.listCacheKey(ownerID))
	return entry, nil
}

// Update validates and rewrites the title and content of an owned
// entry. The owner reference is never touched.
func (s *diaryService) Update(ctx context.Context, id, ownerID uuid.UUID, title, content string) (*model.DiaryEntry, error) {
	title, content, err := validateEntryFields(title, content)
	if err != nil {
		return nil, err
	}

	entry, err := s.repo.FindOwned(ctx, id, ownerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrEntryNotFound
		}
		return nil, fmt.Errorf("find entry: %w", err)
	}

	entry.Title = title
	entry.Content = content
	if err := s.repo.Save(ctx, entry); err != nil {
		return nil, fmt.Errorf("save entry: %w", err)
	}

	_ = s.cache.Delete(ctx, s.listCacheKey(ownerID))
	return entry, nil
}

// Delete removes an owned entry.
func (s *diaryService) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	deleted, err := s.repo.DeleteOwned(ctx, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if !deleted {
		return errors.ErrEntryNotFound
	}

	_ = s.cache.Delete(ctx, s.listCacheKey(ownerID))
	return nil
}

// validateEntryFields trims both fields and enforces the non-empty and
// max-length rules shared by create and update.
func validateEntryFields(title, content string) (string, string, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)

	if title == "" || content == "" {
		return "", "", errors.NewValidationError("Title and content are required")
	}
	if len(title) > model.TitleMaxLen {
		return "", "", errors.NewValidationError(fmt.Sprintf("Title must be at most %d characters", model.TitleMaxLen))
	}
	if len(content) > model.ContentMaxLen {
		return "", "", errors.NewValidationError(fmt.Sprintf("Content must be at most %d characters", model.ContentMaxLen))
	}
	return title, content, nil
}
