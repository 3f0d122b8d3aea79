package file

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sync"

	"gorm.io/gorm"

	"filecatalog/internal/database"
)

const allPageSize = 256

// gormStore persists records through gorm (PostgreSQL or SQLite).
type gormStore struct {
	db *gorm.DB
	mu sync.Mutex // serializes Put/Delete
}

func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// AutoMigrate creates or updates the file_records table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&FileRecord{})
}

func (s *gormStore) Put(ctx context.Context, rec *FileRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&FileRecord{}).Where("id = ?", rec.ID).Count(&n).Error; err != nil {
			return fmt.Errorf("failed to check file id: %w", err)
		}
		if n > 0 {
			return ErrDuplicateID
		}
		if err := tx.Create(rec).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return ErrDuplicateID
			}
			return fmt.Errorf("failed to save file record: %w", err)
		}
		return nil
	})
}

func (s *gormStore) Get(ctx context.Context, id string) (*FileRecord, error) {
	var rec FileRecord
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load file record: %w", err)
	}
	return &rec, nil
}

func (s *gormStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&FileRecord{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete file record: %w", err)
	}
	return deleted, nil
}

// All reads records ordered by insertion sequence in keyset pages. No
// connection is held while the caller consumes a page.
func (s *gormStore) All(ctx context.Context) iter.Seq2[FileRecord, error] {
	return func(yield func(FileRecord, error) bool) {
		var after int64
		for {
			var page []FileRecord
			err := s.db.WithContext(ctx).
				Where("seq > ?", after).
				Order("seq ASC").
				Limit(allPageSize).
				Find(&page).Error
			if err != nil {
				yield(FileRecord{}, fmt.Errorf("failed to query file records: %w", err))
				return
			}

			for _, rec := range page {
				if !yield(rec, nil) {
					return
				}
			}
			if len(page) < allPageSize {
				return
			}
			after = page[len(page)-1].Seq
		}
	}
}
