package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/greenhollow/gh-game-core/internal/store/schema"
)

// CursorStore defines the interface for storing and retrieving stream cursors
type CursorStore interface {
	// GetStreamCursor retrieves the last processed sequence number for a stream
	GetStreamCursor(ctx context.Context, stream string) (uint64, error)
	// SetStreamCursor stores the last processed sequence number for a stream
	SetStreamCursor(ctx context.Context, stream string, seq uint64) error
}

type cursorStore struct {
	db *gorm.DB
}

// NewCursorStore creates a new cursor store
func NewCursorStore(db *gorm.DB) CursorStore {
	return &cursorStore{db: db}
}

// GetStreamCursor retrieves the last processed sequence number for a stream
func (s *cursorStore) GetStreamCursor(ctx context.Context, stream string) (uint64, error) {
	key := fmt.Sprintf("stream_cursor:%s", stream)

	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil // Return 0 if no cursor exists
		}
		return 0, fmt.Errorf("failed to get stream cursor: %w", err)
	}

	seq, err := strconv.ParseUint(kv.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse stream cursor: %w", err)
	}

	return seq, nil
}

// SetStreamCursor stores the last processed sequence number for a stream
func (s *cursorStore) SetStreamCursor(ctx context.Context, stream string, seq uint64) error {
	key := fmt.Sprintf("stream_cursor:%s", stream)
	value := strconv.FormatUint(seq, 10)

	kv := schema.KeyValueStore{
		Key:   key,
		Value: value,
	}

	err := s.db.WithContext(ctx).Save(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to set stream cursor: %w", err)
	}

	return nil
}
