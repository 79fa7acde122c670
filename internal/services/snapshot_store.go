/**
 * @description
 * Persistence layer for raw dataset snapshots.
 * Stores every fetched or uploaded raw table in Postgres so a dashboard
 * restart (or another replica) can keep serving the same data.
 *
 * @dependencies
 * - gorm.io/gorm
 * - github.com/jackc/pgconn: Postgres error classification for retries
 * - backend/internal/models
 */

package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/staylens/backend/internal/models"
	"gorm.io/gorm"
)

const snapshotWriteRetries = 5

type SnapshotStore struct {
	DB *gorm.DB
}

func NewSnapshotStore(db *gorm.DB) *SnapshotStore {
	return &SnapshotStore{DB: db}
}

// Migrate creates the snapshots table.
func (s *SnapshotStore) Migrate() error {
	return s.DB.AutoMigrate(&models.DatasetSnapshot{})
}

// Save persists a snapshot, retrying on transient Postgres conflicts
// (deadlock 40P01, serialization failure 40001).
func (s *SnapshotStore) Save(ctx context.Context, snap *models.DatasetSnapshot) error {
	if snap.ID == uuid.Nil {
		snap.ID = uuid.New()
	}
	if snap.FetchedAt.IsZero() {
		snap.FetchedAt = time.Now()
	}

	var err error
	for attempt := 1; attempt <= snapshotWriteRetries; attempt++ {
		err = s.DB.WithContext(ctx).Create(snap).Error
		if err == nil {
			return nil
		}
		if pgErr, ok := err.(*pgconn.PgError); ok && (pgErr.Code == "40P01" || pgErr.Code == "40001") {
			backoff := time.Duration(attempt*100+rand.Intn(100)) * time.Millisecond
			time.Sleep(backoff)
			continue
		}
		break
	}
	return fmt.Errorf("failed to persist dataset snapshot: %w", err)
}

// Get loads one snapshot with its payload.
func (s *SnapshotStore) Get(ctx context.Context, id uuid.UUID) (*models.DatasetSnapshot, error) {
	var snap models.DatasetSnapshot
	if err := s.DB.WithContext(ctx).First(&snap, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &snap, nil
}

// List returns snapshot metadata (payloads omitted), newest first.
func (s *SnapshotStore) List(ctx context.Context) ([]models.DatasetSnapshot, error) {
	var snaps []models.DatasetSnapshot
	err := s.DB.WithContext(ctx).
		Select("id", "source", "location", "currency", "row_count", "fetched_at", "created_at", "updated_at").
		Order("fetched_at DESC").
		Find(&snaps).Error
	if err != nil {
		return nil, err
	}
	return snaps, nil
}

// Delete removes one snapshot.
func (s *SnapshotStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Delete(&models.DatasetSnapshot{}, "id = ?", id).Error
}
