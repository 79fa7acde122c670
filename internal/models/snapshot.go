/**
 * @description
 * Dataset snapshot database model.
 * Maps to the 'dataset_snapshots' table in PostgreSQL: one row per raw table
 * captured from a live fetch or an upload. The cleaning pipeline itself owns
 * no persistence; snapshots are the durable raw store it reads from.
 *
 * @dependencies
 * - gorm.io/gorm
 * - github.com/google/uuid
 */

package models

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot source kinds.
const (
	SnapshotSourceLiveAPI = "live_api"
	SnapshotSourceUpload  = "upload"
)

// DatasetSnapshot is one persisted raw listings table plus fetch metadata.
// Payload holds the table's JSON wire form (columns + typed cells).
type DatasetSnapshot struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Source    string    `gorm:"index" json:"source"`
	Location  string    `json:"location"`
	Currency  string    `json:"currency"`
	RowCount  int       `json:"row_count"`
	FetchedAt time.Time `json:"fetched_at"`
	Payload   []byte    `gorm:"type:jsonb" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the default table name
func (DatasetSnapshot) TableName() string {
	return "dataset_snapshots"
}
