/**
 * @description
 * Service layer for the listings dataset.
 * Resolves the raw source (active snapshot -> bundled file -> synthetic
 * sample), runs the cleaning pipeline, and memoizes the cleaned result in
 * Redis under an explicit fingerprint of (source identity, source version).
 *
 * @dependencies
 * - backend/internal/dataset
 * - backend/internal/serpapi
 * - backend/internal/models
 * - github.com/redis/go-redis/v9
 *
 * @notes
 * - Source resolution never hard-fails: each unavailable source falls
 *   through to the next, ending at the deterministic sample table.
 * - The cache is an explicit collaborator; the pipeline stays a pure
 *   function and is always safe to recompute on a cache miss or error.
 */

package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/staylens/backend/internal/dataset"
	"github.com/staylens/backend/internal/logger"
	"github.com/staylens/backend/internal/models"
	"github.com/staylens/backend/internal/serpapi"
)

const (
	CacheKeyCleanPrefix = "dataset:clean:"
	ActiveSnapshotKey   = "dataset:active_snapshot"

	DefaultCacheTTL = 5 * time.Minute
)

// Source kinds reported alongside a cleaned dataset.
const (
	SourceSnapshot = "snapshot"
	SourceFile     = "file"
	SourceSample   = "sample"
)

// SourceInfo describes where the served dataset came from.
type SourceInfo struct {
	Kind        string    `json:"kind"`
	Detail      string    `json:"detail"`
	Fingerprint string    `json:"fingerprint"`
	FetchedAt   time.Time `json:"fetched_at,omitempty"`
}

type DatasetService struct {
	Redis   *redis.Client
	Store   *SnapshotStore
	SerpAPI *serpapi.Client

	FilePath string
	Options  dataset.Options
	CacheTTL time.Duration
}

func NewDatasetService(rdb *redis.Client, store *SnapshotStore, client *serpapi.Client, filePath string, opts dataset.Options, ttl time.Duration) *DatasetService {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &DatasetService{
		Redis:    rdb,
		Store:    store,
		SerpAPI:  client,
		FilePath: filePath,
		Options:  opts,
		CacheTTL: ttl,
	}
}

// Current returns the cleaned dataset for the currently resolved source.
// It never returns a hard failure: the worst case is the cleaned sample set.
func (s *DatasetService) Current(ctx context.Context) (dataset.Result, SourceInfo) {
	raw, info := s.resolveRaw(ctx)

	if cached, ok := s.cachedResult(ctx, info.Fingerprint); ok {
		return cached, info
	}

	res := dataset.Run(raw, s.Options)
	s.cacheResult(ctx, info.Fingerprint, res)
	return res, info
}

// resolveRaw walks the source precedence chain.
func (s *DatasetService) resolveRaw(ctx context.Context) (*dataset.Table, SourceInfo) {
	if raw, info, ok := s.rawFromSnapshot(ctx); ok {
		return raw, info
	}
	if raw, info, ok := s.rawFromFile(); ok {
		return raw, info
	}
	return dataset.SampleTable(), SourceInfo{
		Kind:        SourceSample,
		Detail:      "deterministic 500-row sample",
		Fingerprint: fingerprint("sample:v1"),
	}
}

func (s *DatasetService) rawFromSnapshot(ctx context.Context) (*dataset.Table, SourceInfo, bool) {
	if s.Redis == nil || s.Store == nil {
		return nil, SourceInfo{}, false
	}
	idStr, err := s.Redis.Get(ctx, ActiveSnapshotKey).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Error("Failed to read active snapshot pointer: %v", err)
		}
		return nil, SourceInfo{}, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		logger.Error("Invalid active snapshot id %q: %v", idStr, err)
		return nil, SourceInfo{}, false
	}
	snap, err := s.Store.Get(ctx, id)
	if err != nil {
		logger.Error("Failed to load snapshot %s: %v", id, err)
		return nil, SourceInfo{}, false
	}
	var t dataset.Table
	if err := json.Unmarshal(snap.Payload, &t); err != nil {
		logger.Error("Failed to decode snapshot %s payload: %v", id, err)
		return nil, SourceInfo{}, false
	}
	return &t, SourceInfo{
		Kind:        SourceSnapshot,
		Detail:      snap.Location,
		Fingerprint: fingerprint(fmt.Sprintf("snapshot:%s:%d", snap.ID, snap.FetchedAt.UnixNano())),
		FetchedAt:   snap.FetchedAt,
	}, true
}

func (s *DatasetService) rawFromFile() (*dataset.Table, SourceInfo, bool) {
	if s.FilePath == "" {
		return nil, SourceInfo{}, false
	}
	stat, err := os.Stat(s.FilePath)
	if err != nil {
		return nil, SourceInfo{}, false
	}
	raw, err := dataset.LoadFile(s.FilePath)
	if err != nil {
		logger.Error("Failed to read bundled dataset %s: %v", s.FilePath, err)
		return nil, SourceInfo{}, false
	}
	return raw, SourceInfo{
		Kind:        SourceFile,
		Detail:      s.FilePath,
		Fingerprint: fingerprint(fmt.Sprintf("file:%s:%d", s.FilePath, stat.ModTime().UnixNano())),
		FetchedAt:   stat.ModTime(),
	}, true
}

// FetchAndStore runs a live search, persists the raw result as a snapshot,
// and activates it. Unlike the pipeline, fetch errors are surfaced.
func (s *DatasetService) FetchAndStore(ctx context.Context, params serpapi.SearchParams) (*models.DatasetSnapshot, error) {
	if s.SerpAPI == nil {
		return nil, fmt.Errorf("live fetching is not configured")
	}
	raw, err := s.SerpAPI.FetchHotels(ctx, params)
	if err != nil {
		return nil, err
	}
	if raw.NumRows() == 0 {
		return nil, fmt.Errorf("no hotels found in %s for the given dates", params.Location)
	}
	return s.storeAndActivate(ctx, raw, models.SnapshotSourceLiveAPI, params.Location, params.Currency)
}

// StoreUpload persists an uploaded raw table as a snapshot and activates it.
func (s *DatasetService) StoreUpload(ctx context.Context, raw *dataset.Table, label string) (*models.DatasetSnapshot, error) {
	if raw == nil || raw.NumRows() == 0 {
		return nil, fmt.Errorf("uploaded dataset is empty")
	}
	return s.storeAndActivate(ctx, raw, models.SnapshotSourceUpload, label, "")
}

func (s *DatasetService) storeAndActivate(ctx context.Context, raw *dataset.Table, source, location, currency string) (*models.DatasetSnapshot, error) {
	if s.Store == nil {
		return nil, fmt.Errorf("snapshot storage is not configured")
	}
	payload, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot payload: %w", err)
	}
	snap := &models.DatasetSnapshot{
		Source:    source,
		Location:  location,
		Currency:  currency,
		RowCount:  raw.NumRows(),
		FetchedAt: time.Now(),
		Payload:   payload,
	}
	if err := s.Store.Save(ctx, snap); err != nil {
		return nil, err
	}
	if err := s.Activate(ctx, snap.ID); err != nil {
		return nil, err
	}
	return snap, nil
}

// Activate points the dashboard at a stored snapshot.
func (s *DatasetService) Activate(ctx context.Context, id uuid.UUID) error {
	if s.Redis == nil {
		return fmt.Errorf("redis is not configured")
	}
	if s.Store != nil {
		if _, err := s.Store.Get(ctx, id); err != nil {
			return fmt.Errorf("snapshot %s not found: %w", id, err)
		}
	}
	return s.Redis.Set(ctx, ActiveSnapshotKey, id.String(), 0).Err()
}

// Deactivate clears the snapshot pointer, falling back to file/sample data.
func (s *DatasetService) Deactivate(ctx context.Context) error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Del(ctx, ActiveSnapshotKey).Err()
}

func (s *DatasetService) cachedResult(ctx context.Context, fp string) (dataset.Result, bool) {
	if s.Redis == nil {
		return dataset.Result{}, false
	}
	data, err := s.Redis.Get(ctx, CacheKeyCleanPrefix+fp).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Error("Dataset cache read failed: %v", err)
		}
		return dataset.Result{}, false
	}
	var res dataset.Result
	if err := json.Unmarshal(data, &res); err != nil {
		logger.Error("Dataset cache decode failed: %v", err)
		return dataset.Result{}, false
	}
	return res, true
}

func (s *DatasetService) cacheResult(ctx context.Context, fp string, res dataset.Result) {
	if s.Redis == nil {
		return
	}
	data, err := json.Marshal(res)
	if err != nil {
		logger.Error("Failed to marshal cleaned dataset for cache: %v", err)
		return
	}
	if err := s.Redis.Set(ctx, CacheKeyCleanPrefix+fp, data, s.CacheTTL).Err(); err != nil {
		logger.Error("Dataset cache write failed: %v", err)
	}
}

func fingerprint(identity string) string {
	sum := sha256.Sum256([]byte(identity))
	return hex.EncodeToString(sum[:])
}
