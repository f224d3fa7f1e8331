package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"guestbook/internal/cache"
	"guestbook/internal/model"
	"guestbook/internal/repository"
	"guestbook/internal/storage"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("entry not found")
	ErrValidation = errors.New("name and entry are required")
)

const (
	defaultListLimit = 100
	exportURLExpiry  = 15 * time.Minute
)

// EntryListResult is the service-level DTO for paginated entries.
// The "entries" key matches the original guestbook response contract.
type EntryListResult struct {
	Items []model.Entry `json:"entries"`
	Total int           `json:"total"`
}

// ExportResult describes a guestbook snapshot written to object storage.
type ExportResult struct {
	Key   string `json:"key"`
	URL   string `json:"url"`
	Count int    `json:"count"`
}

// EntryService defines the use cases for handling guestbook entries.
type EntryService interface {
	// Create validates and stores a new entry, then invalidates the listing cache.
	Create(ctx context.Context, name, text string) (*model.Entry, error)

	// List returns entries using limit/offset and a total count, cache-aside.
	List(ctx context.Context, limit, offset int) (*EntryListResult, error)

	// Get returns a single entry by its ID.
	Get(ctx context.Context, id string) (*model.Entry, error)

	// Delete removes an entry by ID. Missing rows are not an error.
	Delete(ctx context.Context, id string) error

	// Export writes a JSON snapshot of all entries to object storage and
	// returns a presigned download URL.
	Export(ctx context.Context) (*ExportResult, error)
}

// entryService is a concrete implementation of EntryService.
type entryService struct {
	repo  repository.EntryRepository
	cache cache.EntryCache
	store storage.Storage
}

// NewEntryService constructs a new EntryService.
// cache and store may be nil; caching and exports are then disabled.
func NewEntryService(repo repository.EntryRepository, c cache.EntryCache, store storage.Storage) EntryService {
	return &entryService{repo: repo, cache: c, store: store}
}

func (s *entryService) Create(ctx context.Context, name, text string) (*model.Entry, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(text) == "" {
		return nil, ErrValidation
	}

	e := &model.Entry{
		ID:        uuid.New().String(),
		Name:      name,
		Entry:     text,
		CreatedAt: time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	s.invalidateCache(ctx)
	return stored, nil
}

// List returns paginated entries without exposing repository types.
// Cache errors fall through to the database.
func (s *entryService) List(ctx context.Context, limit, offset int) (*EntryListResult, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	if s.cache != nil {
		if page, err := s.cache.GetPage(ctx, limit, offset); err == nil {
			return &EntryListResult{Items: page.Items, Total: page.Total}, nil
		}
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetPage(ctx, limit, offset, res)
	}

	return &EntryListResult{Items: res.Items, Total: res.Total}, nil
}

// Get returns an entry by ID.
func (s *entryService) Get(ctx context.Context, id string) (*model.Entry, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// Delete removes an entry and invalidates the listing cache. The repository
// treats missing rows as success, preserving the original delete contract.
func (s *entryService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// exportSnapshot is the JSON document written to object storage.
type exportSnapshot struct {
	ExportedAt time.Time     `json:"exported_at"`
	Count      int           `json:"count"`
	Entries    []model.Entry `json:"entries"`
}

func (s *entryService) Export(ctx context.Context) (*ExportResult, error) {
	if s.store == nil {
		return nil, errors.New("object storage is not configured")
	}

	entries, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	snap := exportSnapshot{
		ExportedAt: time.Now().UTC(),
		Count:      len(entries),
		Entries:    entries,
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}

	key := "exports/" + uuid.New().String() + ".json"
	if _, err := s.store.Put(ctx, key, bytes.NewReader(data), storage.PutObjectOptions{
		Size:        int64(len(data)),
		ContentType: "application/json",
	}); err != nil {
		return nil, fmt.Errorf("upload snapshot: %w", err)
	}

	u, err := s.store.PresignGet(ctx, key, exportURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign snapshot: %w", err)
	}

	return &ExportResult{Key: key, URL: u, Count: len(entries)}, nil
}

func (s *entryService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	// Best effort: a failed invalidation only delays freshness by the TTL.
	_ = s.cache.Invalidate(ctx)
}
