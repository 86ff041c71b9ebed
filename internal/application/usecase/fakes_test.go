package usecase

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"clipvault/internal/domain/dto"
	"clipvault/internal/domain/model"
	"clipvault/internal/domain/repository/database"
	"clipvault/internal/infrastructure/blob/fs"
)

// memoryRepo is an in-memory stand-in for the Mongo repository, implementing
// every database interface the usecases depend on.
type memoryRepo struct {
	mu       sync.Mutex
	assets   map[string]model.Asset
	writeErr error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{assets: make(map[string]model.Asset)}
}

func (m *memoryRepo) Write(_ context.Context, asset *model.Asset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.assets[asset.ID] = *asset

	return nil
}

func (m *memoryRepo) GetByID(_ context.Context, id string) (*model.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assets[id]
	if !ok {
		return nil, database.ErrNotFound
	}

	return &a, nil
}

func (m *memoryRepo) GetByBlobRef(_ context.Context, kind model.Kind, ref string) (*model.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.assets {
		if a.Kind == kind && a.BlobRef == ref {
			out := a

			return &out, nil
		}
	}

	return nil, database.ErrNotFound
}

func (m *memoryRepo) ListByOwner(_ context.Context, kind model.Kind, ownerID string,
	status model.Status,
) ([]model.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Asset
	for _, a := range m.assets {
		if a.Kind != kind || a.OwnerID != ownerID {
			continue
		}
		if status != model.StatusAny && a.Status != status {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	return out, nil
}

func (m *memoryRepo) ApplyPatch(_ context.Context, id string, patch dto.AssetPatch) (*model.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assets[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	if patch.Title != nil {
		a.Title = *patch.Title
	}
	if patch.Description != nil {
		a.Description = *patch.Description
	}
	if patch.IsPublic != nil {
		a.IsPublic = *patch.IsPublic
	}
	m.assets[id] = a

	return &a, nil
}

func (m *memoryRepo) SetStatus(_ context.Context, id string, status model.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assets[id]
	if !ok {
		return database.ErrNotFound
	}
	a.Status = status
	m.assets[id] = a

	return nil
}

func (m *memoryRepo) SetBlobRef(_ context.Context, id, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assets[id]
	if !ok {
		return database.ErrNotFound
	}
	a.BlobRef = ref
	m.assets[id] = a

	return nil
}

func (m *memoryRepo) IncrementViews(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assets[id]
	if !ok {
		return database.ErrNotFound
	}
	a.ViewCount++
	m.assets[id] = a

	return nil
}

func (m *memoryRepo) RemoveByID(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.assets[id]; !ok {
		return database.ErrNotFound
	}
	delete(m.assets, id)

	return nil
}

func (m *memoryRepo) put(asset model.Asset) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets[asset.ID] = asset
}

func (m *memoryRepo) get(t *testing.T, id string) model.Asset {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assets[id]
	require.True(t, ok, "asset %s not in repo", id)

	return a
}

type fakePublisher struct {
	mu        sync.Mutex
	published []string
	err       error
}

func (p *fakePublisher) Publish(_ context.Context, message string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, message)

	return nil
}

func newTestStore(t *testing.T) *fs.Store {
	t.Helper()

	return newTestStoreAt(t, t.TempDir())
}

func newTestStoreAt(t *testing.T, root string) *fs.Store {
	t.Helper()
	store, err := fs.New(fs.Config{Root: root})
	require.NoError(t, err)

	return store
}
