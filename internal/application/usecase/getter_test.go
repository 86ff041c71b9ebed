package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"clipvault/internal/domain/model"
)

func seedAsset(id, owner string, kind model.Kind, status model.Status, public bool) model.Asset {
	return model.Asset{
		ID:        id,
		Kind:      kind,
		OwnerID:   owner,
		Title:     "Seeded",
		BlobRef:   id + ".mp4",
		IsPublic:  public,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
}

func TestGetPrivateVideoCountsView(t *testing.T) {
	t.Parallel()
	repo := newMemoryRepo()
	repo.put(seedAsset("v1", "alice", model.KindVideo, model.StatusReady, false))
	getter := NewGetter(repo, repo)

	asset, status, err := getter.Get(context.Background(), "alice", "v1", model.KindVideo)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, int64(1), asset.ViewCount)

	asset, _, err = getter.Get(context.Background(), "alice", "v1", model.KindVideo)
	require.NoError(t, err)
	require.Equal(t, int64(2), asset.ViewCount)
}

func TestGetPublicVideoDoesNotCountView(t *testing.T) {
	t.Parallel()
	repo := newMemoryRepo()
	repo.put(seedAsset("v1", "alice", model.KindVideo, model.StatusReady, true))
	getter := NewGetter(repo, repo)

	asset, status, err := getter.Get(context.Background(), "bob", "v1", model.KindVideo)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	require.Zero(t, asset.ViewCount)
	require.Zero(t, repo.get(t, "v1").ViewCount)
}

func TestGetPrivateVideoDeniedForStranger(t *testing.T) {
	t.Parallel()
	repo := newMemoryRepo()
	repo.put(seedAsset("v1", "alice", model.KindVideo, model.StatusReady, false))
	getter := NewGetter(repo, repo)

	_, status, err := getter.Get(context.Background(), "bob", "v1", model.KindVideo)
	require.ErrorIs(t, err, ErrAccessDenied)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Zero(t, repo.get(t, "v1").ViewCount)
}

func TestGetUnknownAsset(t *testing.T) {
	t.Parallel()
	getter := NewGetter(newMemoryRepo(), newMemoryRepo())

	_, status, err := getter.Get(context.Background(), "alice", "missing", model.KindVideo)
	require.ErrorIs(t, err, ErrAssetNotFound)
	require.Equal(t, http.StatusNotFound, status)
}

func TestGetKindMismatchIsNotFound(t *testing.T) {
	t.Parallel()
	repo := newMemoryRepo()
	repo.put(seedAsset("s1", "alice", model.KindScreenshot, model.StatusReady, true))
	getter := NewGetter(repo, repo)

	_, status, err := getter.Get(context.Background(), "alice", "s1", model.KindVideo)
	require.ErrorIs(t, err, ErrAssetNotFound)
	require.Equal(t, http.StatusNotFound, status)
}
