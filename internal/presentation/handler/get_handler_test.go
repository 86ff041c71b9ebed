package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"clipvault/internal/domain/dto"
	"clipvault/internal/domain/model"
	"clipvault/internal/presentation"
)

func TestGetPrivateVideoOwnerView(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	app.repo.seed(seededAsset("v1", "alice", model.KindVideo, model.StatusReady, false))

	req := httptest.NewRequest(http.MethodGet, "/media/videos/v1", nil)
	req.Header.Set(presentation.AuthKey, bearerFor(t, "alice"))
	rec := app.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var desc dto.AssetDescriptor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &desc))
	require.Equal(t, int64(1), desc.ViewCount)

	rec = app.do(t, req.Clone(req.Context()))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &desc))
	require.Equal(t, int64(2), desc.ViewCount)
}

func TestGetPublicVideoNoViewCount(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	app.repo.seed(seededAsset("v1", "alice", model.KindVideo, model.StatusReady, true))

	req := httptest.NewRequest(http.MethodGet, "/media/videos/v1", nil)
	req.Header.Set(presentation.AuthKey, bearerFor(t, "bob"))
	rec := app.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var desc dto.AssetDescriptor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &desc))
	require.Zero(t, desc.ViewCount)
}

func TestGetPrivateVideoDenied(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	app.repo.seed(seededAsset("v1", "alice", model.KindVideo, model.StatusReady, false))

	req := httptest.NewRequest(http.MethodGet, "/media/videos/v1", nil)
	req.Header.Set(presentation.AuthKey, bearerFor(t, "bob"))
	rec := app.do(t, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetUnknownVideo(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/media/videos/missing", nil)
	req.Header.Set(presentation.AuthKey, bearerFor(t, "alice"))
	rec := app.do(t, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListVideosAllStatusesNewestFirst(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	now := time.Now().UTC()
	for i, st := range []model.Status{model.StatusReady, model.StatusProcessing, model.StatusArchived} {
		a := seededAsset([]string{"v1", "v2", "v3"}[i], "alice", model.KindVideo, st, false)
		a.CreatedAt = now.Add(time.Duration(i) * time.Minute)
		app.repo.seed(a)
	}
	app.repo.seed(seededAsset("other", "bob", model.KindVideo, model.StatusReady, false))

	req := httptest.NewRequest(http.MethodGet, "/media/videos", nil)
	req.Header.Set(presentation.AuthKey, bearerFor(t, "alice"))
	rec := app.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got []dto.AssetDescriptor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 3)
	require.Equal(t, "v3", got[0].ID)
	require.Equal(t, "v2", got[1].ID)
	require.Equal(t, "v1", got[2].ID)
}

func TestListScreenshotsOnlyReady(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	app.repo.seed(seededAsset("s1", "alice", model.KindScreenshot, model.StatusReady, false))
	app.repo.seed(seededAsset("s2", "alice", model.KindScreenshot, model.StatusArchived, false))

	req := httptest.NewRequest(http.MethodGet, "/media/screenshots", nil)
	req.Header.Set(presentation.AuthKey, bearerFor(t, "alice"))
	rec := app.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got []dto.AssetDescriptor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, "s1", got[0].ID)
}

func TestListArchivedVideos(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	app.repo.seed(seededAsset("v1", "alice", model.KindVideo, model.StatusReady, false))
	app.repo.seed(seededAsset("v2", "alice", model.KindVideo, model.StatusArchived, false))

	req := httptest.NewRequest(http.MethodGet, "/media/videos/archived", nil)
	req.Header.Set(presentation.AuthKey, bearerFor(t, "alice"))
	rec := app.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got []dto.AssetDescriptor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, "v2", got[0].ID)
}
