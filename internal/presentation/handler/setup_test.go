package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"clipvault/internal/application/usecase"
	"clipvault/internal/domain/dto"
	"clipvault/internal/domain/model"
	"clipvault/internal/domain/repository/database"
	"clipvault/internal/infrastructure/blob/fs"
	"clipvault/internal/presentation/middleware"
)

var testSecret = []byte("handler-test-secret")

// memRepo is an in-memory implementation of the database interfaces, letting
// handler tests run the full request path without a real MongoDB.
type memRepo struct {
	mu     sync.Mutex
	assets map[string]model.Asset
}

func newMemRepo() *memRepo {
	return &memRepo{assets: make(map[string]model.Asset)}
}

func (m *memRepo) Write(_ context.Context, asset *model.Asset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets[asset.ID] = *asset

	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*model.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assets[id]
	if !ok {
		return nil, database.ErrNotFound
	}

	return &a, nil
}

func (m *memRepo) GetByBlobRef(_ context.Context, kind model.Kind, ref string) (*model.Asset, error) {
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

func (m *memRepo) ListByOwner(_ context.Context, kind model.Kind, ownerID string,
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

func (m *memRepo) ApplyPatch(_ context.Context, id string, patch dto.AssetPatch) (*model.Asset, error) {
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

func (m *memRepo) SetStatus(_ context.Context, id string, status model.Status) error {
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

func (m *memRepo) SetBlobRef(_ context.Context, id, ref string) error {
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

func (m *memRepo) IncrementViews(_ context.Context, id string) error {
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

func (m *memRepo) RemoveByID(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.assets[id]; !ok {
		return database.ErrNotFound
	}
	delete(m.assets, id)

	return nil
}

func (m *memRepo) seed(asset model.Asset) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets[asset.ID] = asset
}

type capturingPublisher struct {
	mu        sync.Mutex
	published []string
}

func (p *capturingPublisher) Publish(_ context.Context, message string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, message)

	return nil
}

type testApp struct {
	echo      *echo.Echo
	repo      *memRepo
	store     *fs.Store
	root      string
	publisher *capturingPublisher
}

// newTestApp wires real usecases over the fakes and registers the production
// route table.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	root := t.TempDir()
	store, err := fs.New(fs.Config{Root: root})
	require.NoError(t, err)

	repo := newMemRepo()
	publisher := &capturingPublisher{}

	uploadHandler := NewUploadHandler(usecase.NewUploader(store, repo))
	getHandler := NewGetHandler(usecase.NewGetter(repo, repo), usecase.NewLister(repo))
	updateHandler := NewUpdateHandler(usecase.NewUpdater(repo, repo), usecase.NewTrimmer(repo, repo, repo, publisher))
	deleteHandler := NewDeleteHandler(usecase.NewDeleter(repo, repo, store))
	streamHandler := NewStreamHandler(usecase.NewStreamer(repo, store))

	e := echo.New()

	media := e.Group("/media", middleware.Auth(testSecret))
	media.POST("/videos", uploadHandler.Handle(model.KindVideo))
	media.GET("/videos", getHandler.HandleList(model.KindVideo, model.StatusAny))
	media.GET("/videos/archived", getHandler.HandleList(model.KindVideo, model.StatusArchived))
	media.GET("/videos/:id", getHandler.HandleGet(model.KindVideo))
	media.PUT("/videos/:id", updateHandler.HandleUpdate(model.KindVideo))
	media.PUT("/videos/:id/archive", updateHandler.HandleArchive(model.KindVideo))
	media.POST("/videos/:id/trim", updateHandler.HandleTrim())
	media.DELETE("/videos/:id", deleteHandler.HandleDelete(model.KindVideo))

	media.POST("/screenshots", uploadHandler.Handle(model.KindScreenshot))
	media.GET("/screenshots", getHandler.HandleList(model.KindScreenshot, model.StatusReady))
	media.GET("/screenshots/archived", getHandler.HandleList(model.KindScreenshot, model.StatusArchived))
	media.GET("/screenshots/:id", getHandler.HandleGet(model.KindScreenshot))
	media.PUT("/screenshots/:id", updateHandler.HandleUpdate(model.KindScreenshot))
	media.PUT("/screenshots/:id/archive", updateHandler.HandleArchive(model.KindScreenshot))
	media.DELETE("/screenshots/:id", deleteHandler.HandleDelete(model.KindScreenshot))

	files := e.Group("/files", middleware.OptionalAuth(testSecret))
	files.GET("/videos/:filename", streamHandler.HandleStream(model.KindVideo))
	files.HEAD("/videos/:filename", streamHandler.HandleHead(model.KindVideo))
	files.GET("/screenshots/:filename", streamHandler.HandleStream(model.KindScreenshot))
	files.HEAD("/screenshots/:filename", streamHandler.HandleHead(model.KindScreenshot))

	return &testApp{echo: e, repo: repo, store: store, root: root, publisher: publisher}
}

func (a *testApp) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)

	return rec
}

func bearerFor(t *testing.T, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)

	return "Bearer " + signed
}

// multipartUpload builds a multipart body with one file part carrying an
// explicit Content-Type plus optional plain form fields.
func multipartUpload(t *testing.T, field, filename, contentType string, data []byte,
	fields map[string]string,
) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		`form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)

	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	return &buf, w.FormDataContentType()
}

// mp4Payload is a sniffable mp4: ftyp box followed by filler.
func mp4Payload(extra int) []byte {
	header := []byte{
		0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm',
		0x00, 0x00, 0x02, 0x00, 'i', 's', 'o', 'm', 'i', 's', 'o', '2',
	}

	return append(header, bytes.Repeat([]byte{0x42}, extra)...)
}

var pngPayload = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func seededAsset(id, owner string, kind model.Kind, status model.Status, public bool) model.Asset {
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
