package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"clipvault"
	"clipvault/config"
	"clipvault/internal/application/usecase"
	"clipvault/internal/domain/model"
	"clipvault/internal/domain/repository/blob"
	"clipvault/internal/infrastructure/blob/fs"
	minioBlob "clipvault/internal/infrastructure/blob/minio"
	"clipvault/internal/infrastructure/broker"
	"clipvault/internal/infrastructure/database"
	"clipvault/internal/presentation/handler"
	"clipvault/internal/presentation/middleware"
	"clipvault/pkg/logger"
)

func HandleRun(args []string) {
	if len(args) < 3 {
		ExitOnError(errors.New("config file path expected\nuse help command for more information"))
	}

	cfg, err := config.Load(args[2])
	if err != nil {
		ExitOnError(err)
	}

	logger.InitGlobalLogger(&cfg.Logger)

	logger.Info("running clipvault", "version", clipvault.StringVersion())

	store, err := newBlobStore(cfg)
	if err != nil {
		ExitOnError(err)
	}

	db, err := database.Connect(cfg.DBConfig)
	if err != nil {
		ExitOnError(err)
	}

	writer := database.NewAssetWriter(db)
	retriever := database.NewAssetRetriever(db)
	lister := database.NewAssetLister(db)
	updater := database.NewAssetUpdater(db)
	remover := database.NewAssetRemover(db)

	brokerClient, err := broker.NewClient(cfg.BrokerConfig)
	if err != nil {
		ExitOnError(err)
	}

	publisher := broker.NewPublisher(brokerClient, cfg.PublisherConfig)
	receiver := broker.NewReceiver(brokerClient)

	uploadHandler := handler.NewUploadHandler(usecase.NewUploader(store, writer))
	getHandler := handler.NewGetHandler(usecase.NewGetter(retriever, updater), usecase.NewLister(lister))
	updateHandler := handler.NewUpdateHandler(
		usecase.NewUpdater(retriever, updater),
		usecase.NewTrimmer(retriever, writer, remover, publisher),
	)
	deleteHandler := handler.NewDeleteHandler(usecase.NewDeleter(retriever, remover, store))
	streamHandler := handler.NewStreamHandler(usecase.NewStreamer(retriever, store))

	e := echo.New()
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderContentLength},
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost,
			http.MethodDelete, http.MethodHead, http.MethodOptions},
		MaxAge: 86400,
	}))
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.Secure())
	// Leaves headroom above the 100 MiB video ceiling for multipart framing.
	e.Use(echoMiddleware.BodyLimit("105M"))
	e.Use(echoMiddleware.RateLimiter(echoMiddleware.NewRateLimiterMemoryStore(20)))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	media := e.Group("/media", middleware.Auth(cfg.JWTSecret))
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

	files := e.Group("/files", middleware.OptionalAuth(cfg.JWTSecret))
	files.GET("/videos/:filename", streamHandler.HandleStream(model.KindVideo))
	files.HEAD("/videos/:filename", streamHandler.HandleHead(model.KindVideo))
	files.GET("/screenshots/:filename", streamHandler.HandleStream(model.KindScreenshot))
	files.HEAD("/screenshots/:filename", streamHandler.HandleHead(model.KindScreenshot))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	processor := usecase.NewProcessor(store, retriever, updater)
	go func() {
		if err := processor.Run(ctx, receiver, cfg.Worker.ConsumerName); err != nil &&
			!errors.Is(err, context.Canceled) {
			logger.Error("trim worker stopped", "err", err)
		}
	}()

	go func() {
		if err := e.Start(cfg.Server.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			ExitOnError(fmt.Errorf("shutting down server: %w", err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		ExitOnError(err)
	}

	if err := brokerClient.Close(); err != nil {
		logger.Error("failed to close broker client", "err", err)
	}
	if err := db.Stop(); err != nil {
		logger.Error("failed to stop database", "err", err)
	}
}

func newBlobStore(cfg *config.Config) (blob.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendFS:
		return fs.New(cfg.Storage.FS)
	case config.BackendMinIO:
		return minioBlob.New(&cfg.Storage.MinIO)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
