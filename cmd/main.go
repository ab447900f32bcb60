package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"goban/internal/adapters"
	"goban/internal/bootstrap"
	analysisDelivery "goban/internal/delivery/analysis"
	authDelivery "goban/internal/delivery/auth"
	gameDelivery "goban/internal/delivery/game"
	libraryDelivery "goban/internal/delivery/library"
	ownMiddleware "goban/internal/middleware"
	"goban/internal/repository"
)

type mainDeliveryHandler struct {
	auth     *authDelivery.AuthHandler
	game     *gameDelivery.GameHandler
	analysis *analysisDelivery.AnalysisHandler
	library  *libraryDelivery.LibraryHandler
}

type dataBaseAdapters struct {
	redisAdapter *adapters.AdapterRedis
	mongoAdapter *adapters.AdapterMongo
}

func main() {
	logger := NewLogger()
	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Error("Failed to setup configuration", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go handleShutdown(cancel, logger)

	databaseAdapters := initDatabaseAdapters(ctx, logger, cfg)
	defer databaseAdapters.mongoAdapter.Close(ctx)
	defer databaseAdapters.redisAdapter.Close(ctx)

	// The evaluation engine is optional: without a configured binary
	// the bot falls back to its local policy and /analyze is disabled.
	var katagoRepo *repository.KatagoRepository
	if cfg.KatagoBinary != "" {
		katagoRepo, err = repository.NewKatagoRepository(cfg, logger)
		if err != nil {
			logger.Error("Failed to start the evaluation engine", zap.Error(err))
			katagoRepo = nil
		}
	}

	r := chi.NewRouter()
	handlers := initializeDeliveryHandlers(*cfg, logger, katagoRepo, databaseAdapters)
	handlers.Router(r, cfg.IsLocalCors)

	port := cfg.ServerPort
	if port == "" {
		port = ":8080"
	}
	logger.Infof("Server is running on port %s", port)
	if err := http.ListenAndServe(port, r); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func (h *mainDeliveryHandler) Router(r *chi.Mux, isLocalCors bool) {
	if isLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.Logger)

	r.Post("/register", h.auth.Register)
	r.Post("/login", h.auth.Login)
	r.Post("/logout", h.auth.Logout)

	r.Post("/newGame", h.game.HandleNewGame)
	r.Post("/joinGame", h.game.HandleJoinGame)
	r.Post("/leaveGame", h.game.HandleLeaveGame)
	r.Get("/getGame", h.game.HandleGetGame)
	r.Get("/startGame", h.game.HandleStartGame)

	r.Post("/botMove", h.analysis.HandleBotMove)
	r.Post("/analyze", h.analysis.HandleAnalyze)
	r.Post("/explainMove", h.analysis.HandleExplainMove)

	r.Route("/library", func(r chi.Router) {
		r.Post("/save", h.library.HandleSaveRecord)
		r.Post("/import", h.library.HandleImportSGF)
		r.Get("/records", h.library.HandleListRecords)
		r.Get("/folders", h.library.HandleListFolders)
		r.Get("/record", h.library.HandleGetRecord)
		r.Delete("/record", h.library.HandleDeleteRecord)
		r.Get("/kifu", h.library.HandleExportKifu)
	})
}

func initDatabaseAdapters(ctx context.Context, log *zap.SugaredLogger, cfg *bootstrap.Config) *dataBaseAdapters {
	mongoAdapter := adapters.NewAdapterMongo(cfg, log)
	if err := mongoAdapter.Init(ctx); err != nil {
		log.Fatal("Failed to initialize MongoDB", zap.Error(err))
	}

	redisAdapter := adapters.NewAdapterRedis(cfg, log)
	if err := redisAdapter.Init(ctx); err != nil {
		log.Fatal("Failed to initialize Redis", zap.Error(err))
	}

	log.Info("Database adapters initialized")
	return &dataBaseAdapters{
		redisAdapter: redisAdapter,
		mongoAdapter: mongoAdapter,
	}
}

func initializeDeliveryHandlers(
	cfg bootstrap.Config,
	log *zap.SugaredLogger,
	katagoRepo *repository.KatagoRepository,
	databaseAdapters *dataBaseAdapters,
) *mainDeliveryHandler {
	llmAdapter := adapters.NewLlmAdapter(cfg.LlmApiKey, cfg.LlmAgentKey)

	authDeliveryHandler := authDelivery.NewAuthHandler(databaseAdapters.redisAdapter, databaseAdapters.mongoAdapter, log)
	gameDeliveryHandler := gameDelivery.NewGameHandler(cfg, log, databaseAdapters.mongoAdapter, databaseAdapters.redisAdapter, llmAdapter, authDeliveryHandler)
	analysisDeliveryHandler := analysisDelivery.NewAnalysisHandler(cfg, log, databaseAdapters.mongoAdapter, databaseAdapters.redisAdapter, llmAdapter, katagoRepo, authDeliveryHandler)
	libraryDeliveryHandler := libraryDelivery.NewLibraryHandler(cfg, log, databaseAdapters.mongoAdapter, authDeliveryHandler)

	return &mainDeliveryHandler{
		auth:     authDeliveryHandler,
		game:     gameDeliveryHandler,
		analysis: analysisDeliveryHandler,
		library:  libraryDeliveryHandler,
	}
}

func handleShutdown(cancel context.CancelFunc, log *zap.SugaredLogger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Infof("Received signal %v, shutting down", sig)
	cancel()
}
