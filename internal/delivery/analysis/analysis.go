// Package analysis exposes the engine-assisted features: bot moves,
// position evaluation and teach-mode move explanations.
package analysis

import (
	"net/http"

	"go.uber.org/zap"

	"goban/internal/adapters"
	"goban/internal/bootstrap"
	"goban/internal/delivery/auth"
	"goban/internal/domain"
	"goban/internal/httpresponse"
	repo "goban/internal/repository"
	botuc "goban/internal/usecase/bot"
	gameuc "goban/internal/usecase/game"
	"goban/internal/utils"
)

type AnalysisHandler struct {
	cfg         bootstrap.Config
	log         *zap.SugaredLogger
	botUC       *botuc.BotUseCase
	gameUC      *gameuc.GameUseCase
	katago      *repo.KatagoRepository
	authHandler *auth.AuthHandler
}

type AnalyzeRequest struct {
	SGF       string `json:"sgf"`
	MaxVisits int    `json:"max_visits"`
}

type ExplainMoveRequest struct {
	SGF        string `json:"sgf"`
	MoveNumber int    `json:"move_number"`
}

type ExplainMoveResponse struct {
	Explanation string `json:"explanation"`
}

func NewAnalysisHandler(cfg bootstrap.Config, log *zap.SugaredLogger, mongoAdapter *adapters.AdapterMongo, redisAdapter *adapters.AdapterRedis, llmAdapter *adapters.LlmAdapter, katago *repo.KatagoRepository, authHandler *auth.AuthHandler) *AnalysisHandler {
	// A nil repository must stay a nil interface, or the bot would try
	// to call through it.
	var engine botuc.EngineStore
	if katago != nil {
		engine = katago
	}
	return &AnalysisHandler{
		cfg:   cfg,
		log:   log,
		botUC: botuc.NewBotUseCase(engine, log),
		gameUC: gameuc.NewGameUseCase(
			repo.NewGameRepository(cfg, log, redisAdapter.GetClient(), mongoAdapter.Database),
			repo.NewLlmRepository(llmAdapter),
		),
		katago:      katago,
		authHandler: authHandler,
	}
}

// HandleBotMove returns the bot's reply for the supplied record. The
// move comes back in SGF coordinates, empty for a pass.
func (a *AnalysisHandler) HandleBotMove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.log.Error("HandleBotMove: only POST method is allowed")
		httpresponse.WriteResponseWithStatus(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	var req domain.BotMoveRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		a.log.Error("HandleBotMove: JSON decode error: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.SGF == "" || req.Color == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, "sgf and color are required")
		return
	}

	move, err := a.botUC.GenerateMove(r.Context(), req.SGF, req.Color)
	if err != nil {
		a.log.Error("HandleBotMove: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, move)
}

// HandleAnalyze sends the position to the evaluation engine and
// returns its report: winrate, score lead and candidate moves.
func (a *AnalysisHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.log.Error("HandleAnalyze: only POST method is allowed")
		httpresponse.WriteResponseWithStatus(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	if a.katago == nil {
		httpresponse.WriteResponseWithStatus(w, http.StatusServiceUnavailable, "evaluation engine is not configured")
		return
	}

	var req AnalyzeRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		a.log.Error("HandleAnalyze: JSON decode error: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	parsed, err := gameuc.ParseSGF(req.SGF)
	if err != nil {
		a.log.Error("HandleAnalyze: invalid SGF: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, "invalid SGF: "+err.Error())
		return
	}
	size := gameuc.BoardSizeFromSGF(parsed)

	resp, err := a.katago.Analyze(r.Context(), domain.AnalysisRequest{
		Moves:      botuc.EngineMoves(gameuc.MainLineMoves(parsed), size),
		BoardXSize: size,
		BoardYSize: size,
		MaxVisits:  req.MaxVisits,
	})
	if err != nil {
		a.log.Error("HandleAnalyze: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadGateway, err.Error())
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

// HandleExplainMove asks the teaching assistant to comment on one move
// of the supplied record.
func (a *AnalysisHandler) HandleExplainMove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.log.Error("HandleExplainMove: only POST method is allowed")
		httpresponse.WriteResponseWithStatus(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	userID := a.authHandler.GetUserID(w, r)
	if userID == "" {
		return
	}

	var req ExplainMoveRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		a.log.Error("HandleExplainMove: JSON decode error: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	explanation, err := a.gameUC.ExplainMove(r.Context(), req.SGF, req.MoveNumber)
	if err != nil {
		a.log.Error("HandleExplainMove: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, ExplainMoveResponse{Explanation: explanation})
}
