package game

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"goban/internal/adapters"
	"goban/internal/bootstrap"
	"goban/internal/delivery/auth"
	"goban/internal/domain/game"
	"goban/internal/httpresponse"
	repo "goban/internal/repository"
	gameuc "goban/internal/usecase/game"
	"goban/internal/utils"
)

type GameHandler struct {
	cfg         bootstrap.Config
	log         *zap.SugaredLogger
	gameUC      *gameuc.GameUseCase
	authHandler *auth.AuthHandler
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

var activeGames = make(map[string]*game.Game)
var activeGamesMu sync.RWMutex

func NewGameHandler(cfg bootstrap.Config, log *zap.SugaredLogger, mongoAdapter *adapters.AdapterMongo, redisAdapter *adapters.AdapterRedis, llmAdapter *adapters.LlmAdapter, authHandler *auth.AuthHandler) *GameHandler {
	return &GameHandler{
		cfg: cfg,
		log: log,
		gameUC: gameuc.NewGameUseCase(
			repo.NewGameRepository(cfg, log, redisAdapter.GetClient(), mongoAdapter.Database),
			repo.NewLlmRepository(llmAdapter),
		),
		authHandler: authHandler,
	}
}

func (g *GameHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		g.log.Error("Only POST method is allowed")
		httpresponse.WriteResponseWithStatus(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	userID := g.authHandler.GetUserID(w, r)
	if userID == "" {
		return
	}

	var newGameRequest game.CreateGameRequest
	if err := utils.DecodeJSONRequest(r, &newGameRequest); err != nil {
		g.log.Error("JSON decode error:", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	if newGameRequest.BoardSize == 0 {
		newGameRequest.BoardSize = g.cfg.DefaultBoardSize
	}
	if newGameRequest.Komi == 0 {
		newGameRequest.Komi = g.cfg.DefaultKomi
	}

	ctx := r.Context()

	alreadyIsInGame, err := g.gameUC.HasUserActiveGamesByUserId(ctx, userID)
	if err != nil {
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusInternalServerError, err.Error())
		return
	}
	if alreadyIsInGame {
		g.log.Errorf("user %s already has an active game", userID)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, "user already has an active game")
		return
	}

	publicKey, secretKey, err := g.gameUC.CreateGame(ctx, newGameRequest, userID)
	if err != nil {
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusInternalServerError, err.Error())
		return
	}

	g.log.Info("new game created with key: " + publicKey)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, game.GameCreateResponse{
		PublicKey: publicKey,
		SecretKey: secretKey,
	})
}

func (g *GameHandler) HandleJoinGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		g.log.Error("Only POST method is allowed")
		httpresponse.WriteResponseWithStatus(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	userID := g.authHandler.GetUserID(w, r)
	if userID == "" {
		return
	}

	var joinRequest game.GameJoinRequest
	if err := utils.DecodeJSONRequest(r, &joinRequest); err != nil {
		g.log.Error("JSON decode error:", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	if joinRequest.GameKey == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, "game_key is required")
		return
	}

	ctx := r.Context()

	alreadyIsInGame, err := g.gameUC.HasUserActiveGamesByUserId(ctx, userID)
	if err != nil {
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusInternalServerError, err.Error())
		return
	}
	if alreadyIsInGame {
		g.log.Errorf("user %s already has an active game", userID)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, "user already has an active game")
		return
	}

	// Players share the 5-digit public key; the secret key stays
	// between the server and the two seated players.
	foundGame, err := g.gameUC.GetGameByPublicKey(ctx, joinRequest.GameKey)
	if err != nil {
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusNotFound, err.Error())
		return
	}

	joinedGame, err := g.gameUC.JoinGame(ctx, foundGame.GameKeySecret, userID)
	if err != nil {
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	g.log.Infof("user %s joined game %s", userID, joinedGame.GameKeyPublic)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, joinedGame)
}

func (g *GameHandler) HandleLeaveGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		g.log.Error("Only POST method is allowed")
		httpresponse.WriteResponseWithStatus(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	userID := g.authHandler.GetUserID(w, r)
	if userID == "" {
		return
	}

	if err := g.gameUC.LeaveGame(r.Context(), userID); err != nil {
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, nil)
}

func (g *GameHandler) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	publicKey := r.URL.Query().Get("public_key")
	if publicKey == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, "public_key is required")
		return
	}

	foundGame, err := g.gameUC.GetGameByPublicKey(r.Context(), publicKey)
	if err != nil {
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusNotFound, err.Error())
		return
	}

	// The secret key never leaves the server on this route.
	foundGame.GameKeySecret = ""
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, foundGame)
}

// HandleStartGame upgrades the connection to a websocket and runs the
// play loop: each incoming move is validated through the rules engine
// and, when accepted, broadcast to both players with the updated SGF.
func (g *GameHandler) HandleStartGame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	gameKey := r.URL.Query().Get("game_id")
	playerID := g.authHandler.GetUserID(w, r)

	if gameKey == "" || playerID == "" {
		g.log.Error("missing game_id or player identity")
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, "missing game_id or player identity")
		return
	}

	if !g.gameUC.IsUserInGameByGameId(ctx, playerID, gameKey) {
		g.log.Errorf("user %s is not seated in game %s", playerID, gameKey)
		httpresponse.WriteResponseWithStatus(w, http.StatusForbidden, "user is not seated in this game")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Error("upgrade error:", err)
		return
	}

	activeGamesMu.Lock()
	ag, ok := activeGames[gameKey]
	if !ok {
		foundGame, err := g.gameUC.GetGameBySecretKey(ctx, gameKey)
		if err != nil {
			activeGamesMu.Unlock()
			g.log.Error(err)
			conn.Close()
			return
		}
		ag = &foundGame
		activeGames[gameKey] = ag
	}
	activeGamesMu.Unlock()

	var playerWS **websocket.Conn
	var opponentWS **websocket.Conn
	var playerColor string

	switch playerID {
	case ag.PlayerBlack:
		playerWS, opponentWS = &ag.PlayerBlackWS, &ag.PlayerWhiteWS
		playerColor = "B"
	case ag.PlayerWhite:
		playerWS, opponentWS = &ag.PlayerWhiteWS, &ag.PlayerBlackWS
		playerColor = "W"
	default:
		g.log.Error("unknown player id:", playerID)
		conn.Close()
		return
	}

	activeGamesMu.Lock()
	if *playerWS != nil {
		(*playerWS).WriteMessage(websocket.TextMessage, []byte("disconnected: a newer connection replaced this one"))
		(*playerWS).Close()
	}
	*playerWS = conn
	activeGamesMu.Unlock()

	defer func() {
		conn.Close()
		activeGamesMu.Lock()
		if *playerWS == conn {
			*playerWS = nil
		}
		activeGamesMu.Unlock()
	}()

	for {
		var move game.Move
		if err = conn.ReadJSON(&move); err != nil {
			g.log.Error("read error:", err)
			return
		}

		move.Color = playerColor

		result, err := g.gameUC.ApplyMove(ctx, gameKey, move)
		if err != nil {
			g.log.Error(err)
			conn.WriteMessage(websocket.TextMessage, []byte(err.Error()))
			continue
		}

		if !result.Accepted {
			conn.WriteJSON(result)
			continue
		}

		resp := game.GameStateResponse{
			Move:     move,
			Captured: result.Captured,
			SGF:      result.SGF,
		}

		activeGamesMu.Lock()
		if err := conn.WriteJSON(resp); err != nil {
			g.log.Error("write to player error:", err)
		}
		if *opponentWS != nil {
			if err := (*opponentWS).WriteJSON(resp); err != nil {
				g.log.Error("write to opponent error:", err)
				(*opponentWS).Close()
				*opponentWS = nil
			}
		}
		activeGamesMu.Unlock()
	}
}
