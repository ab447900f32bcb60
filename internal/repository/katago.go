package repository

import (
	"bufio"
	"context"
	"encoding/json"
	"os/exec"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"goban/internal/bootstrap"
	"goban/internal/domain"
)

// KatagoRepository talks to a KataGo process running the JSON analysis
// protocol. One process serves all requests; responses are matched back
// to callers by request ID.
type KatagoRepository struct {
	cfg    *bootstrap.Config
	log    *zap.SugaredLogger
	client *KatagoClient
}

// KatagoClient owns the engine process: writes requests to its stdin,
// reads newline-delimited JSON responses from its stdout.
type KatagoClient struct {
	cmd      *exec.Cmd
	stdin    *bufio.Writer
	stdout   *bufio.Scanner
	mu       sync.Mutex
	response sync.Map // map[requestID]chan domain.AnalysisResponse
	log      *zap.SugaredLogger
}

func NewKatagoRepository(cfg *bootstrap.Config, log *zap.SugaredLogger) (*KatagoRepository, error) {
	client, err := NewKatagoClient(cfg, log)
	if err != nil {
		return nil, err
	}

	return &KatagoRepository{
		cfg:    cfg,
		log:    log,
		client: client,
	}, nil
}

func NewKatagoClient(cfg *bootstrap.Config, log *zap.SugaredLogger) (*KatagoClient, error) {
	cmd := exec.Command(
		cfg.KatagoBinary,
		"analysis",
		"-model",
		cfg.KatagoModel,
		"-config",
		cfg.KatagoConfig,
	)

	stdinPipe, err := cmd.StdinPipe()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open katago stdin")
	}
	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open katago stdout")
	}

	client := &KatagoClient{
		cmd:    cmd,
		stdin:  bufio.NewWriter(stdinPipe),
		stdout: bufio.NewScanner(stdoutPipe),
		log:    log,
	}

	if err := cmd.Start(); err != nil {
		return nil, errors.Wrap(err, "failed to start katago process")
	}

	go client.listenForResponses()

	return client, nil
}

func (c *KatagoClient) listenForResponses() {
	for c.stdout.Scan() {
		line := c.stdout.Text()

		var resp domain.AnalysisResponse
		if err := json.Unmarshal([]byte(line), &resp); err != nil {
			c.log.Errorw("failed to unmarshal katago response", "error", err, "line", line)
			continue
		}

		// Streaming updates share the final response's ID; only the
		// final one resolves the waiting caller.
		if resp.IsDuringSearch {
			continue
		}

		if chIface, ok := c.response.Load(resp.ID); ok {
			ch := chIface.(chan domain.AnalysisResponse)
			ch <- resp
			c.response.Delete(resp.ID)
		} else {
			c.log.Warnw("no channel found for response ID", "id", resp.ID)
		}
	}
}

func (c *KatagoClient) Analyze(ctx context.Context, request domain.AnalysisRequest) (domain.AnalysisResponse, error) {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}

	responseChan := make(chan domain.AnalysisResponse, 1)
	c.response.Store(request.ID, responseChan)

	requestJSON, err := json.Marshal(request)
	if err != nil {
		c.response.Delete(request.ID)
		return domain.AnalysisResponse{}, errors.Wrap(err, "failed to marshal katago request")
	}

	// Single writer at a time so concurrent requests never interleave.
	c.mu.Lock()
	_, err = c.stdin.Write(append(requestJSON, '\n'))
	if err == nil {
		err = c.stdin.Flush()
	}
	c.mu.Unlock()
	if err != nil {
		c.response.Delete(request.ID)
		return domain.AnalysisResponse{}, errors.Wrap(err, "failed to write katago request")
	}

	select {
	case resp := <-responseChan:
		if resp.Error != "" {
			return resp, errors.Errorf("katago rejected request: %s", resp.Error)
		}
		return resp, nil
	case <-ctx.Done():
		c.response.Delete(request.ID)
		return domain.AnalysisResponse{}, errors.Wrap(ctx.Err(), "katago analysis cancelled")
	}
}

// Analyze evaluates a position and returns the engine's report.
func (k *KatagoRepository) Analyze(ctx context.Context, request domain.AnalysisRequest) (domain.AnalysisResponse, error) {
	if request.Rules == "" {
		request.Rules = "japanese"
	}
	if request.MaxVisits == 0 {
		request.MaxVisits = 100
	}
	return k.client.Analyze(ctx, request)
}

// GenerateMove asks the engine for the best continuation and returns
// it in display notation ("D4", "pass").
func (k *KatagoRepository) GenerateMove(ctx context.Context, req domain.BotMoveRequest) (string, error) {
	resp, err := k.Analyze(ctx, domain.AnalysisRequest{
		Moves:      req.Moves,
		Rules:      "japanese",
		Komi:       req.Komi,
		BoardXSize: req.BoardSize,
		BoardYSize: req.BoardSize,
		MaxVisits:  100,
	})
	if err != nil {
		return "", err
	}

	if len(resp.MoveInfos) == 0 {
		return "", errors.New("katago returned no candidate moves")
	}

	best := resp.MoveInfos[0]
	for _, mi := range resp.MoveInfos[1:] {
		if mi.Visits > best.Visits {
			best = mi
		}
	}
	return best.Move, nil
}
