package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/boardkit/reversi/internal/models"
	"github.com/boardkit/reversi/internal/othello"
	"github.com/boardkit/reversi/internal/repository"
	"github.com/boardkit/reversi/internal/services"
	"github.com/gofiber/contrib/websocket"
)

const requestTimeout = 2 * time.Second

// Handler serves one websocket connection playing games over event messages.
type Handler struct {
	services *services.Services
	ws       *websocket.Conn
}

// NewHandler creates a new Handler.
func NewHandler(ws *websocket.Conn, services *services.Services) *Handler {
	return &Handler{services: services, ws: ws}
}

func (h *Handler) readMessage() (*Incoming, error) {
	var req Incoming

	msgType, msg, err := h.ws.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("ws read error: %w", err)
	}

	slog.Debug("read ws message", "msgType", msgType, "msg", msg)

	if msgType != websocket.TextMessage {
		return nil, fmt.Errorf("unexpected message type: %d", msgType)
	}

	if err = json.Unmarshal(msg, &req); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return &req, nil
}

func (h *Handler) writeMessage(outgoing *Outgoing) error {
	msg, err := json.Marshal(outgoing)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	slog.Debug("write ws message", "msg", string(msg))

	if err = h.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	return nil
}

// Handle handles the websocket connection.
func (h *Handler) Handle() error {
	for {
		req, err := h.readMessage()
		if err != nil {
			return fmt.Errorf("ws read error: %w", err)
		}

		respData, err := h.handleMessage(req)
		if err != nil {
			return fmt.Errorf("ws handle error: %w", err)
		}

		if err = h.writeMessage(respData); err != nil {
			return fmt.Errorf("ws write error: %w", err)
		}
	}
}

func (h *Handler) handleMessage(req *Incoming) (*Outgoing, error) {
	if req.Event == "" {
		return nil, errors.New("event field is either empty or missing")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	switch req.Event {
	case "new_game":
		return h.handleNewGame(ctx, req)
	case "state":
		return h.withGame(ctx, req, func(*othello.Game) error { return nil })
	case "move":
		return h.handleMove(ctx, req)
	case "pass":
		return h.withGame(ctx, req, func(game *othello.Game) error {
			if game.HasLegalMoves(game.CurrentPlayer()) {
				return errors.New("pass not allowed: legal moves available")
			}
			game.Pass()
			return nil
		})
	case "undo":
		return h.withGame(ctx, req, func(game *othello.Game) error {
			game.UndoMove()
			return nil
		})
	case "greedy":
		return h.withGame(ctx, req, func(game *othello.Game) error {
			if _, ok := game.GreedyMove(); !ok {
				return errors.New("no legal moves")
			}
			return nil
		})
	case "reset":
		return h.withGame(ctx, req, func(game *othello.Game) error {
			game.Reset()
			return nil
		})
	default:
		return nil, fmt.Errorf("unknown event: %s", req.Event)
	}
}

func (h *Handler) handleNewGame(ctx context.Context, req *Incoming) (*Outgoing, error) {
	repo := repository.NewGameRepositoryFromServices(h.services)

	gameID, game, err := repo.CreateGame(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return &Outgoing{ID: req.ID, Data: models.NewGameResponse(gameID, game)}, nil
}

func (h *Handler) handleMove(ctx context.Context, req *Incoming) (*Outgoing, error) {
	var reqData MoveRequest
	if err := json.Unmarshal(req.Data, &reqData); err != nil {
		return nil, fmt.Errorf("ws move request unmarshal error: %w", err)
	}

	return h.mutateGame(ctx, req.ID, reqData.GameID, func(game *othello.Game) error {
		if !game.ApplyMove(reqData.Square.Row, reqData.Square.Col) {
			return errors.New("illegal move")
		}
		return nil
	})
}

// withGame decodes a GameRequest payload and runs mutate on the addressed
// game.
func (h *Handler) withGame(ctx context.Context, req *Incoming, mutate func(*othello.Game) error) (*Outgoing, error) {
	var reqData GameRequest
	if err := json.Unmarshal(req.Data, &reqData); err != nil {
		return nil, fmt.Errorf("ws game request unmarshal error: %w", err)
	}

	return h.mutateGame(ctx, req.ID, reqData.GameID, mutate)
}

// mutateGame loads a game, applies mutate, persists the result and returns
// the new snapshot. A mutate error is sent to the client as a game-level
// error without closing the connection.
func (h *Handler) mutateGame(ctx context.Context, msgID int, gameID string, mutate func(*othello.Game) error) (*Outgoing, error) {
	repo := repository.NewGameRepositoryFromServices(h.services)

	game, err := repo.GetGame(ctx, gameID)
	if errors.Is(err, repository.ErrGameNotFound) {
		return &Outgoing{ID: msgID, Error: "game not found"}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}

	if err := mutate(game); err != nil {
		return &Outgoing{ID: msgID, Error: err.Error()}, nil
	}

	if err := repo.SaveGame(ctx, gameID, game); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	if game.IsGameOver() {
		if err := repo.ArchiveGame(ctx, gameID, game); err != nil {
			slog.Error("Failed to archive finished game", "game_id", gameID, "error", err)
		}
	}

	return &Outgoing{ID: msgID, Data: models.NewGameResponse(gameID, game)}, nil
}
