package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/boardkit/reversi/internal/models"
	"github.com/boardkit/reversi/internal/othello"
	"github.com/boardkit/reversi/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

const (
	// GamesKey is the Redis hash holding live game states by id.
	GamesKey = "games"

	// GamesTTL is refreshed on every write. Abandoned games expire with the
	// hash.
	GamesTTL = 24 * time.Hour

	defaultArchiveLimit = 100
)

var ErrGameNotFound = errors.New("game not found")

// GameRepository stores live games in Redis and finished games in Postgres.
type GameRepository struct {
	services *services.Services
}

// NewGameRepository creates a GameRepository from a request context.
func NewGameRepository(c *fiber.Ctx) *GameRepository {
	return &GameRepository{
		services: c.Locals("services").(*services.Services), //nolint: errcheck
	}
}

// NewGameRepositoryFromServices creates a GameRepository from services directly.
func NewGameRepositoryFromServices(services *services.Services) *GameRepository {
	return &GameRepository{
		services: services,
	}
}

// CreateGame stores a fresh game under a new id and returns both.
func (repo *GameRepository) CreateGame(ctx context.Context) (string, *othello.Game, error) {
	gameID := uuid.New().String()
	game := othello.NewGame()

	if err := repo.SaveGame(ctx, gameID, game); err != nil {
		return "", nil, err
	}

	return gameID, game, nil
}

// GetGame loads the game with the given id from Redis.
func (repo *GameRepository) GetGame(ctx context.Context, gameID string) (*othello.Game, error) {
	redisConn := repo.services.Redis

	jsonData, err := redisConn.HGet(ctx, GamesKey, gameID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("error getting game: %w", err)
	}

	var state models.GameState
	if err := json.Unmarshal(jsonData, &state); err != nil {
		return nil, fmt.Errorf("error unmarshaling game state: %w", err)
	}

	game, err := state.Game()
	if err != nil {
		return nil, fmt.Errorf("error restoring game state: %w", err)
	}

	return game, nil
}

// SaveGame stores the game state in Redis and refreshes the TTL.
func (repo *GameRepository) SaveGame(ctx context.Context, gameID string, game *othello.Game) error {
	jsonData, err := json.Marshal(models.NewGameState(game))
	if err != nil {
		return fmt.Errorf("error marshaling game state: %w", err)
	}

	redisConn := repo.services.Redis

	if err := redisConn.HSet(ctx, GamesKey, gameID, jsonData).Err(); err != nil {
		return fmt.Errorf("error storing game: %w", err)
	}

	if err := redisConn.Expire(ctx, GamesKey, GamesTTL).Err(); err != nil {
		return fmt.Errorf("error setting TTL: %w", err)
	}

	return nil
}

// DeleteGame removes a live game from Redis.
func (repo *GameRepository) DeleteGame(ctx context.Context, gameID string) error {
	if err := repo.services.Redis.HDel(ctx, GamesKey, gameID).Err(); err != nil {
		return fmt.Errorf("error deleting game: %w", err)
	}
	return nil
}

// ArchiveGame writes a finished game to Postgres. The move list is stored in
// field notation, in game order.
func (repo *GameRepository) ArchiveGame(ctx context.Context, gameID string, game *othello.Game) error {
	winner := "draw"
	if w, ok := game.Winner(); ok {
		winner = w.String()
	}

	history := game.History()
	moves := make(pq.StringArray, len(history))
	for i, move := range history {
		moves[i] = move.Square.Field()
	}

	query := `
		INSERT INTO games (id, winner, black_score, white_score, moves)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := repo.services.Postgres.ExecContext(ctx, query, gameID, winner,
		game.Score(othello.Black), game.Score(othello.White), moves)
	if err != nil {
		return fmt.Errorf("error archiving game: %w", err)
	}

	return nil
}

// GetArchivedGames returns the most recently finished games. A limit of 0
// uses the default.
func (repo *GameRepository) GetArchivedGames(ctx context.Context, limit int) ([]models.ArchivedGame, error) {
	if limit <= 0 {
		limit = defaultArchiveLimit
	}

	query := `
		SELECT id, winner, black_score, white_score, moves, finished_at
		FROM games
		ORDER BY finished_at DESC
		LIMIT $1
	`

	games := make([]models.ArchivedGame, 0, limit)
	if err := repo.services.Postgres.SelectContext(ctx, &games, query, limit); err != nil {
		return nil, fmt.Errorf("error getting archived games: %w", err)
	}

	return games, nil
}
