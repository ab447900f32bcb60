package repository

import (
	"context"
	"crypto/md5"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"goban/internal/bootstrap"
	"goban/internal/domain/game"
	"goban/internal/statuses"
)

type GameRepository struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	redis *redis.Client
	mongo *mongo.Database
}

func NewGameRepository(cfg bootstrap.Config, log *zap.SugaredLogger, redis *redis.Client, mongo *mongo.Database) *GameRepository {
	return &GameRepository{
		cfg:   cfg,
		log:   log,
		redis: redis,
		mongo: mongo,
	}
}

func (g *GameRepository) GenerateGameKeys(ctx context.Context) (gameKeySecret string, gameKeyPublic string) {
	gameKeySecret = uuid.New().String()
	for {
		gameKeyPublic = generateHash(gameKeySecret)

		if g.CheckPublicKeyIsUniq(ctx, gameKeyPublic) {
			return gameKeySecret, gameKeyPublic
		}
		gameKeySecret = uuid.New().String()
	}
}

func generateHash(s string) string {
	h := md5.New()
	h.Write([]byte(s))
	hashBytes := h.Sum(nil)
	number := binary.BigEndian.Uint32(hashBytes[:4])
	code := number % 100000
	return fmt.Sprintf("%05d", code)
}

func (g *GameRepository) CheckPublicKeyIsUniq(ctx context.Context, gameKeyPublic string) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	collection := g.mongo.Collection("games")
	filter := bson.M{
		"game_key_public": gameKeyPublic,
	}
	err := collection.FindOne(ctx, filter).Err()
	return errors.Is(err, mongo.ErrNoDocuments)
}

func (g *GameRepository) PutGame(ctx context.Context, gameData game.Game) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection("games")

	_, err := collection.InsertOne(ctx, gameData)
	if err != nil {
		g.log.Errorf("failed to insert game to database: %v", err)
		return false
	}

	g.log.Infof("game inserted successfully with key: %s", gameData.GameKeyPublic)

	return true
}

func (g *GameRepository) AddPlayer(ctx context.Context, userID string, gameKeySecret string) (game.Game, bool) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection("games")

	filter := bson.M{"game_key_secret": gameKeySecret}

	update := bson.M{}

	userColor := g.CalculateUserColor(ctx, gameKeySecret, userID)
	switch userColor {
	case "white":
		update = bson.M{
			"$set": bson.M{
				"player_white": userID,
				"status":       statuses.StatusActive,
			},
		}
	case "black":
		update = bson.M{
			"$set": bson.M{
				"player_black": userID,
				"status":       statuses.StatusActive,
			},
		}
	}

	opts := options.Update().SetUpsert(false)

	res, err := collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		g.log.Errorf("failed to update game in database: %v", err)
		return game.Game{}, false
	}

	if res.MatchedCount == 0 {
		g.log.Infof("game with key %s not found", gameKeySecret)
		return game.Game{}, false
	}

	var updatedGame game.Game
	err = collection.FindOne(ctx, filter).Decode(&updatedGame)
	if err != nil {
		g.log.Errorf("failed to fetch updated game: %v", err)
		return game.Game{}, false
	}

	g.log.Infof("user %s (%s) joined game %s", userID, userColor, updatedGame.GameKeyPublic)

	return updatedGame, true
}

func (g *GameRepository) CalculateUserColor(ctx context.Context, gameKeySecret string, userID string) string {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection("games")

	filter := bson.M{"game_key_secret": gameKeySecret}

	var result game.Game
	err := collection.FindOne(ctx, filter).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			g.log.Errorf("game with key %s not found", gameKeySecret)
		}
		return ""
	}

	if result.PlayerBlack == "" && result.PlayerWhite != userID {
		return "black"
	}
	if result.PlayerWhite == "" && result.PlayerBlack != userID {
		return "white"
	}
	return ""
}

func (g *GameRepository) GetGameByGameKey(ctx context.Context, gameKeySecret string) game.Game {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection("games")

	filter := bson.M{"game_key_secret": gameKeySecret}

	var result game.Game
	err := collection.FindOne(ctx, filter).Decode(&result)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			g.log.Error(err)
		}
	}

	return result
}

func (g *GameRepository) GetGameByPublicKey(ctx context.Context, gameKeyPublic string) (game.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	collection := g.mongo.Collection("games")
	filter := bson.M{
		"$and": []bson.M{
			{
				"game_key_public": gameKeyPublic,
			},
			{
				"status": bson.M{
					"$ne": statuses.StatusCompleted,
				},
			},
		},
	}

	foundGame := game.Game{}

	err := collection.FindOne(ctx, filter).Decode(&foundGame)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return foundGame, nil
	} else if err != nil {
		g.log.Error(err)
		return foundGame, err
	}

	return foundGame, nil
}

func (g *GameRepository) SaveSGF(key string, sgfText string) error {
	ctx := context.Background()
	return g.redis.Set(ctx, key, sgfText, 0).Err()
}

func (g *GameRepository) LoadSGF(key string) (string, error) {
	ctx := context.Background()
	return g.redis.Get(ctx, key).Result()
}

func (g *GameRepository) HasUserActiveGameByUserId(ctx context.Context, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	collection := g.mongo.Collection("games")
	filter := activeGameFilter(userID)
	err := collection.FindOne(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	} else if err != nil {
		g.log.Error(err)
		return false, err
	}

	return true, nil
}

func (g *GameRepository) GetActiveGameByUserId(ctx context.Context, userID string) (game.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	collection := g.mongo.Collection("games")

	var result game.Game
	err := collection.FindOne(ctx, activeGameFilter(userID)).Decode(&result)
	if err != nil {
		g.log.Error(err)
		return game.Game{}, err
	}
	return result, nil
}

func (g *GameRepository) LeaveGameBySecretKey(ctx context.Context, secretKey string, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	collection := g.mongo.Collection("games")

	filter := bson.M{"game_key_secret": secretKey}
	update := bson.M{
		"$set": bson.M{
			"status": statuses.StatusCompleted,
		},
	}
	_, err := collection.UpdateOne(ctx, filter, update)
	if err != nil {
		g.log.Errorf("failed to mark game as completed: %v", err)
		return err
	}
	return nil
}

func activeGameFilter(userID string) bson.M {
	return bson.M{
		"$and": []bson.M{
			{
				"$or": []bson.M{
					{"player_black": userID},
					{"player_white": userID},
				},
			},
			{
				"status": bson.M{
					"$ne": statuses.StatusCompleted,
				},
			},
		},
	}
}
