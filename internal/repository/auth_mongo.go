package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"goban/internal/adapters"
	"goban/internal/domain/user"
	errors2 "goban/internal/errors"
)

type MongoUserStorage struct {
	adapter *adapters.AdapterMongo
}

func NewMongoUserStorage(adapter *adapters.AdapterMongo) *MongoUserStorage {
	return &MongoUserStorage{adapter: adapter}
}

func (m MongoUserStorage) CheckExists(username string) bool {
	_, ok := m.GetUser(username)
	return ok
}

func (m MongoUserStorage) GetUser(username string) (user.User, bool) {
	collection := m.adapter.Database.Collection("users")
	filter := bson.D{{Key: "username", Value: username}}

	var result user.User
	err := collection.FindOne(context.TODO(), filter).Decode(&result)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			slog.Error(err.Error())
		}
		return user.User{}, false
	}
	return result, true
}

func (m MongoUserStorage) GetUserByID(id string) (user.User, bool) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return user.User{}, false
	}

	collection := m.adapter.Database.Collection("users")
	filter := bson.D{{Key: "_id", Value: objectID}}

	var result user.User
	err = collection.FindOne(context.TODO(), filter).Decode(&result)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			slog.Error(err.Error())
		}
		return user.User{}, false
	}
	return result, true
}

func (m MongoUserStorage) CreateUser(username, email, password string) (user.User, error) {
	_, found := m.GetUser(username)
	if found {
		return user.User{}, errors2.ErrUserExists
	}
	collection := m.adapter.Database.Collection("users")
	newUser := user.User{
		Username:  username,
		Email:     email,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Statistic: user.UserStatistic{},
		// TODO hash passwords before the first public deployment
		PasswordHash: password,
	}
	result, err := collection.InsertOne(context.TODO(), newUser)
	if err != nil {
		slog.Error(err.Error())
		return user.User{}, errors2.ErrInternal
	}
	newUser.ID = result.InsertedID.(primitive.ObjectID).Hex()
	return newUser, nil
}
