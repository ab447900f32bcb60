package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"goban/internal/bootstrap"
	"goban/internal/domain/record"
	errors2 "goban/internal/errors"
)

type LibraryRepository struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	mongo *mongo.Database
}

func NewLibraryRepository(cfg bootstrap.Config, log *zap.SugaredLogger, mongo *mongo.Database) *LibraryRepository {
	return &LibraryRepository{
		cfg:   cfg,
		log:   log,
		mongo: mongo,
	}
}

func (l *LibraryRepository) SaveRecord(ctx context.Context, rec record.Record) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := l.mongo.Collection("records")

	if rec.ID == "" {
		rec.ID = uuid.New().String()
		if _, err := collection.InsertOne(ctx, rec); err != nil {
			l.log.Errorf("failed to insert record: %v", err)
			return "", err
		}
		return rec.ID, nil
	}

	filter := bson.M{"_id": rec.ID, "owner": rec.Owner}
	opts := options.Replace().SetUpsert(false)
	res, err := collection.ReplaceOne(ctx, filter, rec, opts)
	if err != nil {
		l.log.Errorf("failed to update record %s: %v", rec.ID, err)
		return "", err
	}
	if res.MatchedCount == 0 {
		return "", errors2.ErrRecordNotFound
	}
	return rec.ID, nil
}

func (l *LibraryRepository) GetRecordByID(ctx context.Context, owner, id string) (record.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := l.mongo.Collection("records")
	filter := bson.M{"_id": id, "owner": owner}

	var result record.Record
	err := collection.FindOne(ctx, filter).Decode(&result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return record.Record{}, errors2.ErrRecordNotFound
	} else if err != nil {
		l.log.Error(err)
		return record.Record{}, err
	}
	return result, nil
}

func (l *LibraryRepository) DeleteRecord(ctx context.Context, owner, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := l.mongo.Collection("records")
	res, err := collection.DeleteOne(ctx, bson.M{"_id": id, "owner": owner})
	if err != nil {
		l.log.Errorf("failed to delete record %s: %v", id, err)
		return err
	}
	if res.DeletedCount == 0 {
		return errors2.ErrRecordNotFound
	}
	return nil
}

func (l *LibraryRepository) ListRecords(ctx context.Context, owner, folder string, pageNum int) (record.Page, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := l.mongo.Collection("records")
	filter := bson.M{"owner": owner, "folder": folder}

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		l.log.Error(err)
		return record.Page{}, err
	}

	limit := int64(l.cfg.PageLimitRecords)
	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetSkip(int64(pageNum-1) * limit).
		SetLimit(limit)

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		l.log.Error(err)
		return record.Page{}, err
	}
	defer cursor.Close(ctx)

	var records []record.Record
	if err := cursor.All(ctx, &records); err != nil {
		l.log.Error(err)
		return record.Page{}, err
	}

	return record.Page{
		Records: records,
		PageNum: pageNum,
		Total:   total,
	}, nil
}

func (l *LibraryRepository) ListFolders(ctx context.Context, owner string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := l.mongo.Collection("records")
	values, err := collection.Distinct(ctx, "folder", bson.M{"owner": owner})
	if err != nil {
		l.log.Error(err)
		return nil, err
	}

	folders := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			folders = append(folders, s)
		}
	}
	return folders, nil
}
