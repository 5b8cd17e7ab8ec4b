package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"weather-dashboard/config"
	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/logger"
)

const mongoConnectTimeout = 10 * time.Second

// MongoStore keeps readings in a MongoDB collection.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	l          *logger.Logger
}

func NewMongoStore(ctx context.Context, cfg config.StorageConfig, l *logger.Logger) (*MongoStore, error) {
	l.Info("attempting to connect to mongodb...", map[string]any{
		"database":   cfg.Database,
		"collection": cfg.Collection,
	})

	connectCtx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("[MONGODB] failed to create client: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("[MONGODB CONNECTION FAILED] cannot reach mongodb: %w", err)
	}

	s := &MongoStore{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
		l:          l,
	}

	if err := s.ensureIndexes(connectCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	l.Info("mongodb connection established successfully")

	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: -1}, {Key: "location", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create readings index: %w", err)
	}
	return nil
}

func (s *MongoStore) Insert(ctx context.Context, r *models.Reading) error {
	res, err := s.collection.InsertOne(ctx, r)
	if err != nil {
		return fmt.Errorf("failed to insert reading: %w", err)
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		r.ID = id
	}
	return nil
}

func (s *MongoStore) Find(ctx context.Context, q models.HistoryQuery) ([]models.Reading, error) {
	cursor, err := s.collection.Find(ctx, historyFilter(q), historyFindOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to query readings: %w", err)
	}
	defer cursor.Close(ctx)

	readings := make([]models.Reading, 0)
	if err := cursor.All(ctx, &readings); err != nil {
		return nil, fmt.Errorf("failed to decode readings: %w", err)
	}

	return readings, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect mongodb: %w", err)
	}
	s.l.Info("mongodb connection closed")
	return nil
}

func historyFilter(q models.HistoryQuery) bson.D {
	filter := bson.D{
		{Key: "date", Value: bson.D{
			{Key: "$gte", Value: q.From},
			{Key: "$lte", Value: q.To},
		}},
	}
	if q.Location != "" {
		filter = append(filter, bson.E{Key: "location", Value: q.Location})
	}
	return filter
}

func historyFindOptions() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
}
