package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sableashish494/ashish-primaspot-main/pkg/logger"
	"github.com/sableashish494/ashish-primaspot-main/pkg/models"
)

const (
	profilesCollection = "profiles"
	postsCollection    = "posts"
	reelsCollection    = "reels"

	connectTimeout = 30 * time.Second
)

// MongoStore implements Store on top of MongoDB.
type MongoStore struct {
	client   *mongo.Client
	db       *mongo.Database
	profiles *mongo.Collection
	posts    *mongo.Collection
	reels    *mongo.Collection
	logger   logger.Logger
}

// NewMongoStore connects to MongoDB and prepares the three collections.
func NewMongoStore(uri, database string, log logger.Logger) (*MongoStore, error) {
	if log == nil {
		log = logger.GetLogger()
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(50).
		SetMinPoolSize(5).
		SetMaxConnIdleTime(5 * time.Minute).
		SetRetryWrites(true)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(database)
	store := &MongoStore{
		client:   client,
		db:       db,
		profiles: db.Collection(profilesCollection),
		posts:    db.Collection(postsCollection),
		reels:    db.Collection(reelsCollection),
		logger:   log,
	}

	store.ensureIndexes(ctx)

	log.InfoWithFields("connected to MongoDB", map[string]interface{}{
		"database": database,
	})

	return store, nil
}

// ensureIndexes creates the username and last_updated indexes the read path
// relies on. Index failures are logged, not fatal.
func (s *MongoStore) ensureIndexes(ctx context.Context) {
	profileIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "last_updated", Value: -1}},
		},
	}
	if _, err := s.profiles.Indexes().CreateMany(ctx, profileIndexes); err != nil {
		s.logger.WithError(err).Warn("failed to create profile indexes")
	}

	contentIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "username", Value: 1}},
	}
	for _, coll := range []*mongo.Collection{s.posts, s.reels} {
		if _, err := coll.Indexes().CreateOne(ctx, contentIndex); err != nil {
			s.logger.WithError(err).WithField("collection", coll.Name()).Warn("failed to create content index")
		}
	}
}

func (s *MongoStore) contentColl(kind models.ContentKind) *mongo.Collection {
	if kind == models.KindReels {
		return s.reels
	}
	return s.posts
}

// SaveProfile upserts the profile document for profile.Username.
func (s *MongoStore) SaveProfile(ctx context.Context, profile models.Profile) (*ProfileRecord, error) {
	record := ProfileRecord{
		Username:    profile.Username,
		Data:        profile,
		LastUpdated: time.Now().UTC(),
	}

	filter := bson.M{"username": profile.Username}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.profiles.ReplaceOne(ctx, filter, record, opts); err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}

	return &record, nil
}

// SaveContent replaces the stored collection for username+kind. Empty input
// leaves the previous collection alone.
func (s *MongoStore) SaveContent(ctx context.Context, kind models.ContentKind, username string, items []models.ContentItem) error {
	if len(items) == 0 {
		return nil
	}

	coll := s.contentColl(kind)

	// Delete-then-insert is not wrapped in a transaction; a concurrent
	// reader can briefly observe the collection as absent.
	if _, err := coll.DeleteMany(ctx, bson.M{"username": username}); err != nil {
		return fmt.Errorf("failed to delete existing %s: %w", kind, err)
	}

	record := ContentRecord{
		Username:    username,
		Data:        items,
		LastUpdated: time.Now().UTC(),
	}
	if _, err := coll.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to insert %s: %w", kind, err)
	}

	return nil
}

// GetProfile returns the stored profile payload for a username.
func (s *MongoStore) GetProfile(ctx context.Context, username string) (models.Profile, error) {
	var record ProfileRecord
	err := s.profiles.FindOne(ctx, bson.M{"username": username}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Profile{}, ErrNotFound
		}
		return models.Profile{}, fmt.Errorf("failed to fetch profile: %w", err)
	}

	return record.Data, nil
}

// GetContent returns at most limit stored items for username+kind.
func (s *MongoStore) GetContent(ctx context.Context, kind models.ContentKind, username string, limit int) ([]models.ContentItem, error) {
	var record ContentRecord
	err := s.contentColl(kind).FindOne(ctx, bson.M{"username": username}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return []models.ContentItem{}, nil
		}
		return nil, fmt.Errorf("failed to fetch %s: %w", kind, err)
	}

	items := record.Data
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// UserExists reports whether a profile document exists for the username.
func (s *MongoStore) UserExists(ctx context.Context, username string) (bool, error) {
	count, err := s.profiles.CountDocuments(ctx, bson.M{"username": username}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return count > 0, nil
}

// ListUsers returns all stored profile summaries, newest first.
func (s *MongoStore) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	opts := options.Find().SetSort(bson.D{{Key: "last_updated", Value: -1}})
	cursor, err := s.profiles.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.UserSummary{}
	for cursor.Next(ctx) {
		var record ProfileRecord
		if err := cursor.Decode(&record); err != nil {
			return nil, fmt.Errorf("failed to decode profile: %w", err)
		}
		users = append(users, models.UserSummary{
			Username:    record.Username,
			FullName:    record.Data.FullName,
			LastUpdated: record.LastUpdated,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return users, nil
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
