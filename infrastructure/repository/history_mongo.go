package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"glasslabel-go/domain/label"
	"glasslabel-go/infrastructure/logging"
)

// DefaultHistoryCollection is the collection used when none is configured.
const DefaultHistoryCollection = "label_history"

// historyDocument is the MongoDB document structure for history entries.
type historyDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	RunID     string             `bson:"run_id"`
	Image     string             `bson:"image"`
	LabelPath string             `bson:"label_path"`
	Code      string             `bson:"code"`
	LabeledAt time.Time          `bson:"labeled_at"`
}

// MongoHistoryRepository implements label.HistoryRepository using MongoDB.
// It logs through the logger carried by the call's context.
type MongoHistoryRepository struct {
	collection *mongo.Collection
}

// NewMongoHistoryRepository creates a new MongoDB-based history repository.
func NewMongoHistoryRepository(db *MongoDB, collection string) *MongoHistoryRepository {
	if collection == "" {
		collection = DefaultHistoryCollection
	}
	return &MongoHistoryRepository{
		collection: db.Collection(collection),
	}
}

// EnsureIndexes creates the run/time index used by FindByRun.
func (r *MongoHistoryRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "run_id", Value: 1}, {Key: "labeled_at", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create history index: %w", err)
	}
	return nil
}

// Append stores one history entry.
func (r *MongoHistoryRepository) Append(ctx context.Context, entry *label.HistoryEntry) error {
	if _, err := r.collection.InsertOne(ctx, entryToDocument(entry)); err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}

	logging.From(ctx).Debug("History entry inserted", "collection", r.collection.Name())
	return nil
}

// FindByRun returns the entries of a run ordered by label time.
func (r *MongoHistoryRepository) FindByRun(ctx context.Context, runID string) ([]*label.HistoryEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "labeled_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"run_id": runID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find history: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []historyDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}

	logger := logging.From(ctx)
	entries := make([]*label.HistoryEntry, 0, len(docs))
	for i := range docs {
		entry, err := documentToEntry(&docs[i])
		if err != nil {
			logger.Warn("Skipping history document", "id", docs[i].ID.Hex(), "error", err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// CountByValue counts the entries of a run carrying v.
func (r *MongoHistoryRepository) CountByValue(ctx context.Context, runID string, v label.Value) (int, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"run_id": runID, "code": v.Code()})
	if err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return int(n), nil
}

func entryToDocument(entry *label.HistoryEntry) *historyDocument {
	return &historyDocument{
		RunID:     entry.RunID,
		Image:     entry.Image,
		LabelPath: entry.LabelPath,
		Code:      entry.Value.Code(),
		LabeledAt: entry.LabeledAt.UTC(),
	}
}

func documentToEntry(doc *historyDocument) (*label.HistoryEntry, error) {
	v, err := label.ParseCode(doc.Code)
	if err != nil {
		return nil, err
	}
	return &label.HistoryEntry{
		RunID:     doc.RunID,
		Image:     doc.Image,
		LabelPath: doc.LabelPath,
		Value:     v,
		LabeledAt: doc.LabeledAt,
	}, nil
}
