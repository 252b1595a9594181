// Package audit keeps a trail of record mutations in MongoDB.
package audit

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	Collection       = "audit_log"
	DefaultRetention = 365 * 24 * time.Hour
)

// Entry is one audited mutation.
type Entry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Table     string             `bson:"table" json:"table"`
	Op        string             `bson:"op" json:"op"` // create, update, delete
	RecordID  string             `bson:"record_id" json:"record_id"`
	Actor     string             `bson:"actor,omitempty" json:"actor,omitempty"`
	Instance  string             `bson:"instance,omitempty" json:"instance,omitempty"`
	At        time.Time          `bson:"at" json:"at"`
	ExpiresAt time.Time          `bson:"expires_at" json:"-"`
}

// Recorder stores audit entries.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
	List(ctx context.Context, table string, limit int64) ([]Entry, error)
}

type MongoRecorder struct {
	coll      *mongo.Collection
	retention time.Duration
}

// NewMongoRecorder writes to coll. Entries expire after retention through
// the collection's TTL index.
func NewMongoRecorder(coll *mongo.Collection, retention time.Duration) *MongoRecorder {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &MongoRecorder{coll: coll, retention: retention}
}

func (r *MongoRecorder) Record(ctx context.Context, e Entry) error {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	e.ExpiresAt = e.At.Add(r.retention)
	if _, err := r.coll.InsertOne(ctx, e); err != nil {
		return fmt.Errorf("record audit %s %s/%s: %w", e.Op, e.Table, e.RecordID, err)
	}
	return nil
}

// List returns the latest entries, newest first, optionally for one table.
func (r *MongoRecorder) List(ctx context.Context, table string, limit int64) ([]Entry, error) {
	filter := bson.M{}
	if table != "" {
		filter["table"] = table
	}
	if limit <= 0 {
		limit = 100
	}
	opts := options.Find().SetSort(bson.D{{Key: "at", Value: -1}}).SetLimit(limit)

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	entries := []Entry{}
	if err := cur.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	return entries, nil
}

// Nop discards entries; used when MongoDB is not configured.
type Nop struct{}

func (Nop) Record(context.Context, Entry) error { return nil }

func (Nop) List(context.Context, string, int64) ([]Entry, error) { return []Entry{}, nil }
