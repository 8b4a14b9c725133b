package memory

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements VectorStore on a MongoDB collection. Similarity is
// ranked client-side; crew memory collections stay small enough that a
// dedicated vector index would be overkill.
type MongoStore struct {
	client            *mongo.Client
	collection        *mongo.Collection
	counterCollection *mongo.Collection
}

const mongoCloseTimeout = 5 * time.Second

func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	if uri == "" {
		return nil, errors.New("mongo uri is required")
	}
	if database == "" {
		database = "supportcrew"
	}
	if collection == "" {
		collection = "crew_memory"
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	db := client.Database(database)
	return &MongoStore{
		client:            client,
		collection:        db.Collection(collection),
		counterCollection: db.Collection("counters"),
	}, nil
}

// nextID allocates the next _id from a server-side counter, so concurrent
// processes and repeated runs against the same collection never collide.
func (ms *MongoStore) nextID(ctx context.Context) (int64, error) {
	if ms.counterCollection == nil {
		return 0, errors.New("mongo counter collection is not configured")
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	res := ms.counterCollection.FindOneAndUpdate(ctx, bson.M{"_id": ms.collection.Name()}, bson.M{"$inc": bson.M{"seq": 1}}, opts)
	if res.Err() != nil {
		return 0, res.Err()
	}
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	if err := res.Decode(&doc); err != nil {
		return 0, err
	}
	return doc.Seq, nil
}

func (ms *MongoStore) StoreMemory(ctx context.Context, rec Record) error {
	if ms == nil || ms.collection == nil {
		return nil
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	id, err := ms.nextID(ctx)
	if err != nil {
		return err
	}
	doc := bson.M{
		"_id":        id,
		"session_id": rec.SessionID,
		"role":       rec.Role,
		"content":    rec.Content,
		"embedding":  float64Embedding(rec.Embedding),
		"created_at": rec.CreatedAt,
	}
	_, err = ms.collection.InsertOne(ctx, doc)
	return err
}

func (ms *MongoStore) SearchMemory(ctx context.Context, queryEmbedding []float32, limit int) ([]Record, error) {
	if ms == nil || ms.collection == nil || limit <= 0 {
		return nil, nil
	}
	cursor, err := ms.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []Record
	for cursor.Next(ctx) {
		var doc struct {
			ID        int64     `bson:"_id"`
			SessionID string    `bson:"session_id"`
			Role      string    `bson:"role"`
			Content   string    `bson:"content"`
			Embedding []float64 `bson:"embedding"`
			CreatedAt time.Time `bson:"created_at"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		rec := Record{
			ID:        doc.ID,
			SessionID: doc.SessionID,
			Role:      doc.Role,
			Content:   doc.Content,
			Embedding: float32Embedding(doc.Embedding),
			CreatedAt: doc.CreatedAt,
		}
		rec.Score = cosineSimilarity(queryEmbedding, rec.Embedding)
		records = append(records, rec)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Score > records[j].Score })
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (ms *MongoStore) Count(ctx context.Context) (int, error) {
	if ms == nil || ms.collection == nil {
		return 0, nil
	}
	n, err := ms.collection.CountDocuments(ctx, bson.M{})
	return int(n), err
}

func (ms *MongoStore) Close(ctx context.Context) error {
	if ms == nil || ms.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, mongoCloseTimeout)
	defer cancel()
	return ms.client.Disconnect(ctx)
}

func float64Embedding(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}

func float32Embedding(in []float64) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = float32(v)
	}
	return out
}

var _ VectorStore = (*MongoStore)(nil)
