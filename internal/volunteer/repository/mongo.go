package repository

import (
	"context"
	"fmt"

	"github.com/volunteerhub/volunteer-server/internal/volunteer"
	"github.com/volunteerhub/volunteer-server/pkg/metrics"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements Repository over a MongoDB collection. Documents are
// keyed by store generated ObjectIDs.
type MongoRepo struct {
	col  *mongo.Collection
	name string
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col, name: col.Name()}
}

// EnsureIndexes creates ascending single-field indexes used by list queries.
func (m *MongoRepo) EnsureIndexes(ctx context.Context, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	models := make([]mongo.IndexModel, 0, len(fields))
	for _, f := range fields {
		models = append(models, mongo.IndexModel{Keys: bson.D{{Key: f, Value: 1}}})
	}
	_, err := m.col.Indexes().CreateMany(ctx, models)
	metrics.ObserveStore(m.name, "create_indexes", err)
	if err != nil {
		return fmt.Errorf("create indexes on %s: %w", m.name, err)
	}
	return nil
}

// FindOptions converts list options into driver options.
func FindOptions(opts volunteer.FindOptions) *options.FindOptions {
	fo := options.Find()
	if opts.Sort != nil {
		dir := 1
		if opts.Sort.Desc {
			dir = -1
		}
		fo.SetSort(bson.D{{Key: opts.Sort.Field, Value: dir}})
	}
	if opts.Skip > 0 {
		fo.SetSkip(opts.Skip)
	}
	if opts.Limit > 0 {
		fo.SetLimit(opts.Limit)
	}
	return fo
}

func (m *MongoRepo) Find(ctx context.Context, f volunteer.Filter, opts volunteer.FindOptions) ([]volunteer.Document, error) {
	out, err := m.find(ctx, f, opts)
	metrics.ObserveStore(m.name, "find", err)
	return out, err
}

func (m *MongoRepo) find(ctx context.Context, f volunteer.Filter, opts volunteer.FindOptions) ([]volunteer.Document, error) {
	cur, err := m.col.Find(ctx, f.BSON(), FindOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", m.name, err)
	}
	out := []volunteer.Document{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", m.name, err)
	}
	return out, nil
}

func (m *MongoRepo) FindByID(ctx context.Context, id string) (volunteer.Document, error) {
	oid, err := volunteer.ParseID(id)
	if err != nil {
		return nil, err
	}
	var d volunteer.Document
	err = m.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		metrics.ObserveStore(m.name, "find_one", nil)
		return nil, nil
	}
	metrics.ObserveStore(m.name, "find_one", err)
	if err != nil {
		return nil, fmt.Errorf("find %s in %s: %w", id, m.name, err)
	}
	return d, nil
}

// Insert stores d under a fresh ObjectID; a client supplied _id is ignored.
func (m *MongoRepo) Insert(ctx context.Context, d volunteer.Document) (InsertResult, error) {
	doc := d.WithoutID()
	doc[volunteer.FieldID] = primitive.NewObjectID()
	res, err := m.col.InsertOne(ctx, doc)
	metrics.ObserveStore(m.name, "insert", err)
	if err != nil {
		return InsertResult{}, fmt.Errorf("insert into %s: %w", m.name, err)
	}
	return InsertResult{Acknowledged: true, InsertedID: idString(res.InsertedID)}, nil
}

// Upsert sets every field of d on the document with the given id, creating
// it when missing.
func (m *MongoRepo) Upsert(ctx context.Context, id string, d volunteer.Document) (UpdateResult, error) {
	oid, err := volunteer.ParseID(id)
	if err != nil {
		return UpdateResult{}, err
	}
	set := d.WithoutID()
	if len(set) == 0 {
		return UpdateResult{}, fmt.Errorf("%w: empty update", volunteer.ErrInvalidDocument)
	}
	res, err := m.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, options.Update().SetUpsert(true))
	metrics.ObserveStore(m.name, "upsert", err)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("upsert %s in %s: %w", id, m.name, err)
	}
	out := UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}
	if res.UpsertedID != nil {
		s := idString(res.UpsertedID)
		out.UpsertedID = &s
	}
	return out, nil
}

func (m *MongoRepo) Delete(ctx context.Context, id string) (DeleteResult, error) {
	oid, err := volunteer.ParseID(id)
	if err != nil {
		return DeleteResult{}, err
	}
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": oid})
	metrics.ObserveStore(m.name, "delete", err)
	if err != nil {
		return DeleteResult{}, fmt.Errorf("delete %s from %s: %w", id, m.name, err)
	}
	return DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

func (m *MongoRepo) Count(ctx context.Context, f volunteer.Filter) (int64, error) {
	n, err := m.col.CountDocuments(ctx, f.BSON())
	metrics.ObserveStore(m.name, "count", err)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", m.name, err)
	}
	return n, nil
}

func idString(v interface{}) string {
	if oid, ok := v.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(v)
}
