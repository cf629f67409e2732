package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gogotex/usergroups/internal/document"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements a MongoDB-backed repository for one entity collection.
// Documents are stored with a generated ObjectID under "_id" and exposed with
// the id rendered as hex.
type MongoRepo struct {
	col    *mongo.Collection
	unique []string
}

// NewMongoRepo wraps col. uniqueFields name the fields guarded by unique
// indexes (see EnsureIndexes); they are used to attribute duplicate-key errors.
func NewMongoRepo(col *mongo.Collection, uniqueFields ...string) *MongoRepo {
	return &MongoRepo{col: col, unique: uniqueFields}
}

// IndexName is the name of the unique index created for field.
func IndexName(field string) string { return field + "_unique" }

// EnsureIndexes creates one unique index per unique field (idempotent).
func (m *MongoRepo) EnsureIndexes(ctx context.Context) error {
	if len(m.unique) == 0 {
		return nil
	}
	models := make([]mongo.IndexModel, 0, len(m.unique))
	for _, f := range m.unique {
		models = append(models, mongo.IndexModel{
			Keys:    bson.D{{Key: f, Value: 1}},
			Options: options.Index().SetUnique(true).SetName(IndexName(f)),
		})
	}
	if _, err := m.col.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("create indexes on %s: %w", m.col.Name(), err)
	}
	return nil
}

func toDocument(raw bson.M) document.Document {
	d := make(document.Document, len(raw))
	for k, v := range raw {
		if oid, ok := v.(primitive.ObjectID); ok && k == document.IDField {
			d[k] = oid.Hex()
			continue
		}
		d[k] = v
	}
	return d
}

// duplicateError maps a driver duplicate-key error onto the offending fields.
func (m *MongoRepo) duplicateError(err error) error {
	var fields []string
	for _, f := range m.unique {
		if strings.Contains(err.Error(), IndexName(f)) {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		fields = m.unique
	}
	return &DuplicateError{Fields: fields}
}

func (m *MongoRepo) Insert(ctx context.Context, fields document.Document) (document.Document, error) {
	oid := primitive.NewObjectID()
	rec := bson.M{}
	for k, v := range fields.Fields() {
		rec[k] = v
	}
	rec[document.IDField] = oid
	if _, err := m.col.InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, m.duplicateError(err)
		}
		return nil, fmt.Errorf("insert into %s: %w", m.col.Name(), err)
	}
	return toDocument(rec), nil
}

func (m *MongoRepo) Get(ctx context.Context, id string) (document.Document, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var raw bson.M
	if err := m.col.FindOne(ctx, bson.M{document.IDField: oid}).Decode(&raw); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find %s in %s: %w", id, m.col.Name(), err)
	}
	return toDocument(raw), nil
}

func (m *MongoRepo) List(ctx context.Context) ([]document.Document, error) {
	cur, err := m.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", m.col.Name(), err)
	}
	defer cur.Close(ctx)
	out := []document.Document{}
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, err
		}
		out = append(out, toDocument(raw))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", m.col.Name(), err)
	}
	return out, nil
}

// Update applies fields with $set and returns the post-update document.
func (m *MongoRepo) Update(ctx context.Context, id string, fields document.Document) (document.Document, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	set := bson.M{}
	for k, v := range fields.Fields() {
		set[k] = v
	}
	if len(set) == 0 {
		return m.Get(ctx, id)
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var raw bson.M
	err = m.col.FindOneAndUpdate(ctx, bson.M{document.IDField: oid}, bson.M{"$set": set}, opts).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, m.duplicateError(err)
		}
		return nil, fmt.Errorf("update %s in %s: %w", id, m.col.Name(), err)
	}
	return toDocument(raw), nil
}

func (m *MongoRepo) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := m.col.DeleteOne(ctx, bson.M{document.IDField: oid})
	if err != nil {
		return fmt.Errorf("delete %s from %s: %w", id, m.col.Name(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
