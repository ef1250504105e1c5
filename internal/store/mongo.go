package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"badge-verifier/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "employees"

type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewMongoStore(client *mongo.Client, database string) *MongoStore {
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collectionName),
	}
}

func (s *MongoStore) Name() string { return "mongo" }

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

type mongoRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	DOB         string             `bson:"dob"`
	JoiningDate string             `bson:"joining_date"`
	Post        string             `bson:"post"`
	Department  string             `bson:"department"`
	EmployeeID  string             `bson:"employee_id"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (m mongoRecord) record() models.Record {
	return models.Record{
		ID:          m.ID.Hex(),
		EmployeeID:  m.EmployeeID,
		Name:        m.Name,
		DOB:         m.DOB,
		JoiningDate: m.JoiningDate,
		Post:        m.Post,
		Department:  m.Department,
		CreatedAt:   m.CreatedAt,
	}
}

var newestSort = bson.D{{Key: "created_at", Value: -1}}

// mongoFilter matches term as a literal, case-insensitive substring.
func mongoFilter(term string, field Field) bson.M {
	if term == "" {
		return bson.M{}
	}
	re := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	cols := field.columns()
	if len(cols) == 1 {
		return bson.M{string(cols[0]): re}
	}
	or := bson.A{}
	for _, f := range cols {
		or = append(or, bson.M{string(f): re})
	}
	return bson.M{"$or": or}
}

func (s *MongoStore) Insert(ctx context.Context, rec *models.Record) (string, error) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	doc := mongoRecord{
		ID:          primitive.NewObjectID(),
		Name:        rec.Name,
		DOB:         rec.DOB,
		JoiningDate: rec.JoiningDate,
		Post:        rec.Post,
		Department:  rec.Department,
		EmployeeID:  rec.EmployeeID,
		CreatedAt:   rec.CreatedAt,
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("insert badge record: %w", err)
	}
	rec.ID = doc.ID.Hex()
	return rec.ID, nil
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (models.Record, error) {
	var doc mongoRecord
	err := s.coll.FindOne(ctx, filter, opts...).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Record{}, ErrNotFound
	}
	if err != nil {
		return models.Record{}, err
	}
	return doc.record(), nil
}

func (s *MongoStore) FindByRecordID(ctx context.Context, id string) (models.Record, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// not an ObjectID, so it cannot name a document here
		return models.Record{}, ErrNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *MongoStore) FindByEmployeeID(ctx context.Context, employeeID string) (models.Record, error) {
	return s.findOne(ctx, bson.M{"employee_id": employeeID}, options.FindOne().SetSort(newestSort))
}

func (s *MongoStore) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Record, error) {
	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []mongoRecord
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]models.Record, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.record())
	}
	return out, nil
}

func (s *MongoStore) List(ctx context.Context, q ListQuery) (Page, error) {
	filter := mongoFilter(q.Term, q.Field)
	total, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return Page{Records: []models.Record{}}, fmt.Errorf("count badge records: %w", err)
	}
	opts := options.Find().
		SetSort(newestSort).
		SetSkip(int64(q.Offset())).
		SetLimit(int64(q.PerPage))
	recs, err := s.find(ctx, filter, opts)
	if err != nil {
		return Page{Records: []models.Record{}, Total: int(total)}, fmt.Errorf("list badge records: %w", err)
	}
	return Page{Records: recs, Total: int(total)}, nil
}

func (s *MongoStore) Search(ctx context.Context, term string, field Field, limit int) ([]models.Record, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	opts := options.Find().SetSort(newestSort).SetLimit(int64(limit))
	recs, err := s.find(ctx, mongoFilter(term, field), opts)
	if err != nil {
		return []models.Record{}, fmt.Errorf("search badge records: %w", err)
	}
	return recs, nil
}
