package store

import (
	"context"
	"os"
	"reflect"
	"testing"

	"badge-verifier/internal/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMongoFilter(t *testing.T) {
	tests := []struct {
		name  string
		term  string
		field Field
		want  bson.M
	}{
		{"empty term matches all", "", FieldName, bson.M{}},
		{
			"single field quotes regex metacharacters",
			"a.b(",
			FieldEmployeeID,
			bson.M{"employee_id": primitive.Regex{Pattern: `a\.b\(`, Options: "i"}},
		},
		{
			"all fields is an $or",
			"smith",
			FieldAll,
			bson.M{"$or": bson.A{
				bson.M{"name": primitive.Regex{Pattern: "smith", Options: "i"}},
				bson.M{"employee_id": primitive.Regex{Pattern: "smith", Options: "i"}},
				bson.M{"department": primitive.Regex{Pattern: "smith", Options: "i"}},
				bson.M{"post": primitive.Regex{Pattern: "smith", Options: "i"}},
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mongoFilter(tt.term, tt.field); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("mongoFilter() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Set TEST_MONGODB_URI to a disposable server to run these.
func newTestMongoStore(t *testing.T) *MongoStore {
	t.Helper()
	uri := os.Getenv("TEST_MONGODB_URI")
	if uri == "" {
		t.Skip("TEST_MONGODB_URI not set")
	}
	ctx := context.Background()
	client, err := db.NewMongoClient(ctx, uri)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	s := NewMongoStore(client, "badge_verifier_test")
	if err := s.coll.Drop(ctx); err != nil {
		t.Fatalf("drop: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMongoStoreContract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) Store { return newTestMongoStore(t) })
}
