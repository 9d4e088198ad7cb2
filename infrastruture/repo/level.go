package repo

import (
	"context"
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// levelDocument is the stored shape of a level record. IDs are kept as
// strings so records stay readable from the mongo shell.
type levelDocument struct {
	ID           string          `bson:"_id"`
	Params       game.Params     `bson:"params"`
	ClearedWalls []maze.Position `bson:"clearedWalls"`
	CreatedAt    time.Time       `bson:"createdAt"`
	UpdatedAt    time.Time       `bson:"updatedAt"`
}

func (d *levelDocument) record() (*game.Record, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, errors.New("corrupt level id: " + d.ID)
	}
	return &game.Record{
		ID:           id,
		Params:       d.Params,
		ClearedWalls: d.ClearedWalls,
		CreatedAt:    d.CreatedAt,
	}, nil
}

// LevelRepo handles the persistence of level records.
type LevelRepo struct {
	collection *mongo.Collection
}

// NewLevelRepo creates a new LevelRepo with the given MongoDB client, database name, and collection name.
func NewLevelRepo(client *mongo.Client, dbName, collectionName string) *LevelRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &LevelRepo{
		collection: collection,
	}
}

// Save inserts or replaces a level record.
func (l *LevelRepo) Save(ctx context.Context, r game.Record) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	cleared := r.ClearedWalls
	if cleared == nil {
		cleared = []maze.Position{}
	}

	filter := bson.M{"_id": r.ID.String()}
	update := bson.M{
		"$set": bson.M{
			"params":       r.Params,
			"clearedWalls": cleared,
			"createdAt":    r.CreatedAt,
			"updatedAt":    time.Now(),
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := l.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}
	return nil
}

// ByID retrieves a level record by its ID.
// Returns i.ErrRecordNotFound if there is none.
func (l *LevelRepo) ByID(ctx context.Context, id uuid.UUID) (*game.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": id.String()}
	var doc levelDocument
	if err := l.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, i.ErrRecordNotFound
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return doc.record()
}

// AppendClearedWall pushes pos onto the record's cleared walls.
func (l *LevelRepo) AppendClearedWall(ctx context.Context, id uuid.UUID, pos maze.Position) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	filter := bson.M{"_id": id.String()}
	update := bson.M{
		"$push": bson.M{"clearedWalls": pos},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	res, err := l.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return errors.New("unexpected error: " + err.Error())
	}
	if res.MatchedCount == 0 {
		return i.ErrRecordNotFound
	}
	return nil
}
