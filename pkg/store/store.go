// Package store persists named graphs in MongoDB.
//
// Graphs are stored in their wire format (pkg/graph) as BSON documents keyed
// by name, so a CI job can normalize a dependency set once and later jobs can
// fetch the reduced or closed form by name instead of recomputing it.
package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/toposcope/toposcope/pkg/errors"
	"github.com/toposcope/toposcope/pkg/graph"
)

const collectionName = "graphs"

// Store is a Mongo-backed named graph store.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// document is the stored shape: the wire-format graph plus bookkeeping.
type document struct {
	Name      string      `bson:"name"`
	Graph     graph.Graph `bson:"graph"`
	UpdatedAt time.Time   `bson:"updated_at"`
}

// New connects to MongoDB at uri and uses the given database. The connection
// is verified with a ping, and a unique index on name is ensured so writes
// from concurrent clients cannot duplicate a graph.
func New(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to %s", uri)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ping %s", uri)
	}

	coll := client.Database(database).Collection(collectionName)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ensure index")
	}

	return &Store{client: client, coll: coll}, nil
}

// Save upserts a graph under the given name.
func (s *Store) Save(ctx context.Context, name string, g graph.Graph) error {
	if err := errors.ValidateGraphName(name); err != nil {
		return err
	}
	doc := document{Name: name, Graph: g, UpdatedAt: time.Now().UTC()}
	_, err := s.coll.ReplaceOne(ctx,
		bson.D{{Key: "name", Value: name}},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "save graph %s", name)
	}
	return nil
}

// Load fetches the graph stored under name.
func (s *Store) Load(ctx context.Context, name string) (graph.Graph, error) {
	if err := errors.ValidateGraphName(name); err != nil {
		return graph.Graph{}, err
	}
	var doc document
	err := s.coll.FindOne(ctx, bson.D{{Key: "name", Value: name}}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return graph.Graph{}, errors.New(errors.ErrCodeGraphNotFound, "no graph named %s", name)
	}
	if err != nil {
		return graph.Graph{}, errors.Wrap(errors.ErrCodeStore, err, "load graph %s", name)
	}
	return doc.Graph, nil
}

// List returns the names of all stored graphs in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	cur, err := s.coll.Find(ctx, bson.D{},
		options.Find().SetProjection(bson.D{{Key: "name", Value: 1}}).SetSort(bson.D{{Key: "name", Value: 1}}),
	)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list graphs")
	}
	defer cur.Close(ctx)

	var names []string
	for cur.Next(ctx) {
		var doc document
		if err := cur.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStore, err, "decode graph document")
		}
		names = append(names, doc.Name)
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "iterate graphs")
	}
	return names, nil
}

// Delete removes the graph stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateGraphName(name); err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete graph %s", name)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeGraphNotFound, "no graph named %s", name)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
