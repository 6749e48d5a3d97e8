package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SectionsCollection holds one document per page section.
const SectionsCollection = "content_sections"

type mongoSection struct {
	ID        string    `bson:"_id"`
	Page      string    `bson:"page"`
	Section   string    `bson:"section"`
	Data      string    `bson:"data"`
	Version   int64     `bson:"version"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (m mongoSection) section() Section {
	return Section{
		Page:      m.Page,
		Name:      m.Section,
		Data:      json.RawMessage(m.Data),
		Version:   m.Version,
		UpdatedAt: m.UpdatedAt,
	}
}

func mongoID(page, name string) string {
	return page + "/" + name
}

// MongoStore keeps sections in a MongoDB collection. Section data is
// stored as the JSON text the client sent.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// ConnectMongo dials uri and prepares the sections collection.
func ConnectMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	st := NewMongoStore(client, client.Database(database).Collection(SectionsCollection))
	if err := st.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return st, nil
}

// NewMongoStore uses coll on an already connected client.
func NewMongoStore(client *mongo.Client, coll *mongo.Collection) *MongoStore {
	return &MongoStore{client: client, coll: coll}
}

// EnsureIndexes creates the unique (page, section) index.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "page", Value: 1}, {Key: "section", Value: 1}},
		Options: options.Index().SetName("page_section").SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create mongo index: %w", err)
	}
	return nil
}

func (s *MongoStore) Document(ctx context.Context, page string) (map[string]Section, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"page": page})
	if err != nil {
		return nil, fmt.Errorf("load document %s: %w", page, err)
	}
	var rows []mongoSection
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", page, err)
	}

	sections := make(map[string]Section, len(rows))
	for _, row := range rows {
		sections[row.Section] = row.section()
	}
	return sections, nil
}

func (s *MongoStore) Section(ctx context.Context, page, name string) (Section, bool, error) {
	var row mongoSection
	err := s.coll.FindOne(ctx, bson.M{"_id": mongoID(page, name)}).Decode(&row)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Section{}, false, nil
	}
	if err != nil {
		return Section{}, false, fmt.Errorf("load section %s.%s: %w", page, name, err)
	}
	return row.section(), true, nil
}

func (s *MongoStore) Seed(ctx context.Context, page, name string, data json.RawMessage) (Section, error) {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": mongoID(page, name)},
		bson.M{"$setOnInsert": bson.M{
			"page":       page,
			"section":    name,
			"data":       string(data),
			"version":    int64(1),
			"updated_at": time.Now().UTC(),
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return Section{}, fmt.Errorf("seed section %s.%s: %w", page, name, err)
	}

	stored, _, err := s.Section(ctx, page, name)
	return stored, err
}

func (s *MongoStore) Put(ctx context.Context, page, name string, data json.RawMessage, expectedVersion int64) (Section, error) {
	filter := bson.M{"_id": mongoID(page, name)}
	if expectedVersion > 0 {
		filter["version"] = expectedVersion
	}
	update := bson.M{
		"$set": bson.M{
			"page":       page,
			"section":    name,
			"data":       string(data),
			"updated_at": time.Now().UTC(),
		},
		"$inc": bson.M{"version": int64(1)},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(expectedVersion == 0).
		SetReturnDocument(options.After)

	var row mongoSection
	err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&row)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Section{}, ErrVersionConflict
	}
	if err != nil {
		return Section{}, fmt.Errorf("save section %s.%s: %w", page, name, err)
	}
	return row.section(), nil
}

// Replace runs in a transaction. Standalone servers reject transactions;
// there the new sections are written before stale ones are removed.
func (s *MongoStore) Replace(ctx context.Context, page string, sections map[string]json.RawMessage, keep func(string) bool) error {
	err := s.client.UseSession(ctx, func(sc mongo.SessionContext) error {
		_, err := sc.WithTransaction(sc, func(tx mongo.SessionContext) (interface{}, error) {
			return nil, s.replace(tx, page, sections, keep)
		})
		return err
	})
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.HasErrorCode(illegalOperationCode) {
		return s.replace(ctx, page, sections, keep)
	}
	return err
}

// illegalOperationCode is reported for transactions on a standalone server.
const illegalOperationCode = 20

func (s *MongoStore) replace(ctx context.Context, page string, sections map[string]json.RawMessage, keep func(string) bool) error {
	current, err := s.Document(ctx, page)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := s.Put(ctx, page, name, sections[name], 0); err != nil {
			return fmt.Errorf("replace document %s: %w", page, err)
		}
	}

	var stale []string
	for name := range current {
		if _, ok := sections[name]; ok {
			continue
		}
		if keep != nil && keep(name) {
			continue
		}
		stale = append(stale, mongoID(page, name))
	}
	if len(stale) > 0 {
		sort.Strings(stale)
		if _, err := s.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": stale}}); err != nil {
			return fmt.Errorf("replace document %s: %w", page, err)
		}
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
