package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jamiebhpark/MentalHealthApp/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// parentKey tags every Mongo document with the path of the document that owns its collection,
// so "users/u1/emotions" and "users/u2/emotions" share one physical "emotions" collection.
const parentKey = "_parent"

// MongoStore maps collection paths onto MongoDB collections.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore connects to uri and uses the named database.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return &MongoStore{client: client, db: client.Database(database)}, nil
}

// EnsureIndexes creates the (parent, field desc) index the recent-window queries rely on.
func (s *MongoStore) EnsureIndexes(ctx context.Context, collection, field string) error {
	_, err := s.db.Collection(collection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: parentKey, Value: 1}, {Key: field, Value: -1}},
	})
	if err != nil {
		return models.NewStoreUnavailableError("create index", err)
	}
	return nil
}

func (s *MongoStore) CreateDocument(ctx context.Context, collectionPath string, fields Fields) (string, error) {
	parent, collection, err := splitPath(collectionPath)
	if err != nil {
		return "", err
	}

	id := primitive.NewObjectID().Hex()
	onInsert := bson.M{parentKey: parent}
	currentDate := bson.M{}
	for k, v := range fields {
		if _, ok := v.(serverTimestamp); ok {
			currentDate[k] = bson.M{"$type": "date"}
			continue
		}
		onInsert[k] = normalizeValue(v)
	}

	update := bson.M{"$setOnInsert": onInsert}
	if len(currentDate) > 0 {
		update["$currentDate"] = currentDate
	}

	_, err = s.db.Collection(collection).UpdateOne(ctx,
		bson.M{"_id": id},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return "", models.NewStoreUnavailableError("create", err)
	}
	return id, nil
}

func (s *MongoStore) GetDocuments(ctx context.Context, collectionPath string, q Query) ([]Document, error) {
	parent, collection, err := splitPath(collectionPath)
	if err != nil {
		return nil, err
	}

	conds := bson.A{bson.M{parentKey: parent}}
	for _, f := range q.Filters {
		cond, err := mongoCondition(f)
		if err != nil {
			return nil, err
		}
		conds = append(conds, cond)
	}

	findOpts := options.Find()
	if q.OrderBy != nil {
		dir := 1
		if q.OrderBy.Direction == Descending {
			dir = -1
		}
		conds = append(conds, bson.M{q.OrderBy.Field: bson.M{"$exists": true}})
		findOpts.SetSort(bson.D{{Key: q.OrderBy.Field, Value: dir}, {Key: "_id", Value: 1}})
	} else {
		findOpts.SetSort(bson.D{{Key: "_id", Value: 1}})
	}
	if q.Limit > 0 {
		findOpts.SetLimit(int64(q.Limit))
	}

	cursor, err := s.db.Collection(collection).Find(ctx, bson.M{"$and": conds}, findOpts)
	if err != nil {
		return nil, models.NewStoreUnavailableError("query", err)
	}
	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, models.NewStoreUnavailableError("query", err)
	}

	docs := make([]Document, 0, len(raw))
	for _, m := range raw {
		id, fields := fromBSONDocument(m)
		docs = append(docs, Document{ID: id, Fields: fields})
	}
	return docs, nil
}

func (s *MongoStore) UpdateField(ctx context.Context, collectionPath, id, field string, op FieldOp, opts ...UpdateOption) error {
	parent, collection, err := splitPath(collectionPath)
	if err != nil {
		return err
	}
	o := resolveUpdateOptions(opts)

	var update bson.M
	switch op.Kind {
	case OpSet:
		update = bson.M{"$set": bson.M{field: normalizeValue(op.Value)}}
	case OpIncrement:
		delta, _ := toInt64(op.Value)
		update = bson.M{"$inc": bson.M{field: delta}}
	case OpAppendUnique:
		update = bson.M{"$addToSet": bson.M{field: normalizeValue(op.Value)}}
	default:
		return fmt.Errorf("unsupported field op %d", op.Kind)
	}

	res, err := s.db.Collection(collection).UpdateOne(ctx,
		bson.M{"_id": id, parentKey: parent},
		update,
		options.Update().SetUpsert(o.Upsert),
	)
	if err != nil {
		return models.NewStoreUnavailableError("update", err)
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) GetDocument(ctx context.Context, collectionPath, id string) (Fields, error) {
	parent, collection, err := splitPath(collectionPath)
	if err != nil {
		return nil, err
	}

	var m bson.M
	err = s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id, parentKey: parent}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, models.NewStoreUnavailableError("read", err)
	}
	_, fields := fromBSONDocument(m)
	return fields, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		return models.NewStoreUnavailableError("ping", err)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func mongoCondition(f Filter) (bson.M, error) {
	value := normalizeValue(f.Value)
	switch f.Op {
	case Equal:
		return bson.M{f.Field: value}, nil
	case GreaterThan:
		return bson.M{f.Field: bson.M{"$gt": value}}, nil
	case GreaterOrEqual:
		return bson.M{f.Field: bson.M{"$gte": value}}, nil
	case LessThan:
		return bson.M{f.Field: bson.M{"$lt": value}}, nil
	case LessOrEqual:
		return bson.M{f.Field: bson.M{"$lte": value}}, nil
	}
	return nil, fmt.Errorf("unsupported filter operator %q", f.Op)
}

func fromBSONDocument(m bson.M) (string, Fields) {
	var id string
	fields := make(Fields, len(m))
	for k, v := range m {
		switch k {
		case "_id":
			id = fmt.Sprint(v)
		case parentKey:
		default:
			fields[k] = fromBSONValue(v)
		}
	}
	return id, fields
}

func fromBSONValue(v any) any {
	switch tv := v.(type) {
	case primitive.DateTime:
		return tv.Time().UTC()
	case primitive.Timestamp:
		return time.Unix(int64(tv.T), 0).UTC()
	case int32:
		return int64(tv)
	case primitive.A:
		out := make([]any, len(tv))
		for i, e := range tv {
			out[i] = fromBSONValue(e)
		}
		return out
	}
	return normalizeValue(v)
}
