package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fleetpulse/internal/repositories/interfaces"
	"fleetpulse/internal/services"
	"fleetpulse/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CacheService is the optional read-through cache. A nil value disables it.
type CacheService = services.CacheService

// now is truncated to the store's precision so returned records match what
// a later read produces.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// wrapWriteError maps driver errors onto repository sentinels.
func wrapWriteError(op string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("failed to %s: %w", op, interfaces.ErrDuplicate)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func wrapFindError(op string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("failed to %s: %w", op, interfaces.ErrNotFound)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// containsMatch adds a case-insensitive substring condition for every filter
// value that was provided.
func containsMatch(match bson.M, field string, value *string) {
	if value == nil {
		return
	}
	match[field] = utils.ContainsPattern(value)
}

func aggregateAll[T any](ctx context.Context, collection *mongo.Collection, pipeline mongo.Pipeline, what string) ([]*T, error) {
	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate %s: %w", what, err)
	}
	defer cursor.Close(ctx)

	results := make([]*T, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", what, err)
	}
	return results, nil
}

func aggregateOne[T any](ctx context.Context, collection *mongo.Collection, pipeline mongo.Pipeline, what string) (*T, error) {
	results, err := aggregateAll[T](ctx, collection, pipeline, what)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("failed to get %s: %w", what, interfaces.ErrNotFound)
	}
	return results[0], nil
}

func returnAfter() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

// stage helpers keep pipelines readable
func matchStage(m bson.M) bson.D {
	return bson.D{{Key: "$match", Value: m}}
}

func sortStage(keys ...string) bson.D {
	sort := bson.D{}
	for _, k := range keys {
		sort = append(sort, bson.E{Key: k, Value: 1})
	}
	return bson.D{{Key: "$sort", Value: sort}}
}

func lookupStage(from, localField, foreignField, as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.M{
		"from":         from,
		"localField":   localField,
		"foreignField": foreignField,
		"as":           as,
	}}}
}

func unwindStage(path string, preserveEmpty bool) bson.D {
	return bson.D{{Key: "$unwind", Value: bson.M{
		"path":                       path,
		"preserveNullAndEmptyArrays": preserveEmpty,
	}}}
}

// idStringField exposes _id as a string so an id filter can match a
// substring of the hex form.
func idStringField() bson.D {
	return bson.D{{Key: "$addFields", Value: bson.M{"id_string": bson.M{"$toString": "$_id"}}}}
}
