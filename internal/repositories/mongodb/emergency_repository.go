package mongodb

import (
	"context"
	"fmt"

	"fleetpulse/internal/models"
	"fleetpulse/internal/repositories/interfaces"
	"fleetpulse/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type emergencyRepository struct {
	collection *mongo.Collection
}

func NewEmergencyRepository(db *mongo.Database) interfaces.EmergencyRepository {
	return &emergencyRepository{
		collection: db.Collection(database.CollectionEmergencies),
	}
}

func (r *emergencyRepository) Create(ctx context.Context, emergency *models.Emergency) error {
	emergency.ID = primitive.NewObjectID()
	emergency.CreatedAt = now()
	emergency.UpdatedAt = emergency.CreatedAt

	if _, err := r.collection.InsertOne(ctx, emergency); err != nil {
		return wrapWriteError("create emergency", err)
	}

	return nil
}

func (r *emergencyRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Emergency, error) {
	var emergency models.Emergency
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&emergency); err != nil {
		return nil, wrapFindError("get emergency", err)
	}
	return &emergency, nil
}

func (r *emergencyRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Emergency, error) {
	set := bson.M{"updated_at": now()}
	for k, v := range updates {
		set[k] = v
	}

	var emergency models.Emergency
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, returnAfter()).Decode(&emergency)
	if err != nil {
		return nil, wrapFindError("update emergency", err)
	}

	return &emergency, nil
}

func (r *emergencyRepository) ListEnriched(ctx context.Context) ([]*models.EmergencyListItem, error) {
	pipeline := mongo.Pipeline{
		lookupStage(database.CollectionCars, "car_id", "_id", "car"),
		unwindStage("$car", false),
		lookupStage(database.CollectionDrivers, "car.driver_id", "_id", "driver"),
		unwindStage("$driver", true),
		{{Key: "$project", Value: bson.M{
			"_id":             0,
			"id":              "$_id",
			"status":          1,
			"car_id":          1,
			"car_name":        "$car.name",
			"driver_phone_no": bson.M{"$ifNull": bson.A{"$driver.phone_no", ""}},
			"created_at":      1,
		}}},
		sortStage("car_name", "id"),
	}

	items, err := aggregateAll[models.EmergencyListItem](ctx, r.collection, pipeline, "emergencies")
	if err != nil {
		return nil, fmt.Errorf("failed to list emergencies: %w", err)
	}
	return items, nil
}
