package mongodb

import (
	"context"
	"errors"
	"fmt"

	"fleetpulse/internal/models"
	"fleetpulse/internal/repositories/interfaces"
	"fleetpulse/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type driverRepository struct {
	collection *mongo.Collection
}

func NewDriverRepository(db *mongo.Database) interfaces.DriverRepository {
	return &driverRepository{
		collection: db.Collection(database.CollectionDrivers),
	}
}

// Basic CRUD operations
func (r *driverRepository) Create(ctx context.Context, driver *models.Driver) error {
	driver.ID = primitive.NewObjectID()
	driver.CreatedAt = now()
	driver.UpdatedAt = driver.CreatedAt

	if _, err := r.collection.InsertOne(ctx, driver); err != nil {
		return wrapWriteError("create driver", err)
	}

	return nil
}

func (r *driverRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Driver, error) {
	var driver models.Driver
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&driver); err != nil {
		return nil, wrapFindError("get driver", err)
	}
	return &driver, nil
}

func (r *driverRepository) GetByName(ctx context.Context, firstName, lastName string) (*models.Driver, error) {
	var driver models.Driver
	err := r.collection.FindOne(ctx, bson.M{"first_name": firstName, "last_name": lastName}).Decode(&driver)
	if err != nil {
		return nil, wrapFindError("get driver by name", err)
	}
	return &driver, nil
}

func (r *driverRepository) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *driverRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Driver, error) {
	set := bson.M{"updated_at": now()}
	for k, v := range updates {
		set[k] = v
	}

	var driver models.Driver
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, returnAfter()).Decode(&driver)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, wrapWriteError("update driver", err)
		}
		return nil, wrapFindError("update driver", err)
	}

	return &driver, nil
}

func (r *driverRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete driver: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("failed to delete driver: %w", interfaces.ErrNotFound)
	}
	return nil
}

// Listing
func (r *driverRepository) viewPipeline(match bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		lookupStage(database.CollectionUsers, "_id", "driver_id", "user"),
		idStringField(),
		{{Key: "$addFields", Value: bson.M{
			"username": bson.M{"$ifNull": bson.A{bson.M{"$arrayElemAt": bson.A{"$user.username", 0}}, ""}},
		}}},
		matchStage(match),
		{{Key: "$project", Value: bson.M{
			"_id":        0,
			"id":         "$_id",
			"name":       bson.M{"$concat": bson.A{"$first_name", " ", "$last_name"}},
			"first_name": 1,
			"last_name":  1,
			"phone_no":   1,
			"username":   1,
		}}},
		sortStage("first_name", "last_name"),
	}
}

func (r *driverRepository) GetView(ctx context.Context, id primitive.ObjectID) (*models.DriverView, error) {
	return aggregateOne[models.DriverView](ctx, r.collection, r.viewPipeline(bson.M{"_id": id}), "driver")
}

func (r *driverRepository) List(ctx context.Context, filter *models.DriverFilter) ([]*models.DriverView, error) {
	match := bson.M{}
	if filter != nil {
		containsMatch(match, "id_string", filter.ID)
		containsMatch(match, "first_name", filter.FirstName)
		containsMatch(match, "last_name", filter.LastName)
		containsMatch(match, "phone_no", filter.PhoneNo)
		containsMatch(match, "username", filter.Username)
	}
	return aggregateAll[models.DriverView](ctx, r.collection, r.viewPipeline(match), "drivers")
}

func (r *driverRepository) ListNames(ctx context.Context) ([]*models.NamedItem, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$project", Value: bson.M{
			"_id":  0,
			"id":   "$_id",
			"name": bson.M{"$concat": bson.A{"$first_name", " ", "$last_name"}},
		}}},
		sortStage("name"),
	}
	return aggregateAll[models.NamedItem](ctx, r.collection, pipeline, "driver names")
}
