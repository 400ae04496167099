package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fleetpulse/internal/models"
	"fleetpulse/internal/repositories/interfaces"
	"fleetpulse/internal/utils"
	"fleetpulse/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type carRepository struct {
	collection *mongo.Collection
	cache      CacheService
	cacheTTL   time.Duration
}

// NewCarRepository builds the car store. Lookups by id go through cache when
// one is given.
func NewCarRepository(db *mongo.Database, cache CacheService, cacheTTL time.Duration) interfaces.CarRepository {
	return &carRepository{
		collection: db.Collection(database.CollectionCars),
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

// Basic CRUD operations
func (r *carRepository) Create(ctx context.Context, car *models.Car) error {
	car.ID = primitive.NewObjectID()
	car.CreatedAt = now()
	car.UpdatedAt = car.CreatedAt

	if _, err := r.collection.InsertOne(ctx, car); err != nil {
		return wrapWriteError("create car", err)
	}

	return nil
}

func (r *carRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Car, error) {
	if car := r.getCarFromCache(ctx, id); car != nil {
		return car, nil
	}

	var car models.Car
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&car); err != nil {
		return nil, wrapFindError("get car", err)
	}

	r.cacheCar(ctx, &car)

	return &car, nil
}

func (r *carRepository) GetByName(ctx context.Context, name string) (*models.Car, error) {
	var car models.Car
	if err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&car); err != nil {
		return nil, wrapFindError("get car by name", err)
	}
	return &car, nil
}

func (r *carRepository) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	_, err := r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *carRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Car, error) {
	set := bson.M{"updated_at": now()}
	for k, v := range updates {
		set[k] = v
	}

	var car models.Car
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, returnAfter()).Decode(&car)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, wrapWriteError("update car", err)
		}
		return nil, wrapFindError("update car", err)
	}

	r.invalidateCarCache(ctx, id)

	return &car, nil
}

func (r *carRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete car: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("failed to delete car: %w", interfaces.ErrNotFound)
	}

	r.invalidateCarCache(ctx, id)

	return nil
}

func (r *carRepository) ClearDriver(ctx context.Context, driverID primitive.ObjectID) (int64, error) {
	filter := bson.M{"driver_id": driverID}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return 0, fmt.Errorf("failed to find cars by driver: %w", err)
	}
	var affected []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &affected); err != nil {
		return 0, fmt.Errorf("failed to decode cars by driver: %w", err)
	}

	result, err := r.collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"driver_id": nil, "updated_at": now()}})
	if err != nil {
		return 0, fmt.Errorf("failed to clear driver from cars: %w", err)
	}

	for _, car := range affected {
		r.invalidateCarCache(ctx, car.ID)
	}

	return result.ModifiedCount, nil
}

// Listing
func (r *carRepository) viewPipeline(match bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		lookupStage(database.CollectionDrivers, "driver_id", "_id", "driver"),
		unwindStage("$driver", true),
		idStringField(),
		{{Key: "$addFields", Value: bson.M{
			"driver_name": bson.M{"$ifNull": bson.A{
				bson.M{"$concat": bson.A{"$driver.first_name", " ", "$driver.last_name"}},
				"",
			}},
		}}},
		matchStage(match),
		{{Key: "$project", Value: bson.M{
			"_id":         0,
			"id":          "$_id",
			"name":        1,
			"driver_id":   1,
			"driver_name": 1,
		}}},
		sortStage("name"),
	}
}

func (r *carRepository) GetView(ctx context.Context, id primitive.ObjectID) (*models.CarView, error) {
	return aggregateOne[models.CarView](ctx, r.collection, r.viewPipeline(bson.M{"_id": id}), "car")
}

func (r *carRepository) List(ctx context.Context, filter *models.CarFilter) ([]*models.CarView, error) {
	match := bson.M{}
	if filter != nil {
		containsMatch(match, "id_string", filter.ID)
		containsMatch(match, "name", filter.Name)
		containsMatch(match, "driver_name", filter.DriverName)
	}
	return aggregateAll[models.CarView](ctx, r.collection, r.viewPipeline(match), "cars")
}

func (r *carRepository) ListNames(ctx context.Context) ([]*models.NamedItem, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$project", Value: bson.M{"_id": 0, "id": "$_id", "name": 1}}},
		sortStage("name"),
	}
	return aggregateAll[models.NamedItem](ctx, r.collection, pipeline, "car names")
}

// Helper methods
func carCacheKey(id primitive.ObjectID) string {
	return utils.CacheCarPrefix + id.Hex()
}

func (r *carRepository) cacheCar(ctx context.Context, car *models.Car) {
	if r.cache != nil {
		_ = r.cache.Set(ctx, carCacheKey(car.ID), car, r.cacheTTL)
	}
}

func (r *carRepository) getCarFromCache(ctx context.Context, id primitive.ObjectID) *models.Car {
	if r.cache == nil {
		return nil
	}

	var car models.Car
	if err := r.cache.Get(ctx, carCacheKey(id), &car); err != nil {
		return nil
	}

	return &car
}

func (r *carRepository) invalidateCarCache(ctx context.Context, id primitive.ObjectID) {
	if r.cache != nil {
		_ = r.cache.Delete(ctx, carCacheKey(id))
	}
}
