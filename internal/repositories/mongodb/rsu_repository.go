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

type rsuRepository struct {
	collection *mongo.Collection
}

func NewRSURepository(db *mongo.Database) interfaces.RSURepository {
	return &rsuRepository{
		collection: db.Collection(database.CollectionRSUs),
	}
}

func (r *rsuRepository) Create(ctx context.Context, rsu *models.RSU) error {
	rsu.ID = primitive.NewObjectID()
	rsu.CreatedAt = now()
	rsu.UpdatedAt = rsu.CreatedAt

	if _, err := r.collection.InsertOne(ctx, rsu); err != nil {
		return wrapWriteError("create rsu", err)
	}

	return nil
}

func (r *rsuRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.RSU, error) {
	var rsu models.RSU
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rsu); err != nil {
		return nil, wrapFindError("get rsu", err)
	}
	return &rsu, nil
}

func (r *rsuRepository) GetByName(ctx context.Context, name string) (*models.RSU, error) {
	var rsu models.RSU
	if err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&rsu); err != nil {
		return nil, wrapFindError("get rsu by name", err)
	}
	return &rsu, nil
}

func (r *rsuRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.RSU, error) {
	set := bson.M{"updated_at": now()}
	for k, v := range updates {
		set[k] = v
	}

	var rsu models.RSU
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, returnAfter()).Decode(&rsu)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, wrapWriteError("update rsu", err)
		}
		return nil, wrapFindError("update rsu", err)
	}

	return &rsu, nil
}

func (r *rsuRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete rsu: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("failed to delete rsu: %w", interfaces.ErrNotFound)
	}
	return nil
}

// Listing
func (r *rsuRepository) viewPipeline(match bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		idStringField(),
		matchStage(match),
		{{Key: "$project", Value: bson.M{
			"_id":               0,
			"id":                "$_id",
			"name":              1,
			"recommended_speed": 1,
		}}},
		sortStage("name"),
	}
}

func (r *rsuRepository) GetView(ctx context.Context, id primitive.ObjectID) (*models.RSUView, error) {
	return aggregateOne[models.RSUView](ctx, r.collection, r.viewPipeline(bson.M{"_id": id}), "rsu")
}

func (r *rsuRepository) List(ctx context.Context, filter *models.RSUFilter) ([]*models.RSUView, error) {
	match := bson.M{}
	if filter != nil {
		containsMatch(match, "id_string", filter.ID)
		containsMatch(match, "name", filter.Name)
		containsMatch(match, "recommended_speed", filter.RecommendedSpeed)
	}
	return aggregateAll[models.RSUView](ctx, r.collection, r.viewPipeline(match), "rsus")
}

func (r *rsuRepository) ListNames(ctx context.Context) ([]*models.NamedItem, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$project", Value: bson.M{"_id": 0, "id": "$_id", "name": 1}}},
		sortStage("name"),
	}
	return aggregateAll[models.NamedItem](ctx, r.collection, pipeline, "rsu names")
}
