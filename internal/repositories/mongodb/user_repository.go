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

type userRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) interfaces.UserRepository {
	return &userRepository{
		collection: db.Collection(database.CollectionUsers),
	}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now()
	user.UpdatedAt = user.CreatedAt

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		return wrapWriteError("create user", err)
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id}, "get user")
}

// Authentication operations
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username}, "get user by username")
}

func (r *userRepository) GetByDriverID(ctx context.Context, driverID primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"driver_id": driverID}, "get user by driver")
}

func (r *userRepository) UpdateByDriverID(ctx context.Context, driverID primitive.ObjectID, updates map[string]interface{}) (*models.User, error) {
	set := bson.M{"updated_at": now()}
	for k, v := range updates {
		set[k] = v
	}

	var user models.User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"driver_id": driverID}, bson.M{"$set": set}, returnAfter()).Decode(&user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, wrapWriteError("update user", err)
		}
		return nil, wrapFindError("update user", err)
	}

	return &user, nil
}

func (r *userRepository) DeleteByDriverID(ctx context.Context, driverID primitive.ObjectID) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"driver_id": driverID}); err != nil {
		return fmt.Errorf("failed to delete user by driver: %w", err)
	}
	return nil
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M, op string) (*models.User, error) {
	var user models.User
	if err := r.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, wrapFindError(op, err)
	}
	return &user, nil
}
