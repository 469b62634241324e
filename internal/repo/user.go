package repo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/storefront/backend/internal/models"
)

func (r *MongoRepo) CreateUser(ctx context.Context, u *models.User) error {
	res, err := r.DB.Users.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

func (r *MongoRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.DB.Users.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *MongoRepo) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := r.DB.Users.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *MongoRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	cur, err := r.DB.Users.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *MongoRepo) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	cur, err := r.DB.Users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *MongoRepo) UpdateUser(ctx context.Context, u *models.User) error {
	update := bson.M{"$set": bson.M{
		"name":     u.Name,
		"email":    u.Email,
		"password": u.Password,
		"is_admin": u.IsAdmin,
	}}
	res, err := r.DB.Users.UpdateOne(ctx, bson.M{"_id": u.ID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.DB.Users.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddWishlistEntry appends the entry only if no existing entry references the
// same product. The membership check and the push are one conditional update,
// so two concurrent adds of the same product cannot both succeed.
func (r *MongoRepo) AddWishlistEntry(ctx context.Context, userID primitive.ObjectID, entry models.WishlistEntry) error {
	filter := bson.M{
		"_id":              userID,
		"wishlist.product": bson.M{"$ne": entry.Product},
	}
	res, err := r.DB.Users.UpdateOne(ctx, filter, bson.M{"$push": bson.M{"wishlist": entry}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// No match means either the user is gone or the product is already
		// saved; one extra read tells the two apart.
		if _, err := r.GetUserByID(ctx, userID); err != nil {
			return err
		}
		return ErrDuplicate
	}
	return nil
}

// RemoveWishlistEntry pulls the entry referencing the product in a single
// update keyed by product id alone. The second return reports whether an
// entry was actually removed.
func (r *MongoRepo) RemoveWishlistEntry(ctx context.Context, userID, productID primitive.ObjectID) (bool, error) {
	update := bson.M{"$pull": bson.M{"wishlist": bson.M{"product": productID}}}
	res, err := r.DB.Users.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		return false, ErrNotFound
	}
	return res.ModifiedCount > 0, nil
}
