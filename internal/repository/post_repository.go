package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AyushPal0/Mental-Wellness/internal/models"
	"github.com/AyushPal0/Mental-Wellness/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository handles community posts.
type PostRepository struct {
	collection *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{
		collection: db.Collection("posts"),
	}
}

// postWithAuthorsPipeline joins each post with its author and the authors of
// its comments. Missing users leave the author fields null.
func postWithAuthorsPipeline(match bson.M, skip, limit int64) mongo.Pipeline {
	pipeline := mongo.Pipeline{}
	if match != nil {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}
	pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}})
	if skip > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$skip", Value: skip}})
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}

	pipeline = append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "user_details",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$user_details",
			"preserveNullAndEmptyArrays": true,
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "comments.user_id",
			"foreignField": "_id",
			"as":           "comment_users",
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"user": bson.M{
				"_id":       "$user_details._id",
				"username":  "$user_details.username",
				"full_name": "$user_details.full_name",
				"avatar":    "$user_details.avatar",
			},
			"comments": bson.M{"$map": bson.M{
				"input": bson.M{"$ifNull": bson.A{"$comments", bson.A{}}},
				"as":    "c",
				"in": bson.M{"$mergeObjects": bson.A{
					"$$c",
					bson.M{"user": bson.M{"$let": bson.M{
						"vars": bson.M{"u": bson.M{"$arrayElemAt": bson.A{
							bson.M{"$filter": bson.M{
								"input": "$comment_users",
								"as":    "cu",
								"cond":  bson.M{"$eq": bson.A{"$$cu._id", "$$c.user_id"}},
							}},
							0,
						}}},
						"in": bson.M{
							"_id":       "$$u._id",
							"username":  "$$u.username",
							"full_name": "$$u.full_name",
							"avatar":    "$$u.avatar",
						},
					}}},
				}},
			}},
		}}},
		bson.D{{Key: "$project", Value: bson.M{"user_details": 0, "comment_users": 0}}},
	)
	return pipeline
}

// CreatePost stores a new post with empty likes and comments.
func (r *PostRepository) CreatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	post.CreatedAt = time.Now()
	if post.Likes == nil {
		post.Likes = []primitive.ObjectID{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}

	result, err := r.collection.InsertOne(ctx, post)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert post")
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	post.ID = insertedID

	logger.Log.WithField("post_id", post.ID.Hex()).Info("Post created successfully")
	return post, nil
}

// GetPosts returns posts newest first with author details.
func (r *PostRepository) GetPosts(ctx context.Context, skip, limit int64) ([]models.Post, error) {
	cursor, err := r.collection.Aggregate(ctx, postWithAuthorsPipeline(nil, skip, limit))
	if err != nil {
		logger.Log.WithError(err).Error("Failed to aggregate posts")
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}
	return posts, nil
}

// GetPostByID returns a single post with author details.
func (r *PostRepository) GetPostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	cursor, err := r.collection.Aggregate(ctx, postWithAuthorsPipeline(bson.M{"_id": id}, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, fmt.Errorf("failed to fetch post: %w", err)
		}
		return nil, ErrPostNotFound
	}
	var post models.Post
	if err := cursor.Decode(&post); err != nil {
		return nil, fmt.Errorf("failed to decode post: %w", err)
	}
	return &post, nil
}

// ToggleLike adds the user's like when absent and removes it otherwise. Each
// branch is a single conditional update, so concurrent toggles never leave a
// duplicate id in the likes array.
func (r *PostRepository) ToggleLike(ctx context.Context, postID, userID primitive.ObjectID) (*models.LikeResult, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"likes": 1})

	var post models.Post
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": postID, "likes": bson.M{"$ne": userID}},
		bson.M{"$addToSet": bson.M{"likes": userID}},
		opts,
	).Decode(&post)
	liked := true

	if errors.Is(err, mongo.ErrNoDocuments) {
		liked = false
		err = r.collection.FindOneAndUpdate(ctx,
			bson.M{"_id": postID, "likes": userID},
			bson.M{"$pull": bson.M{"likes": userID}},
			opts,
		).Decode(&post)
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		logger.Log.WithError(err).WithField("post_id", postID.Hex()).Error("Failed to toggle like")
		return nil, fmt.Errorf("failed to toggle like: %w", err)
	}

	likes := post.Likes
	if likes == nil {
		likes = []primitive.ObjectID{}
	}
	return &models.LikeResult{
		PostID:     postID,
		Liked:      liked,
		LikesCount: len(likes),
		Likes:      likes,
	}, nil
}

// AddComment appends a comment and returns the post owner's id.
func (r *PostRepository) AddComment(ctx context.Context, postID primitive.ObjectID, comment *models.Comment) (primitive.ObjectID, error) {
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}
	comment.CreatedAt = time.Now()

	opts := options.FindOneAndUpdate().SetProjection(bson.M{"user_id": 1})
	var post models.Post
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": postID},
		bson.M{"$push": bson.M{"comments": comment}},
		opts,
	).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return primitive.NilObjectID, ErrPostNotFound
	}
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to add comment: %w", err)
	}
	return post.UserID, nil
}

// DeletePost removes a post only when it belongs to userID.
func (r *PostRepository) DeletePost(ctx context.Context, postID, userID primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": postID, "user_id": userID})
	if err != nil {
		logger.Log.WithError(err).WithField("post_id", postID.Hex()).Error("Failed to delete post")
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrPostNotFound
	}
	logger.Log.WithField("post_id", postID.Hex()).Info("Post deleted successfully")
	return nil
}
