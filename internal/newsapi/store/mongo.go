package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// databaseName は使用するMongoDBデータベース名。
const databaseName = "headline-hub"

// Store はMongoDBに接続されたコレクション群を束ねる。
type Store struct {
	// client はMongoDBクライアント。Closeで切断する。
	client *mongo.Client
	// Articles はnewsコレクション。
	Articles ArticleStore
	// Publishers はpublishersコレクション。
	Publishers PublisherStore
	// Users はusersコレクション。
	Users UserStore
}

// Connect はMongoDBに接続し、疎通確認のうえStoreを生成する。
func Connect(ctx context.Context, uri string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("MongoDBへの接続に失敗: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("MongoDBへの疎通確認に失敗: %w", err)
	}

	db := client.Database(databaseName)
	return &Store{
		client:     client,
		Articles:   &mongoArticleStore{coll: db.Collection("news")},
		Publishers: &mongoPublisherStore{coll: db.Collection("publishers")},
		Users:      &mongoUserStore{coll: db.Collection("users")},
	}, nil
}

// Close はMongoDBとの接続を切断する。
func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("MongoDBとの切断に失敗: %w", err)
	}
	return nil
}

// mongoArticleStore はArticleStoreのMongoDB実装。
type mongoArticleStore struct {
	coll *mongo.Collection
}

func (s *mongoArticleStore) Find(ctx context.Context, filter bson.D) ([]Article, error) {
	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("記事の検索に失敗: %w", err)
	}

	articles := []Article{}
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, fmt.Errorf("記事のデコードに失敗: %w", err)
	}
	return articles, nil
}

func (s *mongoArticleStore) FindByID(ctx context.Context, id primitive.ObjectID) (*Article, error) {
	var article Article
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&article)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("記事の取得に失敗: %w", err)
	}
	return &article, nil
}

func (s *mongoArticleStore) Insert(ctx context.Context, article Article) (primitive.ObjectID, error) {
	result, err := s.coll.InsertOne(ctx, article)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("記事の作成に失敗: %w", err)
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

func (s *mongoArticleStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (UpdateResult, error) {
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: status}}}}
	return s.updateByID(ctx, id, update, false)
}

func (s *mongoArticleStore) Decline(ctx context.Context, id primitive.ObjectID, feedback string) (UpdateResult, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "feedback", Value: feedback},
		{Key: "status", Value: StatusDecline},
	}}}
	return s.updateByID(ctx, id, update, true)
}

func (s *mongoArticleStore) MakePremium(ctx context.Context, id primitive.ObjectID) (UpdateResult, error) {
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "isPremium", Value: true}}}}
	return s.updateByID(ctx, id, update, true)
}

func (s *mongoArticleStore) IncrementViewCount(ctx context.Context, id primitive.ObjectID) (UpdateResult, error) {
	// $incによる加算はドキュメント単位でアトミック。並行リクエストでも
	// 加算が失われない。
	update := bson.D{{Key: "$inc", Value: bson.D{{Key: "viewCount", Value: 1}}}}
	return s.updateByID(ctx, id, update, false)
}

func (s *mongoArticleStore) DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return 0, fmt.Errorf("記事の削除に失敗: %w", err)
	}
	return result.DeletedCount, nil
}

// updateByID は_idフィルタでの更新処理の共通部分。
func (s *mongoArticleStore) updateByID(ctx context.Context, id primitive.ObjectID, update bson.D, upsert bool) (UpdateResult, error) {
	opts := options.Update().SetUpsert(upsert)
	result, err := s.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update, opts)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("記事の更新に失敗: %w", err)
	}
	return UpdateResult{
		Matched:  result.MatchedCount,
		Modified: result.ModifiedCount,
		Upserted: result.UpsertedCount,
	}, nil
}

// mongoPublisherStore はPublisherStoreのMongoDB実装。
type mongoPublisherStore struct {
	coll *mongo.Collection
}

func (s *mongoPublisherStore) All(ctx context.Context) ([]Publisher, error) {
	cursor, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("発行元の検索に失敗: %w", err)
	}

	publishers := []Publisher{}
	if err := cursor.All(ctx, &publishers); err != nil {
		return nil, fmt.Errorf("発行元のデコードに失敗: %w", err)
	}
	return publishers, nil
}

func (s *mongoPublisherStore) Insert(ctx context.Context, publisher Publisher) (primitive.ObjectID, error) {
	result, err := s.coll.InsertOne(ctx, publisher)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("発行元の作成に失敗: %w", err)
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

func (s *mongoPublisherStore) DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return 0, fmt.Errorf("発行元の削除に失敗: %w", err)
	}
	return result.DeletedCount, nil
}

// mongoUserStore はUserStoreのMongoDB実装。
type mongoUserStore struct {
	coll *mongo.Collection
}

func (s *mongoUserStore) All(ctx context.Context) ([]User, error) {
	cursor, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("ユーザーの検索に失敗: %w", err)
	}

	users := []User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("ユーザーのデコードに失敗: %w", err)
	}
	return users, nil
}

func (s *mongoUserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := s.coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗: %w", err)
	}
	return &user, nil
}

func (s *mongoUserStore) Insert(ctx context.Context, user User) (primitive.ObjectID, error) {
	result, err := s.coll.InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("ユーザーの作成に失敗: %w", err)
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

func (s *mongoUserStore) PromoteToAdmin(ctx context.Context, id primitive.ObjectID) (UpdateResult, error) {
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "role", Value: RoleAdmin}}}}
	result, err := s.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("ユーザーの更新に失敗: %w", err)
	}
	return UpdateResult{
		Matched:  result.MatchedCount,
		Modified: result.ModifiedCount,
		Upserted: result.UpsertedCount,
	}, nil
}

func (s *mongoUserStore) DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return 0, fmt.Errorf("ユーザーの削除に失敗: %w", err)
	}
	return result.DeletedCount, nil
}
