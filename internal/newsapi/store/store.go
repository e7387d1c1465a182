// Package store はheadline-hubのドキュメントストア層を提供する。
//
// 記事・発行元・ユーザーの各コレクションへのアクセスをインターフェースとして
// 定義し、MongoDBによる実装を提供する。ハンドラはインターフェースのみに
// 依存するため、テストではインメモリのフェイクに差し替えられる。
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound は対象ドキュメントが存在しないことを示す。
var ErrNotFound = errors.New("document not found")

// UpdateResult は更新系操作の結果件数。
// 存在しないIDへの更新はエラーではなくMatched=0として返る。
type UpdateResult struct {
	// Matched はフィルタに一致したドキュメント数。
	Matched int64 `json:"matched"`
	// Modified は実際に変更されたドキュメント数。
	Modified int64 `json:"modified"`
	// Upserted はupsertによって新規作成されたドキュメント数。
	Upserted int64 `json:"upserted"`
}

// ArticleStore はnewsコレクションへの操作を定義する。
type ArticleStore interface {
	// Find はフィルタドキュメントに一致する記事をすべて返す。
	// 空のフィルタは全記事に一致する。
	Find(ctx context.Context, filter bson.D) ([]Article, error)
	// FindByID は指定IDの記事を返す。存在しない場合はErrNotFound。
	FindByID(ctx context.Context, id primitive.ObjectID) (*Article, error)
	// Insert は記事を新規作成し、採番されたIDを返す。
	Insert(ctx context.Context, article Article) (primitive.ObjectID, error)
	// UpdateStatus は記事のステータスを更新する。
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (UpdateResult, error)
	// Decline は記事を却下し、フィードバックを添付する（upsert）。
	Decline(ctx context.Context, id primitive.ObjectID, feedback string) (UpdateResult, error)
	// MakePremium は記事をプレミアムに昇格する（upsert）。
	MakePremium(ctx context.Context, id primitive.ObjectID) (UpdateResult, error)
	// IncrementViewCount は閲覧数をストア側でアトミックに加算する。
	IncrementViewCount(ctx context.Context, id primitive.ObjectID) (UpdateResult, error)
	// DeleteByID は指定IDの記事を削除し、削除件数を返す。
	DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// PublisherStore はpublishersコレクションへの操作を定義する。
type PublisherStore interface {
	// All は全発行元を返す。
	All(ctx context.Context) ([]Publisher, error)
	// Insert は発行元を新規作成し、採番されたIDを返す。
	Insert(ctx context.Context, publisher Publisher) (primitive.ObjectID, error)
	// DeleteByID は指定IDの発行元を削除し、削除件数を返す。
	DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// UserStore はusersコレクションへの操作を定義する。
type UserStore interface {
	// All は全ユーザーを返す。
	All(ctx context.Context) ([]User, error)
	// FindByEmail は指定メールアドレスのユーザーを返す。
	// 存在しない場合はErrNotFound。
	FindByEmail(ctx context.Context, email string) (*User, error)
	// Insert はユーザーを新規作成し、採番されたIDを返す。
	Insert(ctx context.Context, user User) (primitive.ObjectID, error)
	// PromoteToAdmin は指定IDのユーザーのロールをadminに更新する。
	PromoteToAdmin(ctx context.Context, id primitive.ObjectID) (UpdateResult, error)
	// DeleteByID は指定IDのユーザーを削除し、削除件数を返す。
	DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error)
}
