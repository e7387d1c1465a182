package store

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ユーザーのロール定数。roleフィールドが空のレコードはRoleUserとして扱う。
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// 記事のステータス定数。
const (
	StatusActive  = "active"
	StatusDecline = "decline"
)

// Article はnewsコレクションに格納される記事ドキュメント。
type Article struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Publisher   string             `bson:"publisher" json:"publisher"`
	Category    string             `bson:"category" json:"category"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Tags        []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Status      string             `bson:"status,omitempty" json:"status,omitempty"`
	IsPremium   bool               `bson:"isPremium,omitempty" json:"isPremium,omitempty"`
	Feedback    string             `bson:"feedback,omitempty" json:"feedback,omitempty"`
	ViewCount   int64              `bson:"viewCount" json:"viewCount"`
	AuthorEmail string             `bson:"authorEmail,omitempty" json:"authorEmail,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// Publisher はpublishersコレクションに格納される発行元ドキュメント。
type Publisher struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name string             `bson:"name" json:"name"`
	Logo string             `bson:"logo,omitempty" json:"logo,omitempty"`
}

// User はusersコレクションに格納されるユーザードキュメント。
// Roleが空のユーザーは一般ユーザーとして扱う。
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Role      string             `bson:"role,omitempty" json:"role,omitempty"`
	CreatedAt time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// EffectiveRole はユーザーの有効なロールを返す。roleフィールド欠落はRoleUser。
func (u User) EffectiveRole() string {
	if u.Role == "" {
		return RoleUser
	}
	return u.Role
}
