package newsapi

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/headline-hub/internal/newsapi/store"
	"github.com/nao1215/headline-hub/pkg/middleware"
)

// createUserRequest はユーザー登録リクエストのJSON構造。
type createUserRequest struct {
	// Name は表示名。
	Name string `json:"name"`
	// Email はユーザーのメールアドレス。ユーザーを一意に識別する。
	Email string `json:"email" binding:"required,email"`
}

// handleListUsers はユーザー一覧取得を処理するハンドラを返す。
func (s *Server) handleListUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := s.users.All(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
			log.Printf("ユーザー一覧取得エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, users)
	}
}

// handleCreateUser はユーザー登録を処理するハンドラを返す。
// 同一メールアドレスのユーザーが既に存在する場合は登録せずその旨を返す。
func (s *Server) handleCreateUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		_, err := s.users.FindByEmail(c.Request.Context(), req.Email)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"message": "user already exists"})
			return
		}
		if err != store.ErrNotFound {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
			log.Printf("ユーザー取得エラー: %v", err)
			return
		}

		id, err := s.users.Insert(c.Request.Context(), store.User{
			Name:      req.Name,
			Email:     req.Email,
			CreatedAt: time.Now(),
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
			log.Printf("ユーザー作成エラー: %v", err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"id": id.Hex()})
	}
}

// handleCheckAdmin はメールアドレスの管理者判定を処理するハンドラを返す。
// 自分自身の確認のみ許可する。パスのメールアドレスがプリンシパルと
// 一致しない場合は、呼び出し元が管理者であっても403を返す。
func (s *Server) handleCheckAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email")
		if email != middleware.GetEmail(c) {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden access"})
			return
		}

		user, err := s.users.FindByEmail(c.Request.Context(), email)
		if err == store.ErrNotFound {
			c.JSON(http.StatusOK, gin.H{"admin": false})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check admin"})
			log.Printf("ユーザー取得エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"admin": user.EffectiveRole() == store.RoleAdmin})
	}
}

// handlePromoteUser はユーザーの管理者昇格を処理するハンドラを返す。
func (s *Server) handlePromoteUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseObjectID(c, "user")
		if !ok {
			return
		}

		result, err := s.users.PromoteToAdmin(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to promote user"})
			log.Printf("ユーザー昇格エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// handleDeleteUser はユーザーの削除を処理するハンドラを返す。
func (s *Server) handleDeleteUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseObjectID(c, "user")
		if !ok {
			return
		}

		deleted, err := s.users.DeleteByID(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
			log.Printf("ユーザー削除エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"deleted": deleted})
	}
}
