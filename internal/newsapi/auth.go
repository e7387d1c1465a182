package newsapi

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/headline-hub/internal/newsapi/store"
	"github.com/nao1215/headline-hub/pkg/middleware"
)

// resolveRole はメールアドレスからユーザーの現在のロールを解決する。
// リクエストごとに必ずユーザーレコードを読み直す。トークンのクレームや
// 過去の解決結果からロールを導出してはならない。降格直後のユーザーが
// 有効期限内のトークンで管理者権限を行使することを防ぐ。
// レコードが存在しない場合は一般ユーザーとして扱う。
func resolveRole(ctx context.Context, users store.UserStore, email string) (string, error) {
	user, err := users.FindByEmail(ctx, email)
	if err == store.ErrNotFound {
		return store.RoleUser, nil
	}
	if err != nil {
		return "", err
	}
	return user.EffectiveRole(), nil
}

// requireAdmin は管理者ロールを要求するGinミドルウェアを返す。
// JWTAuthの後段としてのみ使用する。コンテキストに認証済みメールアドレスが
// 無い場合は配線ミスとみなし401を返す。
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := middleware.GetEmail(c)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "unauthorized access",
			})
			return
		}

		role, err := resolveRole(c.Request.Context(), s.users, email)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "internal server error",
			})
			log.Printf("ロール解決エラー: %v", err)
			return
		}

		if role != store.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "forbidden access",
			})
			return
		}

		c.Next()
	}
}

// issueTokenRequest はトークン発行リクエストのJSON構造。
type issueTokenRequest struct {
	// Email はトークンの主体となるメールアドレス。
	Email string `json:"email" binding:"required,email"`
}

// handleIssueToken はJWTトークン発行を処理するハンドラを返す。
// 有効期限10時間のトークンを発行する。
func (s *Server) handleIssueToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req issueTokenRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		token, err := middleware.GenerateToken(s.jwtSecret, req.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
			log.Printf("JWT生成エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}
