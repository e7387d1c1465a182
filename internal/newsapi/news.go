package newsapi

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/headline-hub/internal/newsapi/store"
	"github.com/nao1215/headline-hub/pkg/middleware"
)

// createArticleRequest は記事作成リクエストのJSON構造。
type createArticleRequest struct {
	// Title は記事タイトル。
	Title string `json:"title" binding:"required"`
	// Publisher は発行元名。
	Publisher string `json:"publisher"`
	// Category は記事カテゴリ。
	Category string `json:"category"`
	// Description は記事本文。
	Description string `json:"description"`
	// Image は記事画像のURL。
	Image string `json:"image"`
	// Tags は記事に付与するタグ。
	Tags []string `json:"tags"`
	// Status は初期ステータス。承認前の記事は通常未設定のまま投稿される。
	Status string `json:"status"`
}

// declineFeedbackRequest は記事却下リクエストのJSON構造。
type declineFeedbackRequest struct {
	// Feedback は投稿者に伝える却下理由。
	Feedback string `json:"feedback" binding:"required"`
}

// handleListArticles は記事一覧取得を処理するハンドラを返す。
// search/publisher/category/statusのクエリパラメータで絞り込める。
// パラメータが無い場合は全記事を返す。statusを指定しない限り
// 非activeの記事も除外しない。
func (s *Server) handleListArticles() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := ArticleFilter{
			Search:    c.Query("search"),
			Publisher: c.Query("publisher"),
			Category:  c.Query("category"),
			Status:    c.Query("status"),
		}

		articles, err := s.articles.Find(c.Request.Context(), filter.Document())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list articles"})
			log.Printf("記事一覧取得エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, articles)
	}
}

// handleGetArticle は記事の単体取得を処理するハンドラを返す。
// 存在しないIDはエラーではなくnullボディで応答する。
func (s *Server) handleGetArticle() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseObjectID(c, "article")
		if !ok {
			return
		}

		article, err := s.articles.FindByID(c.Request.Context(), id)
		if err == store.ErrNotFound {
			c.JSON(http.StatusOK, nil)
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get article"})
			log.Printf("記事取得エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, article)
	}
}

// handleCreateArticle は記事投稿を処理するハンドラを返す。
// 投稿者のメールアドレスは認証済みプリンシパルから取得する。
func (s *Server) handleCreateArticle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createArticleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		article := store.Article{
			Title:       req.Title,
			Publisher:   req.Publisher,
			Category:    req.Category,
			Description: req.Description,
			Image:       req.Image,
			Tags:        req.Tags,
			Status:      req.Status,
			ViewCount:   0,
			AuthorEmail: middleware.GetEmail(c),
			CreatedAt:   time.Now(),
		}

		id, err := s.articles.Insert(c.Request.Context(), article)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create article"})
			log.Printf("記事作成エラー: %v", err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"id": id.Hex()})
	}
}

// handleApproveArticle は記事の承認を処理するハンドラを返す。
// ステータスをactiveに更新する。
func (s *Server) handleApproveArticle() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseObjectID(c, "article")
		if !ok {
			return
		}

		result, err := s.articles.UpdateStatus(c.Request.Context(), id, store.StatusActive)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to approve article"})
			log.Printf("記事承認エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// handleIncrementViewCount は閲覧数の加算を処理するハンドラを返す。
// 加算はストア側でアトミックに行われ、並行リクエストでも失われない。
func (s *Server) handleIncrementViewCount() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseObjectID(c, "article")
		if !ok {
			return
		}

		result, err := s.articles.IncrementViewCount(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to increment view count"})
			log.Printf("閲覧数加算エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// handleDeclineArticle は記事の却下を処理するハンドラを返す。
// ステータスをdeclineに更新し、フィードバックを添付する。
func (s *Server) handleDeclineArticle() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseObjectID(c, "article")
		if !ok {
			return
		}

		var req declineFeedbackRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		result, err := s.articles.Decline(c.Request.Context(), id, req.Feedback)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to decline article"})
			log.Printf("記事却下エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// handleMakePremium は記事のプレミアム昇格を処理するハンドラを返す。
func (s *Server) handleMakePremium() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseObjectID(c, "article")
		if !ok {
			return
		}

		result, err := s.articles.MakePremium(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to make article premium"})
			log.Printf("プレミアム昇格エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// handleDeleteArticle は記事の削除を処理するハンドラを返す。
// 存在しないIDへの削除はエラーではなく削除件数0として応答する。
func (s *Server) handleDeleteArticle() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseObjectID(c, "article")
		if !ok {
			return
		}

		deleted, err := s.articles.DeleteByID(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete article"})
			log.Printf("記事削除エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"deleted": deleted})
	}
}
