package newsapi

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/nao1215/headline-hub/internal/newsapi/store"
)

// createPublisherRequest は発行元作成リクエストのJSON構造。
type createPublisherRequest struct {
	// Name は発行元名。記事のpublisherフィールドと照合されるキー。
	Name string `json:"name" binding:"required"`
	// Logo はロゴ画像のURL。
	Logo string `json:"logo"`
}

// handleListPublishers は発行元一覧取得を処理するハンドラを返す。
func (s *Server) handleListPublishers() gin.HandlerFunc {
	return func(c *gin.Context) {
		publishers, err := s.publishers.All(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list publishers"})
			log.Printf("発行元一覧取得エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, publishers)
	}
}

// handleCreatePublisher は発行元の登録を処理するハンドラを返す。
func (s *Server) handleCreatePublisher() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createPublisherRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		id, err := s.publishers.Insert(c.Request.Context(), store.Publisher{
			Name: req.Name,
			Logo: req.Logo,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create publisher"})
			log.Printf("発行元作成エラー: %v", err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"id": id.Hex()})
	}
}

// handleDeletePublisher は発行元の削除を処理するハンドラを返す。
func (s *Server) handleDeletePublisher() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseObjectID(c, "publisher")
		if !ok {
			return
		}

		deleted, err := s.publishers.DeleteByID(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete publisher"})
			log.Printf("発行元削除エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"deleted": deleted})
	}
}

// handlePublisherStats は発行元ごとの記事数集計を処理するハンドラを返す。
// 発行元と記事をそれぞれ全件読み取り、メモリ上で突き合わせる。
// 2回の読み取りは同一時点のスナップショットではないため、読み取りの
// 合間に挿入された記事は集計に含まれないことがある。
func (s *Server) handlePublisherStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		publishers, err := s.publishers.All(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list publishers"})
			log.Printf("発行元一覧取得エラー: %v", err)
			return
		}

		articles, err := s.articles.Find(c.Request.Context(), bson.D{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list articles"})
			log.Printf("記事一覧取得エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, ComputePublisherStats(publishers, articles))
	}
}
