package newsapi

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nao1215/headline-hub/internal/newsapi/store"
	"github.com/nao1215/headline-hub/pkg/middleware"
)

// Server はheadline-hub APIのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// st はMongoDBに接続されたストア。テスト時はnil。
	st *store.Store
	// articles はnewsコレクション。
	articles store.ArticleStore
	// publishers はpublishersコレクション。
	publishers store.PublisherStore
	// users はusersコレクション。
	users store.UserStore
	// jwtSecret はJWT署名用の秘密鍵。
	jwtSecret string
}

// NewServer は新しいheadline-hubサーバーを生成する。
// MongoDBへの接続と疎通確認を行う。
func NewServer(ctx context.Context, port string) (*Server, error) {
	mongoURI := getEnvOr("MONGO_URI", "mongodb://localhost:27017")
	st, err := store.Connect(ctx, mongoURI)
	if err != nil {
		return nil, fmt.Errorf("ストアの初期化に失敗: %w", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "dev-secret-key"
	}

	frontendURL := getEnvOr("FRONTEND_URL", "http://localhost:5173")

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(gin.Logger())
	router.Use(middleware.CORS([]string{frontendURL}))

	s := &Server{
		router:     router,
		port:       port,
		st:         st,
		articles:   st.Articles,
		publishers: st.Publishers,
		users:      st.Users,
		jwtSecret:  jwtSecret,
	}
	s.setupRoutes()

	return s, nil
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.port))
}

// Close はストアとの接続を切断する。
func (s *Server) Close(ctx context.Context) error {
	if s.st == nil {
		return nil
	}
	return s.st.Close(ctx)
}

// setupRoutes はAPIルーティングを設定する。
// 公開ルートには認証ミドルウェアを適用しない。管理者専用ルートは
// 必ずJWT検証→ロール再解決の順でパイプラインを構成する。
func (s *Server) setupRoutes() {
	authed := middleware.JWTAuth(s.jwtSecret)
	admin := s.requireAdmin()

	// 記事API
	s.router.GET("/all-news", s.handleListArticles())
	s.router.GET("/news/:id", s.handleGetArticle())
	s.router.POST("/news", authed, s.handleCreateArticle())
	s.router.PATCH("/approve-news/:id", authed, admin, s.handleApproveArticle())
	s.router.PATCH("/news-increment-view/:id", s.handleIncrementViewCount())
	s.router.PATCH("/decline-feedback/:id", authed, admin, s.handleDeclineArticle())
	s.router.PATCH("/news-make-premium/:id", authed, admin, s.handleMakePremium())
	s.router.DELETE("/news/:id", authed, s.handleDeleteArticle())

	// トークン発行API
	s.router.POST("/jwt", s.handleIssueToken())

	// 発行元API
	s.router.GET("/publishers", s.handleListPublishers())
	s.router.POST("/publishers", authed, admin, s.handleCreatePublisher())
	s.router.DELETE("/publishers/:id", authed, admin, s.handleDeletePublisher())
	s.router.GET("/publishers-stats", authed, admin, s.handlePublisherStats())

	// ユーザーAPI
	s.router.GET("/users", authed, admin, s.handleListUsers())
	s.router.POST("/users", s.handleCreateUser())
	s.router.GET("/users/admin/:email", authed, admin, s.handleCheckAdmin())
	s.router.PATCH("/users/admin/:id", authed, admin, s.handlePromoteUser())
	s.router.DELETE("/users/:id", authed, admin, s.handleDeleteUser())

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "headline-hub"})
	})
}

// parseObjectID はパスパラメータのIDをObjectIDに変換する。
// 不正な形式の場合は400を返してfalseを返す。ストア層のパースエラーを
// 500として露出させないための入口チェック。
func parseObjectID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " id"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// getEnvOr は環境変数の値を返す。未設定の場合はフォールバック値を返す。
func getEnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
