package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims はJWTトークンのクレーム（ペイロード）を表す。
// 認証対象を識別するメールアドレスのみを運ぶ。ロールはトークンに含めない。
// 権限は管理者チェックのたびにユーザーレコードから再解決するため、
// 発行済みトークンが古い権限を主張しても無効になる。
type Claims struct {
	jwt.RegisteredClaims
	// Email は認証対象ユーザーのメールアドレス。
	Email string `json:"email"`
}

// tokenTTL はトークンの有効期間。
const tokenTTL = 10 * time.Hour

// contextKeyEmail はGinコンテキストに認証済みメールアドレスを保持するキー。
const contextKeyEmail = "email"

// GenerateToken はメールアドレスを主体とするJWTトークンを生成する。
// POST /jwt ハンドラから呼び出される。有効期限は10時間。
func GenerateToken(secret, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "headline-hub",
		},
		Email: email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("JWTトークンの署名に失敗: %w", err)
	}
	return signed, nil
}

// JWTAuth はBearerトークンを検証するGinミドルウェアを返す。
// 検証に成功した場合、コンテキストに認証済みメールアドレスを設定する。
// ヘッダー欠落以外の失敗（Bearer形式不正・署名不正・期限切れ）は
// クライアントに理由を区別させず、常に同一の汎用メッセージで401を返す。
// トークンの内容はログに出力しない。
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "no authorization header",
			})
			return
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "unauthorized access",
			})
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "unauthorized access",
			})
			return
		}

		c.Set(contextKeyEmail, claims.Email)
		c.Next()
	}
}

// GetEmail はGinコンテキストから認証済みメールアドレスを取得する。
// JWTAuthミドルウェアが事前に適用されている必要がある。
func GetEmail(c *gin.Context) string {
	email, _ := c.Get(contextKeyEmail)
	if e, ok := email.(string); ok {
		return e
	}
	return ""
}
