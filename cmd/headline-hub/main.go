// headline-hub APIサーバーのエントリポイント。
// 記事・発行元・ユーザーを管理するニュース配信プラットフォームのバックエンド。
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/nao1215/headline-hub/internal/newsapi"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	server, err := newsapi.NewServer(ctx, port)
	if err != nil {
		log.Fatalf("サーバーの初期化に失敗: %v", err)
	}

	log.Printf("headline-hub APIを起動します: :%s", port)
	if err := server.Run(); err != nil {
		log.Fatalf("サーバーの起動に失敗: %v", err)
	}
}
