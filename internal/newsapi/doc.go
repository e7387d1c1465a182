// Package newsapi はニュース配信プラットフォームのJSON APIを提供する。
//
// 記事・発行元・ユーザーのCRUDと記事のモデレーション操作を公開する。
// 更新系・特権系のエンドポイントはBearerトークン検証を通過し、
// 管理者専用ルートはさらにリクエストごとのロール再解決を通過する。
// ロールは決してトークン自体から導出しない。
package newsapi
