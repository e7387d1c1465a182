// Package middleware はheadline-hub APIで使用する共通ミドルウェアを提供する。
//
// JWT認証トークンの検証、パニックリカバリ、CORS設定、リクエストIDの付与など、
// 個別のハンドラに依存しない横断的な処理を含む。
package middleware
