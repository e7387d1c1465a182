package newsapi

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/nao1215/headline-hub/internal/newsapi/store"
)

// ArticleFilter は記事一覧の絞り込み条件。各フィールドは任意で、
// 空のフィールドは条件に寄与しない。すべての条件はANDで結合される。
type ArticleFilter struct {
	// Search はタイトルに対する部分一致検索語（大文字小文字を区別しない）。
	Search string
	// Publisher は発行元名の完全一致条件。
	Publisher string
	// Category はカテゴリの完全一致条件。
	Category string
	// Status はステータスの完全一致条件。指定が無い場合、
	// 非activeの記事も除外されない。
	Status string
}

// Document はフィルタをMongoDBのフィルタドキュメントに変換する。
// 句はsearch→publisher→category→statusの固定順で追加される。
// 空のフィルタは全記事に一致する。
func (f ArticleFilter) Document() bson.D {
	filter := bson.D{}

	if f.Search != "" {
		// QuoteMetaにより検索語は常にリテラルな部分文字列として扱う。
		// 正規表現メタ文字を含む入力がパターンとして解釈されることはない。
		filter = append(filter, bson.E{Key: "title", Value: bson.D{
			{Key: "$regex", Value: regexp.QuoteMeta(f.Search)},
			{Key: "$options", Value: "i"},
		}})
	}
	if f.Publisher != "" {
		filter = append(filter, bson.E{Key: "publisher", Value: f.Publisher})
	}
	if f.Category != "" {
		filter = append(filter, bson.E{Key: "category", Value: f.Category})
	}
	if f.Status != "" {
		filter = append(filter, bson.E{Key: "status", Value: f.Status})
	}

	return filter
}

// PublisherStat は発行元ごとの記事数の集計結果。永続化されない。
type PublisherStat struct {
	// Publisher は発行元名。
	Publisher string `json:"publisher"`
	// ArticlesCount は当該発行元の記事数。
	ArticlesCount int `json:"articlesCount"`
}

// ComputePublisherStats は発行元ごとの記事数をメモリ上で集計する。
// 入力された発行元の順序を保ち、記事が0件の発行元も結果に含める。
// 発行元名の照合は大文字小文字を区別する完全一致。
// 2つのスナップショットに対するO(n*m)の走査であり、スナップショット間の
// 整合性は保証しない（レポート用途の許容範囲）。
func ComputePublisherStats(publishers []store.Publisher, articles []store.Article) []PublisherStat {
	stats := make([]PublisherStat, 0, len(publishers))
	for _, p := range publishers {
		count := 0
		for _, a := range articles {
			if a.Publisher == p.Name {
				count++
			}
		}
		stats = append(stats, PublisherStat{Publisher: p.Name, ArticlesCount: count})
	}
	return stats
}
