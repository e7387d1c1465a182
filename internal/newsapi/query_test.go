package newsapi

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/nao1215/headline-hub/internal/newsapi/store"
)

// TestArticleFilterDocument はフィルタドキュメントの構築を検証する。
func TestArticleFilterDocument(t *testing.T) {
	t.Parallel()

	t.Run("空のフィルタから空のドキュメントが生成されること", func(t *testing.T) {
		t.Parallel()

		got := ArticleFilter{}.Document()
		if len(got) != 0 {
			t.Errorf("ドキュメント長 = %d, want 0", len(got))
		}
	})

	t.Run("searchからタイトルの部分一致条件が生成されること", func(t *testing.T) {
		t.Parallel()

		got := ArticleFilter{Search: "Elect"}.Document()
		want := bson.D{{Key: "title", Value: bson.D{
			{Key: "$regex", Value: "Elect"},
			{Key: "$options", Value: "i"},
		}}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Document() = %v, want %v", got, want)
		}
	})

	t.Run("正規表現メタ文字がエスケープされること", func(t *testing.T) {
		t.Parallel()

		got := ArticleFilter{Search: "a.b*"}.Document()
		cond := got[0].Value.(bson.D)
		if cond[0].Value != `a\.b\*` {
			t.Errorf("$regex = %v, want %q", cond[0].Value, `a\.b\*`)
		}
	})

	t.Run("各フィールドが完全一致条件として生成されること", func(t *testing.T) {
		t.Parallel()

		got := ArticleFilter{Publisher: "Gazette", Category: "tech", Status: "active"}.Document()
		want := bson.D{
			{Key: "publisher", Value: "Gazette"},
			{Key: "category", Value: "tech"},
			{Key: "status", Value: "active"},
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Document() = %v, want %v", got, want)
		}
	})

	t.Run("句の順序が常にsearch→publisher→category→statusであること", func(t *testing.T) {
		t.Parallel()

		got := ArticleFilter{
			Status:    "active",
			Category:  "tech",
			Publisher: "Gazette",
			Search:    "go",
		}.Document()

		keys := make([]string, 0, len(got))
		for _, e := range got {
			keys = append(keys, e.Key)
		}
		want := []string{"title", "publisher", "category", "status"}
		if !reflect.DeepEqual(keys, want) {
			t.Errorf("キー順 = %v, want %v", keys, want)
		}
	})

	t.Run("空文字列のフィールドは条件に寄与しないこと", func(t *testing.T) {
		t.Parallel()

		got := ArticleFilter{Search: "", Publisher: "Gazette", Status: ""}.Document()
		if len(got) != 1 {
			t.Fatalf("ドキュメント長 = %d, want 1", len(got))
		}
		if got[0].Key != "publisher" {
			t.Errorf("キー = %q, want publisher", got[0].Key)
		}
	})
}

// TestComputePublisherStats は発行元ごとの記事数集計を検証する。
func TestComputePublisherStats(t *testing.T) {
	t.Parallel()

	t.Run("発行元の順序を保ち0件の発行元も含めて集計されること", func(t *testing.T) {
		t.Parallel()

		publishers := []store.Publisher{{Name: "A"}, {Name: "B"}}
		articles := []store.Article{
			{Publisher: "A"},
			{Publisher: "A"},
			{Publisher: "C"},
		}

		got := ComputePublisherStats(publishers, articles)
		want := []PublisherStat{
			{Publisher: "A", ArticlesCount: 2},
			{Publisher: "B", ArticlesCount: 0},
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ComputePublisherStats() = %v, want %v", got, want)
		}
	})

	t.Run("発行元名の照合が大文字小文字を区別すること", func(t *testing.T) {
		t.Parallel()

		publishers := []store.Publisher{{Name: "Gazette"}}
		articles := []store.Article{
			{Publisher: "Gazette"},
			{Publisher: "gazette"},
		}

		got := ComputePublisherStats(publishers, articles)
		if got[0].ArticlesCount != 1 {
			t.Errorf("ArticlesCount = %d, want 1", got[0].ArticlesCount)
		}
	})

	t.Run("発行元が空の場合に空のスライスが返ること", func(t *testing.T) {
		t.Parallel()

		got := ComputePublisherStats(nil, []store.Article{{Publisher: "A"}})
		if got == nil {
			t.Fatal("nilではなく空のスライスを返すべき")
		}
		if len(got) != 0 {
			t.Errorf("長さ = %d, want 0", len(got))
		}
	})

	t.Run("記事が空でも発行元ごとに0件で集計されること", func(t *testing.T) {
		t.Parallel()

		publishers := []store.Publisher{{Name: "A"}, {Name: "B"}}
		got := ComputePublisherStats(publishers, nil)

		if len(got) != 2 {
			t.Fatalf("長さ = %d, want 2", len(got))
		}
		for _, stat := range got {
			if stat.ArticlesCount != 0 {
				t.Errorf("%s のArticlesCount = %d, want 0", stat.Publisher, stat.ArticlesCount)
			}
		}
	})
}
