package newsapi

import (
	"context"
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nao1215/headline-hub/internal/newsapi/store"
)

// TestHandleListUsers はユーザー一覧ハンドラを検証する。
func TestHandleListUsers(t *testing.T) {
	t.Parallel()

	t.Run("管理者がユーザー一覧を取得できること", func(t *testing.T) {
		t.Parallel()
		s, _, _, users := setupTestServer(t)
		seedUser(t, users, store.User{Email: "admin@example.com", Role: store.RoleAdmin})
		seedUser(t, users, store.User{Email: "user@example.com"})

		w := doRequest(s.router, http.MethodGet, "/users", testToken(t, "admin@example.com"), nil)

		if w.Code != http.StatusOK {
			t.Fatalf("ステータスコード = %d, want %d", w.Code, http.StatusOK)
		}
		got := parseJSONArray(t, w)
		if len(got) != 2 {
			t.Errorf("ユーザー数 = %d, want 2", len(got))
		}
	})
}

// TestHandleCreateUser はユーザー登録ハンドラを検証する。
func TestHandleCreateUser(t *testing.T) {
	t.Parallel()

	t.Run("新規ユーザーを登録できること", func(t *testing.T) {
		t.Parallel()
		s, _, _, users := setupTestServer(t)

		body := map[string]string{"name": "New User", "email": "new@example.com"}
		w := doRequest(s.router, http.MethodPost, "/users", "", body)

		if w.Code != http.StatusCreated {
			t.Fatalf("ステータスコード = %d, want %d, body=%s", w.Code, http.StatusCreated, w.Body.String())
		}
		if len(users.users) != 1 {
			t.Fatalf("ユーザー数 = %d, want 1", len(users.users))
		}
		// 新規ユーザーにロールは付与されない
		if users.users[0].Role != "" {
			t.Errorf("Role = %q, want empty", users.users[0].Role)
		}
	})

	t.Run("登録済みメールアドレスでは重複登録されないこと", func(t *testing.T) {
		t.Parallel()
		s, _, _, users := setupTestServer(t)
		seedUser(t, users, store.User{Email: "dup@example.com"})

		body := map[string]string{"email": "dup@example.com"}
		w := doRequest(s.router, http.MethodPost, "/users", "", body)

		if w.Code != http.StatusOK {
			t.Fatalf("ステータスコード = %d, want %d", w.Code, http.StatusOK)
		}
		result := parseJSON(t, w)
		if result["message"] != "user already exists" {
			t.Errorf("message = %v, want %q", result["message"], "user already exists")
		}
		if len(users.users) != 1 {
			t.Errorf("ユーザー数 = %d, want 1", len(users.users))
		}
	})

	t.Run("メールアドレス無しで400が返ること", func(t *testing.T) {
		t.Parallel()
		s, _, _, _ := setupTestServer(t)

		w := doRequest(s.router, http.MethodPost, "/users", "", map[string]string{"name": "No Email"})

		if w.Code != http.StatusBadRequest {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}

// TestHandleCheckAdmin は管理者判定エンドポイントを検証する。
func TestHandleCheckAdmin(t *testing.T) {
	t.Parallel()

	t.Run("自分自身の管理者判定ができること", func(t *testing.T) {
		t.Parallel()
		s, _, _, users := setupTestServer(t)
		seedUser(t, users, store.User{Email: "admin@example.com", Role: store.RoleAdmin})

		w := doRequest(s.router, http.MethodGet, "/users/admin/admin@example.com", testToken(t, "admin@example.com"), nil)

		if w.Code != http.StatusOK {
			t.Fatalf("ステータスコード = %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
		}
		result := parseJSON(t, w)
		if result["admin"] != true {
			t.Errorf("admin = %v, want true", result["admin"])
		}
	})

	t.Run("他人のメールアドレスの判定は管理者でも403が返ること", func(t *testing.T) {
		t.Parallel()
		s, _, _, users := setupTestServer(t)
		seedUser(t, users, store.User{Email: "admin@example.com", Role: store.RoleAdmin})
		seedUser(t, users, store.User{Email: "other@example.com", Role: store.RoleAdmin})

		w := doRequest(s.router, http.MethodGet, "/users/admin/other@example.com", testToken(t, "admin@example.com"), nil)

		if w.Code != http.StatusForbidden {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusForbidden)
		}
	})

	t.Run("トークン無しで401が返ること", func(t *testing.T) {
		t.Parallel()
		s, _, _, _ := setupTestServer(t)

		w := doRequest(s.router, http.MethodGet, "/users/admin/anyone@example.com", "", nil)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})
}

// TestHandlePromoteUser は管理者昇格ハンドラを検証する。
func TestHandlePromoteUser(t *testing.T) {
	t.Parallel()

	t.Run("管理者がユーザーを昇格できること", func(t *testing.T) {
		t.Parallel()
		s, _, _, users := setupTestServer(t)
		seedUser(t, users, store.User{Email: "admin@example.com", Role: store.RoleAdmin})
		id := seedUser(t, users, store.User{Email: "member@example.com"})

		w := doRequest(s.router, http.MethodPatch, "/users/admin/"+id.Hex(), testToken(t, "admin@example.com"), nil)

		if w.Code != http.StatusOK {
			t.Fatalf("ステータスコード = %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
		}

		promoted, err := users.FindByEmail(context.Background(), "member@example.com")
		if err != nil {
			t.Fatalf("昇格したユーザーの取得に失敗: %v", err)
		}
		if promoted.Role != store.RoleAdmin {
			t.Errorf("Role = %q, want %q", promoted.Role, store.RoleAdmin)
		}
	})

	t.Run("一般ユーザーによる昇格は403が返ること", func(t *testing.T) {
		t.Parallel()
		s, _, _, users := setupTestServer(t)
		seedUser(t, users, store.User{Email: "user@example.com"})
		id := seedUser(t, users, store.User{Email: "member@example.com"})

		w := doRequest(s.router, http.MethodPatch, "/users/admin/"+id.Hex(), testToken(t, "user@example.com"), nil)

		if w.Code != http.StatusForbidden {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusForbidden)
		}
	})

	t.Run("存在しないIDで一致件数0が返ること", func(t *testing.T) {
		t.Parallel()
		s, _, _, users := setupTestServer(t)
		seedUser(t, users, store.User{Email: "admin@example.com", Role: store.RoleAdmin})

		w := doRequest(s.router, http.MethodPatch, "/users/admin/"+primitive.NewObjectID().Hex(), testToken(t, "admin@example.com"), nil)

		if w.Code != http.StatusOK {
			t.Fatalf("ステータスコード = %d, want %d", w.Code, http.StatusOK)
		}
		result := parseJSON(t, w)
		if result["matched"] != float64(0) {
			t.Errorf("matched = %v, want 0", result["matched"])
		}
	})
}

// TestHandleDeleteUser はユーザー削除ハンドラを検証する。
func TestHandleDeleteUser(t *testing.T) {
	t.Parallel()

	t.Run("管理者がユーザーを削除できること", func(t *testing.T) {
		t.Parallel()
		s, _, _, users := setupTestServer(t)
		seedUser(t, users, store.User{Email: "admin@example.com", Role: store.RoleAdmin})
		id := seedUser(t, users, store.User{Email: "target@example.com"})

		w := doRequest(s.router, http.MethodDelete, "/users/"+id.Hex(), testToken(t, "admin@example.com"), nil)

		if w.Code != http.StatusOK {
			t.Fatalf("ステータスコード = %d, want %d", w.Code, http.StatusOK)
		}
		result := parseJSON(t, w)
		if result["deleted"] != float64(1) {
			t.Errorf("deleted = %v, want 1", result["deleted"])
		}
		if len(users.users) != 1 {
			t.Errorf("ユーザー数 = %d, want 1", len(users.users))
		}
	})

	t.Run("不正な形式のIDで400が返ること", func(t *testing.T) {
		t.Parallel()
		s, _, _, users := setupTestServer(t)
		seedUser(t, users, store.User{Email: "admin@example.com", Role: store.RoleAdmin})

		w := doRequest(s.router, http.MethodDelete, "/users/12345", testToken(t, "admin@example.com"), nil)

		if w.Code != http.StatusBadRequest {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}
