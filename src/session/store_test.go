package session

import (
	"testing"

	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/models"

	"github.com/stretchr/testify/assert"
)

func TestStore_InitAndClear(t *testing.T) {
	store := NewStore()

	identity := &models.Identity{UserID: "reader@example.com", Provider: "magic_link"}
	store.Init("sess-1", identity)

	got, ok := store.Identity("sess-1")
	assert.True(t, ok)
	assert.Equal(t, "reader@example.com", got.UserID)
	assert.Equal(t, 1, store.Len())

	// サインアウトで破棄される
	store.Clear("sess-1")
	_, ok = store.Identity("sess-1")
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestStore_UnknownSession(t *testing.T) {
	store := NewStore()

	_, ok := store.Identity("missing")
	assert.False(t, ok)

	_, ok = store.ReturnPath("missing")
	assert.False(t, ok)

	// 存在しないセッションのClearは何もしない
	store.Clear("missing")
}

func TestStore_ReturnPathConsumedOnce(t *testing.T) {
	store := NewStore()

	// セッション確立前はメールアドレスをキーにできる
	store.SetReturnPath("reader@example.com", "/books/42")

	// 戻り先パスの記録ではセッションエントリは作られない
	assert.Equal(t, 0, store.Len())

	path, ok := store.ReturnPath("reader@example.com")
	assert.True(t, ok)
	assert.Equal(t, "/books/42", path)

	// 一度取り出したら消える
	_, ok = store.ReturnPath("reader@example.com")
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestStore_InitOverwrites(t *testing.T) {
	store := NewStore()

	store.Init("sess-1", &models.Identity{UserID: "a@example.com"})
	store.Init("sess-1", &models.Identity{UserID: "b@example.com"})

	got, ok := store.Identity("sess-1")
	assert.True(t, ok)
	assert.Equal(t, "b@example.com", got.UserID)
	assert.Equal(t, 1, store.Len())
}
