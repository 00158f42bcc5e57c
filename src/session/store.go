// Package session はアイデンティティキャッシュとログイン後の戻り先パスを
// 保持する明示的なセッションストアを提供する。ブラウザのローカルストレージを
// その場その場で読み書きしていたパターンを、初期化・破棄のライフサイクルを
// 持つ注入可能なオブジェクトに置き換えたもの。
package session

import (
	"sync"
	"time"

	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/models"
)

// Entry 1セッション分の状態
type Entry struct {
	Identity  *models.Identity
	CreatedAt time.Time
}

// Store 排他制御付きのストア。セッションはセッションIDをキーに、
// 戻り先パスは呼び出し側が選んだキー（セッション確立前はメールアドレス）で
// 別管理する。
type Store struct {
	mu          sync.RWMutex
	entries     map[string]*Entry
	returnPaths map[string]string
}

// NewStore セッションストアを作成
func NewStore() *Store {
	return &Store{
		entries:     make(map[string]*Entry),
		returnPaths: make(map[string]string),
	}
}

// Init セッションを初期化する。既存のエントリは上書きされる。
func (s *Store) Init(sessionID string, identity *models.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[sessionID] = &Entry{
		Identity:  identity,
		CreatedAt: time.Now(),
	}
}

// Identity セッションのアイデンティティを返す
func (s *Store) Identity(sessionID string) (*models.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[sessionID]
	if !ok || entry.Identity == nil {
		return nil, false
	}
	return entry.Identity, true
}

// SetReturnPath ログイン後にリダイレクトする戻り先パスを記録する。
// セッションエントリは作成しない。
func (s *Store) SetReturnPath(key, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.returnPaths[key] = path
}

// ReturnPath 戻り先パスを取り出して消費する（一度きり）
func (s *Store) ReturnPath(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, ok := s.returnPaths[key]
	if !ok || path == "" {
		return "", false
	}

	delete(s.returnPaths, key)
	return path, true
}

// Clear サインアウト時にセッションを破棄する
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, sessionID)
}

// Len 保持中のセッション数を返す
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}
