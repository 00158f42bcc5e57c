// Package browse は一覧画面のタグ絞り込みとカルーセル表示の状態を扱う。
// 元はクライアント側のフック／スライダー状態だったロジックのサーバー側実装。
package browse

// AllTags タグ絞り込みを解除するセンチネル値
const AllTags = "all"

// Tagged タグ配列を持つ一覧アイテム
type Tagged interface {
	TagList() []string
}

// TagVocabulary 全アイテムのタグの和集合を重複なしで返す。
// 順序は最初に出現した順を保つ。
func TagVocabulary[T Tagged](items []T) []string {
	seen := make(map[string]bool)
	vocab := []string{}

	for _, item := range items {
		for _, tag := range item.TagList() {
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			vocab = append(vocab, tag)
		}
	}

	return vocab
}

// FilterByTag 指定タグを持つアイテムだけを返す。
// tag が AllTags または空文字の場合は全件を返す。
func FilterByTag[T Tagged](items []T, tag string) []T {
	if tag == AllTags || tag == "" {
		return items
	}

	filtered := []T{}
	for _, item := range items {
		for _, t := range item.TagList() {
			if t == tag {
				filtered = append(filtered, item)
				break
			}
		}
	}

	return filtered
}

// Carousel 絞り込み済みリスト上のゼロ基点カーソル。
// 前後の移動はリスト長で巡回する（先頭から前へ移動すると末尾に戻る）。
type Carousel[T Tagged] struct {
	items    []T
	filtered []T
	tag      string
	cursor   int
}

// NewCarousel カルーセルを作成する。初期状態は絞り込みなし・カーソル0。
func NewCarousel[T Tagged](items []T) *Carousel[T] {
	return &Carousel[T]{
		items:    items,
		filtered: items,
		tag:      AllTags,
	}
}

// SelectTag タグを選択して絞り込む。カーソルは0にリセットされる。
// AllTags の選択は絞り込みを解除する。
func (c *Carousel[T]) SelectTag(tag string) {
	c.tag = tag
	c.filtered = FilterByTag(c.items, tag)
	c.cursor = 0
}

// SelectedTag 現在選択中のタグを返す
func (c *Carousel[T]) SelectedTag() string {
	return c.tag
}

// Items 絞り込み後のアイテムを返す
func (c *Carousel[T]) Items() []T {
	return c.filtered
}

// Cursor 現在のカーソル位置を返す
func (c *Carousel[T]) Cursor() int {
	return c.cursor
}

// Current カーソル位置のアイテムを返す。リストが空なら false。
func (c *Carousel[T]) Current() (T, bool) {
	var zero T
	if len(c.filtered) == 0 {
		return zero, false
	}
	return c.filtered[c.cursor], true
}

// Next カーソルを次へ進める。末尾からは先頭へ巡回する。
func (c *Carousel[T]) Next() {
	if len(c.filtered) == 0 {
		return
	}
	c.cursor = (c.cursor + 1) % len(c.filtered)
}

// Prev カーソルを前へ戻す。先頭からは末尾へ巡回する。
func (c *Carousel[T]) Prev() {
	if len(c.filtered) == 0 {
		return
	}
	c.cursor = (c.cursor - 1 + len(c.filtered)) % len(c.filtered)
}
