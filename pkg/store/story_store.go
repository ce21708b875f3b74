package store

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/shouni/go-yonkoma-kit/pkg/domain"
)

// StoriesKey は履歴コレクションを保存するキーです。
const StoriesKey = "chiikawa-stories"

// StoryStore は生成済みストーリーの新しい順コレクションを保持し、
// 変更のたびに画像を抜いたコピーを永続化します。
//
// メモリ上のコレクションは同一セッション内の即時表示のために
// 完全な画像ペイロードを保持し続けます。画像バイト列がストレージの
// 容量制限を超え得るため、永続化されるのはメタデータだけです。
// したがって再読み込み後のコマの画像は設計上すべて空であり、
// 呼び出し側は空ペイロードを「保持していない」と解釈する必要があるのだ。
type StoryStore struct {
	kv      KeyValue
	mu      sync.Mutex
	stories domain.StoryCollection
}

// NewStoryStore は永続化先を注入して StoryStore を生成し、
// 保存済みの履歴を1回だけ読み込みます。
func NewStoryStore(kv KeyValue) *StoryStore {
	s := &StoryStore{kv: kv}
	s.stories = s.load()
	return s
}

// load は永続化済みの履歴を読み込みます。
// キーの欠落・壊れたJSONはエラーにせず空のコレクションを返すのだ。
func (s *StoryStore) load() domain.StoryCollection {
	raw, ok, err := s.kv.Get(StoriesKey)
	if err != nil {
		slog.Warn("履歴の読み込みに失敗したため空の状態で開始します", "error", err)
		return domain.StoryCollection{}
	}
	if !ok || raw == "" {
		return domain.StoryCollection{}
	}

	var stories domain.StoryCollection
	if err := json.Unmarshal([]byte(raw), &stories); err != nil {
		slog.Warn("保存済み履歴のパースに失敗したため破棄します", "error", err)
		return domain.StoryCollection{}
	}
	return stories
}

// Stories は現在のコレクションのスナップショットを返します。
func (s *StoryStore) Stories() domain.StoryCollection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(domain.StoryCollection(nil), s.stories...)
}

// Add は新しいストーリーを先頭に追加して永続化します。
func (s *StoryStore) Add(story domain.ComicStory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stories = s.stories.Prepend(story)
	s.persist()
}

// Remove は指定IDのストーリーを削除して永続化します。
// 存在しないIDは no-op です。削除確認はプレゼンテーション層の責務であり、
// ここでは無条件に削除するのだ。
func (s *StoryStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stories = s.stories.RemoveByID(id)
	s.persist()
}

// Clear は履歴を全件削除して空のコレクションを永続化します。
func (s *StoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stories = domain.StoryCollection{}
	s.persist()
}

// persist は画像ペイロードを空にしたコピーを書き出します。
// 永続化の失敗（容量超過・シリアライズ失敗）はログに残して握りつぶし、
// メモリ上の変更を巻き戻すことはありません。
func (s *StoryStore) persist() {
	data, err := json.Marshal(s.stories.StripImages())
	if err != nil {
		slog.Warn("履歴のシリアライズに失敗しました", "error", err)
		return
	}
	if err := s.kv.Set(StoriesKey, string(data)); err != nil {
		slog.Warn("履歴の保存に失敗しました", "error", err)
	}
}
