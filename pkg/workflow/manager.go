package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/shouni/go-yonkoma-kit/pkg/domain"
	"github.com/shouni/go-yonkoma-kit/pkg/generator"
	"github.com/shouni/go-yonkoma-kit/pkg/store"
)

// ErrBusy は生成が進行中のときに追加の生成要求を弾くためのエラーです。
// 生成の同時実行は仕様として1件までであり、これは分類済み生成エラーではなく
// 呼び出し側の制御の問題として扱うのだ。
var ErrBusy = errors.New("別の生成が進行中です")

// Manager はプレゼンテーション層から見た唯一の窓口です。
// オーケストレーターと履歴ストアを束ね、生成の単独飛行を保証します。
type Manager struct {
	generator *generator.StoryGenerator
	store     *store.StoryStore
	sem       *semaphore.Weighted
	busy      atomic.Bool
}

// New は Manager を初期化します。
func New(sg *generator.StoryGenerator, st *store.StoryStore) (*Manager, error) {
	if sg == nil {
		return nil, fmt.Errorf("generator (StoryGenerator) is required")
	}
	if st == nil {
		return nil, fmt.Errorf("store (StoryStore) is required")
	}
	return &Manager{
		generator: sg,
		store:     st,
		sem:       semaphore.NewWeighted(1),
	}, nil
}

// Busy は生成が進行中かどうかを返します。プレゼンテーション層は
// これを見て送信ボタンを無効化する想定です。
func (m *Manager) Busy() bool {
	return m.busy.Load()
}

// Generate は1回の生成試行を実行し、成功したストーリーを履歴へ追加します。
// すでに生成が進行中の場合は ErrBusy を返します。
// 失敗時は分類済みの *generator.GenerationError が返り、履歴は変更されません。
func (m *Manager) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.ComicStory, error) {
	if !m.sem.TryAcquire(1) {
		return nil, ErrBusy
	}
	m.busy.Store(true)
	defer func() {
		m.busy.Store(false)
		m.sem.Release(1)
	}()

	story, genErr := m.generator.Generate(ctx, req)
	if genErr != nil {
		return nil, genErr
	}

	m.store.Add(*story)
	return story, nil
}

// Stories は履歴のスナップショットを新しい順で返します。
func (m *Manager) Stories() domain.StoryCollection {
	return m.store.Stories()
}

// Remove は指定IDのストーリーを履歴から削除します。存在しないIDは no-op です。
// 削除前の確認ダイアログはプレゼンテーション層が出すものであり、ここでは
// 無条件に削除します。
func (m *Manager) Remove(id string) {
	m.store.Remove(id)
}

// Clear は履歴を全件削除します。
func (m *Manager) Clear() {
	m.store.Clear()
}
