package generator

import (
	"fmt"
	"sync/atomic"
	"time"
)

// IDGenerator は時刻由来のストーリーIDを払い出します。
// IDはコレクションの削除操作のキーになるため、同一ミリ秒内に複数の生成が
// 完了しても必ず互いに異なる値になるよう、単調増加カウンタを併記するのだ。
type IDGenerator struct {
	now     func() time.Time
	counter atomic.Uint64
}

// NewIDGenerator は実時間クロックを使う IDGenerator を返します。
func NewIDGenerator() *IDGenerator {
	return NewIDGeneratorWithClock(time.Now)
}

// NewIDGeneratorWithClock はクロックを注入できるコンストラクタです。テスト用。
func NewIDGeneratorWithClock(now func() time.Time) *IDGenerator {
	return &IDGenerator{now: now}
}

// Next は新しいストーリーIDを返します。
func (g *IDGenerator) Next() string {
	seq := g.counter.Add(1)
	return fmt.Sprintf("%d-%04d", g.now().UnixMilli(), seq%10000)
}
