package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ScenarioMaxLength はシナリオ入力の上限文字数（rune単位）です。
const ScenarioMaxLength = 400

// PipelineMode は生成パイプラインの選択肢です。
type PipelineMode string

const (
	// PipelineDirect は1回の画像生成呼び出しで完結する方式です。
	PipelineDirect PipelineMode = "direct"
	// PipelineScripted は台本生成→画像生成の2段階方式なのだ。
	PipelineScripted PipelineMode = "scripted"
)

// IsValid はサポートされているパイプラインモードかを判定します。
func (m PipelineMode) IsValid() bool {
	return m == PipelineDirect || m == PipelineScripted
}

// ReferenceImage はユーザーが添付した参照画像です。
type ReferenceImage struct {
	MimeType string
	Data     []byte
}

// IsEmpty はペイロードを持たない参照画像かどうかを返します。
func (r *ReferenceImage) IsEmpty() bool {
	return r == nil || len(r.Data) == 0
}

// 入力検証の失敗理由です。リモート呼び出しの前に弾かれます。
var (
	ErrEmptyScenario    = errors.New("シナリオが空です")
	ErrScenarioTooLong  = fmt.Errorf("シナリオは%d文字以内である必要があります", ScenarioMaxLength)
	ErrNoCharacter      = errors.New("キャラクターが1体も選択されていません")
	ErrUnknownCharacter = errors.New("未知のキャラクターが含まれています")
	ErrUnknownStyle     = errors.New("未知のスタイルが指定されています")
	ErrUnknownLayout    = errors.New("未知のレイアウトが指定されています")
	ErrUnknownPipeline  = errors.New("未知のパイプラインモードが指定されています")
)

// GenerationRequest は1回の生成試行に必要な入力一式です。
// 生成のたびに新しく組み立てられ、永続化はされません。
type GenerationRequest struct {
	Scenario   string
	Characters []Character
	Reference  *ReferenceImage // nil なら参照画像なし（任意）
	Style      Style           // 空なら指定なし
	Layout     Layout          // 空なら strip
	Pipeline   PipelineMode    // 空なら direct
}

// Normalize はシナリオの前後空白を除去し、キャラクターの重複を排除し、
// 未指定のレイアウト/パイプラインに既定値を補った新しいリクエストを返すのだ。
func (r GenerationRequest) Normalize() GenerationRequest {
	next := r
	next.Scenario = strings.TrimSpace(r.Scenario)

	seen := make(map[Character]struct{}, len(r.Characters))
	next.Characters = make([]Character, 0, len(r.Characters))
	for _, c := range r.Characters {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		next.Characters = append(next.Characters, c)
	}

	if next.Layout == "" {
		next.Layout = LayoutStrip
	}
	if next.Pipeline == "" {
		next.Pipeline = PipelineDirect
	}
	return next
}

// Validate は Normalize 済みのリクエストを検査します。
// ここを通過したリクエストだけがリモート呼び出しに進めます。
func (r GenerationRequest) Validate() error {
	if r.Scenario == "" {
		return ErrEmptyScenario
	}
	if utf8.RuneCountInString(r.Scenario) > ScenarioMaxLength {
		return ErrScenarioTooLong
	}
	if len(r.Characters) == 0 {
		return ErrNoCharacter
	}
	for _, c := range r.Characters {
		if !c.IsValid() {
			return fmt.Errorf("%w: %q", ErrUnknownCharacter, c)
		}
	}
	if r.Style != "" && !r.Style.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownStyle, r.Style)
	}
	if !r.Layout.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownLayout, r.Layout)
	}
	if !r.Pipeline.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownPipeline, r.Pipeline)
	}
	return nil
}
