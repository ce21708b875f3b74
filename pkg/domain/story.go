package domain

import (
	"fmt"
	"time"
)

// Layout は1話分の漫画がどういう形で画像化されているかを表すタグです。
type Layout string

const (
	// LayoutStrip は全コマを1枚に合成した縦長ストリップ形式です。
	LayoutStrip Layout = "strip"
	// LayoutGrid はコマごとに独立した画像を持つ旧形式なのだ。
	// 新規生成では使われないけれど、保存済み履歴の読み込みで現れます。
	LayoutGrid Layout = "grid"
)

// IsValid は既知のレイアウトタグかどうかを判定します。
func (l Layout) IsValid() bool {
	return l == LayoutStrip || l == LayoutGrid
}

// StripPanelCount と GridPanelCount はレイアウトごとの必須コマ数です。
const (
	StripPanelCount = 1
	GridPanelCount  = 4
)

// GridBeats は grid レイアウトの4コマが担う物語上の役割（起承転結）です。
var GridBeats = [GridPanelCount]string{"setup", "development", "twist", "punchline"}

// ComicPanel は漫画の1コマ分の成果物です。
// ImageData は永続化時に空へ差し替えられるため、空 = 「保持していない」を意味し、
// エラーとして扱ってはいけないのだ。
type ComicPanel struct {
	PanelNumber       int    `json:"panel_number"` // 1始まり
	ImageData         []byte `json:"image_data,omitempty"`
	MimeType          string `json:"mime_type,omitempty"`
	VisualDescription string `json:"visual_description"`
	Dialogue          string `json:"dialogue"`
}

// HasImage は画像ペイロードを保持しているかを返します。
func (p ComicPanel) HasImage() bool {
	return len(p.ImageData) > 0
}

// ComicStory は1回の生成で得られた漫画1話分の成果物です。
// 生成に成功した時点で不変であり、以後は削除されるだけです。
type ComicStory struct {
	ID         string       `json:"id"`
	Prompt     string       `json:"prompt"` // ユーザーが入力したシナリオ原文
	Characters []Character  `json:"characters"`
	Panels     []ComicPanel `json:"panels"`
	CreatedAt  time.Time    `json:"created_at"`
	Layout     Layout       `json:"layout"`
}

// Validate はレイアウトとコマ数の不変条件を検査します。
// strip は必ず1コマ、grid は必ず4コマ（起承転結で1コマずつ）なのだ。
func (s ComicStory) Validate() error {
	switch s.Layout {
	case LayoutStrip:
		if len(s.Panels) != StripPanelCount {
			return fmt.Errorf("strip レイアウトはちょうど%dコマである必要があります: 実際 %d", StripPanelCount, len(s.Panels))
		}
	case LayoutGrid:
		if len(s.Panels) != GridPanelCount {
			return fmt.Errorf("grid レイアウトはちょうど%dコマである必要があります: 実際 %d", GridPanelCount, len(s.Panels))
		}
	default:
		return fmt.Errorf("未知のレイアウトです: %q", s.Layout)
	}
	if s.ID == "" {
		return fmt.Errorf("ストーリーIDが空です")
	}
	return nil
}

// StripImages は全コマの画像ペイロードを空にしたディープコピーを返します。
// 永続化はメタデータ専用であり、画像バイト列はストレージ容量を超過し得るため
// 保存前に必ずこの変換を通すのだ。
func (s ComicStory) StripImages() ComicStory {
	stripped := s
	stripped.Characters = append([]Character(nil), s.Characters...)
	stripped.Panels = make([]ComicPanel, len(s.Panels))
	for i, p := range s.Panels {
		p.ImageData = nil
		stripped.Panels[i] = p
	}
	return stripped
}
