package prompts

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// MaxScriptPanels は台本として採用するコマ数の上限です。
// AI が多めに返してきた場合は先頭からこの数まで切り詰め、足りない分を
// 水増しすることは決してしないのだ。
const MaxScriptPanels = 4

// ScriptPanel は台本生成呼び出しが返す1コマ分の記述子です。
type ScriptPanel struct {
	Panel             int    `json:"panel"`
	VisualDescription string `json:"visual_description"`
	Dialogue          string `json:"dialogue"` // 空文字は無言のコマ
}

var jsonBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(.*\\S)\\s*```")

// ParseScript は AI が返したテキストを台本としてパースします。
// Markdown のコードフェンスを剥がした上で厳密に JSON として解釈し、
// 形式が契約に合わない場合はエラーを返すのだ。
func ParseScript(raw string) ([]ScriptPanel, error) {
	cleaned := strings.TrimSpace(raw)
	if m := jsonBlockRegex.FindStringSubmatch(cleaned); len(m) == 2 {
		cleaned = m[1]
	}

	var panels []ScriptPanel
	if err := json.Unmarshal([]byte(cleaned), &panels); err != nil {
		return nil, fmt.Errorf("台本JSONのパースに失敗しました: %w", err)
	}
	if len(panels) == 0 {
		return nil, fmt.Errorf("台本JSONにコマが1つも含まれていません")
	}
	for i, p := range panels {
		if strings.TrimSpace(p.VisualDescription) == "" {
			return nil, fmt.Errorf("コマ%d の visual_description が空です", i+1)
		}
	}

	if len(panels) > MaxScriptPanels {
		panels = panels[:MaxScriptPanels]
	}
	return panels, nil
}
