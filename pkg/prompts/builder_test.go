package prompts

import (
	"strings"
	"testing"

	"github.com/shouni/go-yonkoma-kit/pkg/domain"
)

func baseRequest() domain.GenerationRequest {
	return domain.GenerationRequest{
		Scenario:   "two friends find a button in a forest",
		Characters: []domain.Character{domain.CharacterChiikawa, domain.CharacterHachiware},
	}.Normalize()
}

func TestStripPromptBuilder_BuildDirectPrompt(t *testing.T) {
	pb := NewStripPromptBuilder("")

	t.Run("キャラクター特徴とシナリオと構成ルールが入るのだ", func(t *testing.T) {
		prompt := pb.BuildDirectPrompt(baseRequest())

		for _, want := range []string{
			"small white round creature",       // Chiikawa の特徴
			"blue hachi-pattern hair",          // Hachiware の特徴
			"two friends find a button in a forest",
			"ONE SINGLE IMAGE",
			"4 equal square panels",
			"Chinese dialogue",
		} {
			if !strings.Contains(prompt, want) {
				t.Errorf("プロンプトに %q が含まれていないのだ", want)
			}
		}
	})

	t.Run("参照画像がなければ指示文ごと省略するのだ", func(t *testing.T) {
		prompt := pb.BuildDirectPrompt(baseRequest())
		if strings.Contains(prompt, "Image Reference") {
			t.Error("参照画像なしなのに Image Reference セクションが出力されました")
		}
	})

	t.Run("参照画像があれば指示文を差し込むのだ", func(t *testing.T) {
		req := baseRequest()
		req.Reference = &domain.ReferenceImage{MimeType: "image/png", Data: []byte{1, 2, 3}}

		prompt := pb.BuildDirectPrompt(req)
		if !strings.Contains(prompt, ReferenceImageDirective) {
			t.Error("参照画像ありなのに指示文が含まれていないのだ")
		}
	})

	t.Run("ムード指定があればセクションが出るのだ", func(t *testing.T) {
		req := baseRequest()
		req.Style = domain.StyleChaotic

		prompt := pb.BuildDirectPrompt(req)
		if !strings.Contains(prompt, domain.StyleChaotic.Directive()) {
			t.Error("ムード指示文が含まれていないのだ")
		}
	})

	t.Run("同じ入力からは同じプロンプトが出るのだ（決定論）", func(t *testing.T) {
		req := baseRequest()
		if pb.BuildDirectPrompt(req) != pb.BuildDirectPrompt(req) {
			t.Error("プロンプト構築が決定論的ではありません")
		}
	})
}

func TestStripPromptBuilder_BuildPlanningPrompt(t *testing.T) {
	pb := NewStripPromptBuilder("")
	prompt := pb.BuildPlanningPrompt(baseRequest())

	for _, want := range []string{
		"JSON array",
		"visual_description",
		"dialogue",
		"at most 4 panel objects",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("プランニングプロンプトに %q が含まれていないのだ", want)
		}
	}
}

func TestStripPromptBuilder_BuildCompositionPrompt(t *testing.T) {
	pb := NewStripPromptBuilder("")
	script := []ScriptPanel{
		{Panel: 1, VisualDescription: "Chiikawa spots a red button", Dialogue: "这是什么？"},
		{Panel: 2, VisualDescription: "Hachiware presses it", Dialogue: ""},
		{Panel: 3, VisualDescription: "The forest turns upside down", Dialogue: "哇！！"},
	}

	prompt := pb.BuildCompositionPrompt(baseRequest(), script)

	t.Run("各コマが順番どおり線形化されるのだ", func(t *testing.T) {
		p1 := strings.Index(prompt, "Panel 1: Chiikawa spots a red button")
		p2 := strings.Index(prompt, "Panel 2: Hachiware presses it")
		p3 := strings.Index(prompt, "Panel 3: The forest turns upside down")
		if p1 < 0 || p2 < 0 || p3 < 0 {
			t.Fatal("コマの記述が欠けているのだ")
		}
		if !(p1 < p2 && p2 < p3) {
			t.Error("コマの順序が保たれていないのだ")
		}
	})

	t.Run("無言のコマは吹き出しなし指示になるのだ", func(t *testing.T) {
		if !strings.Contains(prompt, "(no dialogue, silent panel)") {
			t.Error("無言コマの指示が含まれていないのだ")
		}
	})

	t.Run("コマ数に合わせたレイアウト指示になるのだ", func(t *testing.T) {
		if !strings.Contains(prompt, "3 equal square panels") {
			t.Error("3コマ台本に対するレイアウト指示が出ていないのだ")
		}
	})
}

func TestStripPromptBuilder_ExtraSuffix(t *testing.T) {
	pb := NewStripPromptBuilder("watercolor texture")
	prompt := pb.BuildDirectPrompt(baseRequest())
	if !strings.Contains(prompt, "watercolor texture") {
		t.Error("追加サフィックスが含まれていないのだ")
	}
}
