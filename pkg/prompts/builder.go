package prompts

import (
	"fmt"
	"strings"

	"github.com/shouni/go-yonkoma-kit/pkg/domain"
)

// StripPromptBuilder は、検証済みの GenerationRequest から生成サービスに渡す
// 自然言語プロンプトを決定論的に組み立てます。副作用は持ちません。
type StripPromptBuilder struct {
	extraSuffix string // 配備側が画風を追い込みたい場合の追加サフィックス（空可）
}

// NewStripPromptBuilder は新しい StripPromptBuilder を生成します。
func NewStripPromptBuilder(extraSuffix string) *StripPromptBuilder {
	return &StripPromptBuilder{extraSuffix: extraSuffix}
}

// BuildDirectPrompt は直接生成方式（1回の画像呼び出しで完結）のプロンプトを構築します。
// 呼び出し元でリクエストは検証済みという前提なのだ。
func (b *StripPromptBuilder) BuildDirectPrompt(req domain.GenerationRequest) string {
	var sb strings.Builder

	sb.WriteString(DirectRoleInstruction)
	sb.WriteString("\n\n")
	sb.WriteString(ArtStyleBlock)
	sb.WriteString("\n\n")
	sb.WriteString(b.characterSection(req.Characters))
	sb.WriteString(b.styleSection(req.Style))

	sb.WriteString("**User's Scenario:**\n")
	sb.WriteString(fmt.Sprintf("- %s\n\n", req.Scenario))

	b.writeReferenceSection(&sb, req.Reference)
	sb.WriteString(structureBlock(req.Layout))
	b.writeSuffix(&sb)

	return sb.String()
}

// BuildPlanningPrompt は台本方式の1段目（JSON台本を要求する）プロンプトを構築します。
func (b *StripPromptBuilder) BuildPlanningPrompt(req domain.GenerationRequest) string {
	var sb strings.Builder

	sb.WriteString(PlanningRoleInstruction)
	sb.WriteString("\n\n")
	sb.WriteString(b.characterSection(req.Characters))
	sb.WriteString(b.styleSection(req.Style))

	sb.WriteString("**User's Scenario:**\n")
	sb.WriteString(fmt.Sprintf("- %s\n\n", req.Scenario))

	if !req.Reference.IsEmpty() {
		sb.WriteString("**Image Reference:**\n")
		sb.WriteString("- An image is attached. Weave its characters, objects, or situation into the planned story.\n\n")
	}

	sb.WriteString(PlanningFormatBlock)
	return sb.String()
}

// BuildCompositionPrompt は台本方式の2段目（確定台本から1枚絵を描かせる）プロンプトを構築します。
// 台本の各コマを順番どおりに線形化し、最後に共通のレイアウト指示を付けるのだ。
func (b *StripPromptBuilder) BuildCompositionPrompt(req domain.GenerationRequest, script []ScriptPanel) string {
	var sb strings.Builder

	sb.WriteString(CompositionRoleInstruction)
	sb.WriteString("\n\n")
	sb.WriteString(ArtStyleBlock)
	sb.WriteString("\n\n")
	sb.WriteString(b.characterSection(req.Characters))

	sb.WriteString("**Planned Panels:**\n")
	for i, panel := range script {
		sb.WriteString(fmt.Sprintf("- Panel %d: %s\n", i+1, panel.VisualDescription))
		if panel.Dialogue == "" {
			sb.WriteString("  Dialogue: (no dialogue, silent panel)\n")
		} else {
			sb.WriteString(fmt.Sprintf("  Dialogue: a speech bubble saying \"%s\"\n", panel.Dialogue))
		}
	}
	sb.WriteString("\n")

	b.writeReferenceSection(&sb, req.Reference)
	sb.WriteString(compositionStructureBlock(len(script)))
	b.writeSuffix(&sb)

	return sb.String()
}

// characterSection は選択キャラクターの視覚的特徴をまとめたセクションです。
func (b *StripPromptBuilder) characterSection(chars []domain.Character) string {
	cues := make([]string, 0, len(chars))
	for _, c := range chars {
		cues = append(cues, c.VisualCue())
	}
	return fmt.Sprintf("**Main Characters:**\n- %s.\n\n", strings.Join(cues, ", "))
}

// styleSection はムード指定がある場合にだけセクションを出力します。
func (b *StripPromptBuilder) styleSection(style domain.Style) string {
	if style == "" || style.Directive() == "" {
		return ""
	}
	return fmt.Sprintf("**Mood:**\n- %s\n\n", style.Directive())
}

// writeReferenceSection は参照画像の有無に応じた指示文を書き込みます。
// 添付がない場合はセクションごと省略します。
func (b *StripPromptBuilder) writeReferenceSection(sb *strings.Builder, ref *domain.ReferenceImage) {
	if ref.IsEmpty() {
		return
	}
	sb.WriteString("**Image Reference:**\n")
	sb.WriteString(fmt.Sprintf("- %s\n\n", ReferenceImageDirective))
}

func (b *StripPromptBuilder) writeSuffix(sb *strings.Builder) {
	if b.extraSuffix == "" {
		return
	}
	sb.WriteString(fmt.Sprintf("\n**Additional Style Notes:**\n- %s\n", b.extraSuffix))
}

// structureBlock はレイアウト指定に応じた構成ルールを返します。
func structureBlock(layout domain.Layout) string {
	if layout == domain.LayoutGrid {
		return GridStructureBlock
	}
	return StripStructureBlock
}

// compositionStructureBlock は台本のコマ数に合わせた合成指示を返すのだ。
// 台本が4コマ未満で返ってきた場合はそのコマ数のまま描かせ、水増ししません。
func compositionStructureBlock(panelCount int) string {
	return fmt.Sprintf(`**Comic Structure & Rules:**
1.  **Layout:** The final output must be ONE SINGLE IMAGE, vertically divided into %d equal square panels (top to bottom), one per planned panel, in order.
2.  **Dialogue:** Render each panel's dialogue as a short legible speech bubble. Silent panels get no bubble.
3.  **Consistency:** Ensure the characters look consistent across all panels.
4.  **Output:** Generate only the high-quality digital illustration of the comic strip.`, panelCount)
}
