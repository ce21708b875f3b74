package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shouni/go-yonkoma-kit/pkg/domain"
	"github.com/shouni/go-yonkoma-kit/pkg/prompts"
)

// DefaultAspectRatio は縦ストリップ向けのアスペクト比ヒントです。
const DefaultAspectRatio = "9:16"

// StoryGenerator は1回の生成試行を最初から最後まで駆動するオーケストレーターです。
// 必ず「完成した ComicStory」か「分類済みの *GenerationError」のどちらか一方だけを
// 返します。自動リトライは行わず、失敗時に履歴へ触れることもありません。
type StoryGenerator struct {
	text        TextGenerator
	image       ImageGenerator
	prompter    *prompts.StripPromptBuilder
	ids         *IDGenerator
	now         func() time.Time
	aspectRatio string
}

// NewStoryGenerator は StoryGenerator を初期化します。
// text は台本方式を使わない配備では nil を許容します。
func NewStoryGenerator(text TextGenerator, image ImageGenerator, prompter *prompts.StripPromptBuilder, aspectRatio string) (*StoryGenerator, error) {
	if image == nil {
		return nil, fmt.Errorf("image (ImageGenerator) is required")
	}
	if prompter == nil {
		return nil, fmt.Errorf("prompter (StripPromptBuilder) is required")
	}
	if aspectRatio == "" {
		aspectRatio = DefaultAspectRatio
	}

	return &StoryGenerator{
		text:        text,
		image:       image,
		prompter:    prompter,
		ids:         NewIDGenerator(),
		now:         time.Now,
		aspectRatio: aspectRatio,
	}, nil
}

// Generate は生成試行を1回実行します。
func (sg *StoryGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.ComicStory, *GenerationError) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, NewGenerationError(KindEmptyInput, err)
	}

	slog.Info("漫画生成を開始します",
		"pipeline", req.Pipeline,
		"characters", len(req.Characters),
		"has_reference", !req.Reference.IsEmpty())

	start := sg.now()
	var (
		story  *domain.ComicStory
		genErr *GenerationError
	)
	switch req.Pipeline {
	case domain.PipelineScripted:
		story, genErr = sg.generateScripted(ctx, req)
	default:
		story, genErr = sg.generateDirect(ctx, req)
	}

	if genErr != nil {
		slog.Warn("漫画生成に失敗しました", "kind", genErr.Kind, "error", genErr.Err)
		return nil, genErr
	}

	slog.Info("漫画生成が完了しました",
		"story_id", story.ID,
		"duration", time.Since(start).Round(time.Millisecond))
	return story, nil
}

// generateDirect は1回の画像呼び出しで完結する方式です。
func (sg *StoryGenerator) generateDirect(ctx context.Context, req domain.GenerationRequest) (*domain.ComicStory, *GenerationError) {
	prompt := sg.prompter.BuildDirectPrompt(req)

	img, err := sg.image.GenerateImage(ctx, ImageRequest{
		Prompt:      prompt,
		Reference:   req.Reference,
		AspectRatio: sg.aspectRatio,
	})
	if err != nil {
		return nil, Classify(err)
	}

	panel := domain.ComicPanel{
		PanelNumber:       1, // ストリップ全体を1コマとして扱う
		ImageData:         img.Data,
		MimeType:          img.MimeType,
		VisualDescription: "Full 4-panel strip",
		Dialogue:          "Full story",
	}
	return sg.wrapStory(req, panel), nil
}

// generateScripted は台本生成→画像合成の2段階方式です。
// 台本のパース失敗は KindScriptParseError として確定し、画像呼び出しへは進みません。
func (sg *StoryGenerator) generateScripted(ctx context.Context, req domain.GenerationRequest) (*domain.ComicStory, *GenerationError) {
	// text は direct 専用の配備では nil なので、リモート呼び出しの前に弾くのだ
	if sg.text == nil {
		return nil, NewGenerationError(KindBadRequest,
			errors.New("台本生成能力が構成されていないため scripted パイプラインは使えません"))
	}

	planningPrompt := sg.prompter.BuildPlanningPrompt(req)

	raw, err := sg.text.GenerateText(ctx, planningPrompt)
	if err != nil {
		return nil, Classify(err)
	}

	script, err := prompts.ParseScript(raw)
	if err != nil {
		return nil, NewGenerationError(KindScriptParseError, err)
	}
	slog.Info("台本を確定しました", "panels", len(script))

	compositionPrompt := sg.prompter.BuildCompositionPrompt(req, script)
	img, err := sg.image.GenerateImage(ctx, ImageRequest{
		Prompt:      compositionPrompt,
		Reference:   req.Reference,
		AspectRatio: sg.aspectRatio,
	})
	if err != nil {
		return nil, Classify(err)
	}

	// 画像は1枚だが、台本のテキストは将来のコマ別表示のために保持しておくのだ。
	panel := domain.ComicPanel{
		PanelNumber:       1,
		ImageData:         img.Data,
		MimeType:          img.MimeType,
		VisualDescription: linearizeDescriptions(script),
		Dialogue:          linearizeDialogues(script),
	}
	return sg.wrapStory(req, panel), nil
}

// wrapStory は合成結果を strip レイアウトの単一コマストーリーに包みます。
func (sg *StoryGenerator) wrapStory(req domain.GenerationRequest, panel domain.ComicPanel) *domain.ComicStory {
	return &domain.ComicStory{
		ID:         sg.ids.Next(),
		Prompt:     req.Scenario,
		Characters: append([]domain.Character(nil), req.Characters...),
		Panels:     []domain.ComicPanel{panel},
		CreatedAt:  sg.now(),
		Layout:     domain.LayoutStrip,
	}
}

func linearizeDescriptions(script []prompts.ScriptPanel) string {
	lines := make([]string, 0, len(script))
	for i, p := range script {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, p.VisualDescription))
	}
	return strings.Join(lines, "\n")
}

func linearizeDialogues(script []prompts.ScriptPanel) string {
	lines := make([]string, 0, len(script))
	for i, p := range script {
		if p.Dialogue == "" {
			lines = append(lines, fmt.Sprintf("%d. (silent)", i+1))
			continue
		}
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, p.Dialogue))
	}
	return strings.Join(lines, "\n")
}

// WithClock はテストのためにクロックとIDジェネレーターを差し替えます。
func (sg *StoryGenerator) WithClock(now func() time.Time) *StoryGenerator {
	sg.now = now
	sg.ids = NewIDGeneratorWithClock(now)
	return sg
}
