package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/shouni/go-yonkoma-kit/internal/builder"
	"github.com/shouni/go-yonkoma-kit/internal/config"
	"github.com/shouni/go-yonkoma-kit/pkg/domain"
)

// Execute はフラグと環境変数に基づいて漫画生成を1回実行し、
// 生成された画像をローカルへ保存するのだ。
func Execute(ctx context.Context, cfg *config.Config) error {
	appCtx, err := builder.BuildAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	req, err := buildRequest(ctx, appCtx)
	if err != nil {
		return err
	}

	story, err := appCtx.Manager.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("漫画生成に失敗したのだ: %w", err)
	}

	outputPath, err := saveStoryImage(appCtx.Options, story)
	if err != nil {
		return err
	}

	slog.Info("漫画が完成したのだ！", "story_id", story.ID, "path", outputPath)
	return nil
}

// buildRequest は CLI オプションから GenerationRequest を組み立てます。
// 参照画像の指定があれば Loader で取得しますが、指定なしは単に添付なしです。
func buildRequest(ctx context.Context, appCtx *builder.AppContext) (domain.GenerationRequest, error) {
	opts := appCtx.Options

	chars := make([]domain.Character, 0, len(opts.Characters))
	for _, name := range opts.Characters {
		chars = append(chars, domain.Character(strings.TrimSpace(name)))
	}

	ref, err := appCtx.Loader.Load(ctx, opts.ReferenceImage)
	if err != nil {
		return domain.GenerationRequest{}, fmt.Errorf("参照画像の準備に失敗したのだ: %w", err)
	}

	return domain.GenerationRequest{
		Scenario:   opts.Scenario,
		Characters: chars,
		Reference:  ref,
		Style:      domain.Style(opts.Style),
		Layout:     domain.Layout(opts.Layout),
		Pipeline:   domain.PipelineMode(opts.Pipeline),
	}, nil
}

// saveStoryImage は最初のコマの画像バイト列をディスクへ書き出します。
func saveStoryImage(opts config.GenerateOptions, story *domain.ComicStory) (string, error) {
	dir := opts.OutputImageDir
	if dir == "" {
		dir = config.DefaultOutputImageDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("出力ディレクトリの作成に失敗したのだ: %w", err)
	}

	panel := story.Panels[0]
	outputPath := filepath.Join(dir, fmt.Sprintf("comic_%s%s", story.ID, extensionFor(panel.MimeType)))
	if err := os.WriteFile(outputPath, panel.ImageData, 0o644); err != nil {
		return "", fmt.Errorf("画像の保存に失敗したのだ: %w", err)
	}
	return outputPath, nil
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
