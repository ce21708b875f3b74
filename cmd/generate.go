package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-yonkoma-kit/internal/config"
	"github.com/shouni/go-yonkoma-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// generateCmd は、AIによる4コマ漫画の生成を実行するのだ。
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "AIに4コマ漫画を生成させますなのだ。",
	Long: `シナリオとキャラクター選択から縦4コマの漫画ストリップを1枚生成するのだ。
出力は画像ファイルで、履歴には画像抜きのメタデータが積まれるのだよ。`,
	RunE: generateCommand,
}

func generateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. 必須チェック
	if opts.Scenario == "" {
		return fmt.Errorf("シナリオ（--scenario）を指定してほしいのだ")
	}

	// 2. 環境変数等から基本設定をロードするのだ
	cfg := config.LoadConfig()
	cfg.Options = opts

	slog.Info("漫画生成パイプラインを起動するのだ！",
		"pipeline", opts.Pipeline,
		"text_model", opts.AIModel,
		"image_model", opts.ImageModel,
		"characters", opts.Characters)

	// 3. 更新した config を考慮しつつパイプラインを実行するのだ
	if err := pipeline.Execute(ctx, cfg); err != nil {
		return fmt.Errorf("パイプライン実行中にエラーが発生したのだ: %w", err)
	}

	slog.Info("すべての生成工程が完了したのだ！")
	return nil
}
