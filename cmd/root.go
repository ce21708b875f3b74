package cmd

import (
	"log/slog"
	"os"

	"github.com/shouni/go-yonkoma-kit/internal/config"

	"github.com/spf13/cobra"
)

var opts config.GenerateOptions

var rootCmd = &cobra.Command{
	Use:   "yonkoma",
	Short: "ちいかわ4コマ漫画ジェネレーターなのだ。",
	Long: `キャラクターを選んでシナリオを一行書くと、AIが縦4コマ漫画を1枚の画像として
生成するのだ。生成結果はローカル履歴（画像なしのメタデータ）に積み上がるのだよ。`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags() {
	// --- 生成入力関連 ---
	rootCmd.PersistentFlags().StringVarP(&opts.Scenario, "scenario", "s", "", "物語のシナリオ（400文字まで）なのだ。")
	rootCmd.PersistentFlags().StringSliceVarP(&opts.Characters, "characters", "c", []string{"Chiikawa"}, "登場キャラクター（カンマ区切り）なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.Style, "style", "", "ムード指定（Standard/Eating/Crying/Sleepy/Chaotic）なのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.Layout, "layout", "l", "strip", "レイアウト形式（strip または grid）なのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.Pipeline, "pipeline", "p", "direct", "生成パイプライン（direct または scripted）なのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.ReferenceImage, "reference", "r", "", "参照画像（パス・URL・data URI、任意）なのだ。")

	// --- 生成結果の出力設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputImageDir, "output-image-dir", "i", config.DefaultOutputImageDir, "生成された画像を保存するディレクトリなのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.HistoryFile, "history-file", config.DefaultHistoryFile, "履歴（画像なし）の保存先ファイルなのだ。")

	// --- AIモデル・挙動設定 ---
	rootCmd.PersistentFlags().StringVar(&opts.AIModel, "model", config.DefaultModel, "台本生成に使う Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", config.DefaultImageModel, "画像生成に使う Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "Webリクエストのタイムアウトなのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.StyleSuffix, "style-suffix", "", "プロンプト末尾に足す画風指定（任意）なのだ。")
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	addAppFlags()
	rootCmd.AddCommand(generateCmd, historyCmd, keyCmd)

	// 失敗の報告は1回だけにする（cobra 側の出力は抑止済み）
	if err := rootCmd.Execute(); err != nil {
		slog.Error("コマンドの実行に失敗したのだ", "error", err)
		os.Exit(1)
	}
}
