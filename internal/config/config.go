package config

import (
	"time"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultModel       = "gemini-3-flash-preview"     // 台本プランニング用
	DefaultImageModel  = "gemini-3-pro-image-preview" // 画像合成用
	DefaultAspectRatio = "9:16"                       // 縦4コマストリップ向け
	DefaultHTTPTimeout = 30 * time.Second
	DefaultCacheTTL    = 1 * time.Hour
	DefaultRateEvery   = 10 * time.Second // 生成呼び出しの最小間隔

	DefaultHistoryFile    = "output/chiikawa_history.json" // 履歴（画像なし）の保存先
	DefaultOutputImageDir = "output/comics"                // 生成画像の保存先ディレクトリ
)

// Config はアプリケーション全体の環境設定（APIキーやモデル名）を保持する構造体なのだ。
type Config struct {
	GeminiAPIKey     string
	GeminiModel      string
	GeminiImageModel string
	AspectRatio      string

	Options GenerateOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	return &Config{
		GeminiAPIKey:     envutil.GetEnv("GEMINI_API_KEY", ""),
		GeminiModel:      envutil.GetEnv("GEMINI_MODEL", DefaultModel),
		GeminiImageModel: envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		AspectRatio:      envutil.GetEnv("COMIC_ASPECT_RATIO", DefaultAspectRatio),
	}
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// 生成入力関連
	Scenario       string   // --scenario: 物語のシナリオ（400文字まで）
	Characters     []string // --characters: 登場キャラクター
	Style          string   // --style: ムード指定
	Layout         string   // --layout: strip または grid
	Pipeline       string   // --pipeline: direct または scripted
	ReferenceImage string   // --reference: 参照画像（パス・URL・data URI）

	// 出力関連
	OutputImageDir string // --output-image-dir
	HistoryFile    string // --history-file

	// AI挙動設定
	AIModel    string // --model: テキスト生成用のGeminiモデル
	ImageModel string // --image-model: 画像生成用のGeminiモデル

	// 実行制御
	HTTPTimeout time.Duration // --http-timeout
	StyleSuffix string        // --style-suffix: 追加の画風サフィックス
}
