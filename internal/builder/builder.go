package builder

import (
	"context"
	"fmt"

	"github.com/shouni/go-yonkoma-kit/internal/config"
	"github.com/shouni/go-yonkoma-kit/pkg/generator"
	"github.com/shouni/go-yonkoma-kit/pkg/ingest"
	"github.com/shouni/go-yonkoma-kit/pkg/prompts"
	"github.com/shouni/go-yonkoma-kit/pkg/store"
	"github.com/shouni/go-yonkoma-kit/pkg/workflow"

	"github.com/patrickmn/go-cache"
	"github.com/shouni/go-gemini-client/gemini"
	"github.com/shouni/go-http-kit/httpkit"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const defaultGeminiTemperature = float32(0.4)

// BuildAppContext は設定から全コンポーネントを組み立てて AppContext を返すのだ。
// APIキーは環境変数を優先し、なければKVストアに保存された認証情報を使います。
func BuildAppContext(ctx context.Context, cfg *config.Config) (*AppContext, error) {
	opts := cfg.Options

	httpTimeout := opts.HTTPTimeout
	if httpTimeout == 0 {
		httpTimeout = config.DefaultHTTPTimeout
	}
	httpClient := httpkit.New(httpTimeout)

	historyFile := opts.HistoryFile
	if historyFile == "" {
		historyFile = config.DefaultHistoryFile
	}
	kv := store.NewFileKV(historyFile)
	credentials := store.NewCredentialStore(kv)

	apiKey := cfg.GeminiAPIKey
	if apiKey == "" {
		apiKey = credentials.APIKey()
	}
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY が未設定で、保存済みのAPIキーもありません")
	}

	aiClient, err := initializeAIClient(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	manager, err := buildManager(cfg, aiClient, kv)
	if err != nil {
		return nil, err
	}

	refCache := cache.New(config.DefaultCacheTTL, 2*config.DefaultCacheTTL)
	loader := ingest.NewLoader(httpClient, refCache, config.DefaultCacheTTL)

	return &AppContext{
		Config:      cfg,
		Options:     opts,
		Manager:     manager,
		Loader:      loader,
		Credentials: credentials,
		aiClient:    aiClient,
		httpClient:  httpClient,
	}, nil
}

// buildManager はオーケストレーターと履歴ストアを束ねた Manager を構築します。
func buildManager(cfg *config.Config, aiClient gemini.GenerativeModel, kv store.KeyValue) (*workflow.Manager, error) {
	textModel := cfg.Options.AIModel
	if textModel == "" {
		textModel = cfg.GeminiModel
	}
	imageModel := cfg.Options.ImageModel
	if imageModel == "" {
		imageModel = cfg.GeminiImageModel
	}

	limiter := rate.NewLimiter(rate.Every(config.DefaultRateEvery), 1)
	engine, err := generator.NewGeminiEngine(aiClient, textModel, imageModel, limiter)
	if err != nil {
		return nil, fmt.Errorf("GeminiEngineの初期化に失敗したのだ: %w", err)
	}

	prompter := prompts.NewStripPromptBuilder(cfg.Options.StyleSuffix)
	storyGen, err := generator.NewStoryGenerator(engine, engine, prompter, cfg.AspectRatio)
	if err != nil {
		return nil, fmt.Errorf("StoryGeneratorの初期化に失敗したのだ: %w", err)
	}

	return workflow.New(storyGen, store.NewStoryStore(kv))
}

// initializeAIClient は gemini クライアントを初期化します。
func initializeAIClient(ctx context.Context, apiKey string) (gemini.GenerativeModel, error) {
	clientConfig := gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(defaultGeminiTemperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}
