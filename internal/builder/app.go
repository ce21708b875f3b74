package builder

import (
	"github.com/shouni/go-yonkoma-kit/internal/config"
	"github.com/shouni/go-yonkoma-kit/pkg/ingest"
	"github.com/shouni/go-yonkoma-kit/pkg/store"
	"github.com/shouni/go-yonkoma-kit/pkg/workflow"

	"github.com/shouni/go-gemini-client/gemini"
	"github.com/shouni/go-http-kit/httpkit"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを各Build関数に渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config      *config.Config          // 環境変数から読み込まれたグローバルな設定
	Options     config.GenerateOptions  // コマンドラインから渡された実行時の設定
	Manager     *workflow.Manager       // 生成と履歴管理の窓口
	Loader      *ingest.Loader          // 参照画像の取得と整形
	Credentials *store.CredentialStore  // APIキーの読み書き
	aiClient    gemini.GenerativeModel  // aiClient はGeminiの通信に使う共通クライアント
	httpClient  httpkit.ClientInterface // httpClient は外部APIとの通信に使う共通クライアント
}
