package cmd

import (
	"fmt"

	"github.com/shouni/go-yonkoma-kit/internal/config"
	"github.com/shouni/go-yonkoma-kit/pkg/store"

	"github.com/spf13/cobra"
)

// keyCmd は、生成サービスのAPIキーをローカルに保存するのだ。
// 環境変数 GEMINI_API_KEY が設定されていればそちらが優先されるのだよ。
var keyCmd = &cobra.Command{
	Use:   "key set <api-key>",
	Short: "APIキーをローカルに保存しますなのだ。",
	Args:  cobra.ExactArgs(2),
	RunE:  keySetCommand,
}

func keySetCommand(cmd *cobra.Command, args []string) error {
	if args[0] != "set" {
		return fmt.Errorf("サポートされていないサブコマンドなのだ: %s", args[0])
	}

	historyFile := opts.HistoryFile
	if historyFile == "" {
		historyFile = config.DefaultHistoryFile
	}

	credentials := store.NewCredentialStore(store.NewFileKV(historyFile))
	if err := credentials.SaveAPIKey(args[1]); err != nil {
		return fmt.Errorf("APIキーの保存に失敗したのだ: %w", err)
	}

	fmt.Println("APIキーを保存したのだ。")
	return nil
}
