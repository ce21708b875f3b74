package cmd

import (
	"fmt"

	"github.com/shouni/go-yonkoma-kit/internal/config"
	"github.com/shouni/go-yonkoma-kit/pkg/store"

	"github.com/spf13/cobra"
)

// historyCmd は、生成済み漫画のローカル履歴を操作するのだ。
// 履歴にはAPIキーは不要なので、生成系とは独立して動くのだよ。
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "生成履歴の一覧と削除を行いますなのだ。",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "履歴を新しい順に一覧しますなのだ。",
	RunE:  historyListCommand,
}

var historyRemoveCmd = &cobra.Command{
	Use:   "remove <story-id>",
	Short: "指定IDのストーリーを履歴から削除しますなのだ。",
	Args:  cobra.ExactArgs(1),
	RunE:  historyRemoveCommand,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "履歴を全件削除しますなのだ。",
	RunE:  historyClearCommand,
}

func init() {
	historyCmd.AddCommand(historyListCmd, historyRemoveCmd, historyClearCmd)
}

func openStoryStore() *store.StoryStore {
	historyFile := opts.HistoryFile
	if historyFile == "" {
		historyFile = config.DefaultHistoryFile
	}
	return store.NewStoryStore(store.NewFileKV(historyFile))
}

func historyListCommand(cmd *cobra.Command, args []string) error {
	stories := openStoryStore().Stories()
	if len(stories) == 0 {
		fmt.Println("履歴はまだ空なのだ。")
		return nil
	}

	for _, story := range stories {
		retained := "(not retained)"
		if len(story.Panels) > 0 && story.Panels[0].HasImage() {
			retained = "(image in memory)"
		}
		fmt.Printf("%s  %s  layout=%s panels=%d %s\n  %s\n",
			story.ID,
			story.CreatedAt.Format("2006-01-02 15:04:05"),
			story.Layout,
			len(story.Panels),
			retained,
			story.Prompt)
	}
	return nil
}

// historyRemoveCommand は無条件に削除するのだ。確認プロンプトを出すかどうかは
// このコマンド層の判断であって、ストア側は関知しないのだよ。
func historyRemoveCommand(cmd *cobra.Command, args []string) error {
	id := args[0]
	st := openStoryStore()

	if st.Stories().FindByID(id) == nil {
		fmt.Printf("ID %s のストーリーは見つからなかったのだ（何もしないのだ）。\n", id)
		return nil
	}

	st.Remove(id)
	fmt.Printf("ID %s のストーリーを削除したのだ。\n", id)
	return nil
}

func historyClearCommand(cmd *cobra.Command, args []string) error {
	st := openStoryStore()
	count := len(st.Stories())
	if count == 0 {
		fmt.Println("履歴はもともと空なのだ。")
		return nil
	}

	st.Clear()
	fmt.Printf("%d件のストーリーを削除したのだ。\n", count)
	return nil
}
