package domain

// StoryCollection は生成済みストーリーの新しい順の並びです。
// メモリ上では無制限に保持しますが、永続化時は画像を抜いたコピーだけを書き出します。
type StoryCollection []ComicStory

// Prepend は新しいストーリーを先頭に追加した新しいコレクションを返します。
func (c StoryCollection) Prepend(story ComicStory) StoryCollection {
	next := make(StoryCollection, 0, len(c)+1)
	next = append(next, story)
	next = append(next, c...)
	return next
}

// RemoveByID は指定IDのストーリーを除いた新しいコレクションを返します。
// 該当IDが存在しない場合はエラーにせず、そのままのコピーを返すのだ。
// 残った要素の相対順序は維持されます。
func (c StoryCollection) RemoveByID(id string) StoryCollection {
	next := make(StoryCollection, 0, len(c))
	for _, story := range c {
		if story.ID == id {
			continue
		}
		next = append(next, story)
	}
	return next
}

// FindByID は指定IDのストーリーを返します。見つからなければ nil です。
func (c StoryCollection) FindByID(id string) *ComicStory {
	for i := range c {
		if c[i].ID == id {
			res := c[i]
			return &res
		}
	}
	return nil
}

// StripImages は全ストーリーの画像ペイロードを空にしたディープコピーを返します。
func (c StoryCollection) StripImages() StoryCollection {
	stripped := make(StoryCollection, len(c))
	for i, story := range c {
		stripped[i] = story.StripImages()
	}
	return stripped
}
