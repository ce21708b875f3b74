package generator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-yonkoma-kit/pkg/domain"
	"github.com/shouni/go-yonkoma-kit/pkg/prompts"
)

func newTestGenerator(t *testing.T, text *mockTextGenerator, image *mockImageGenerator) *StoryGenerator {
	t.Helper()
	sg, err := NewStoryGenerator(text, image, prompts.NewStripPromptBuilder(""), DefaultAspectRatio)
	require.NoError(t, err)
	return sg
}

func directRequest() domain.GenerationRequest {
	return domain.GenerationRequest{
		Scenario:   "two friends find a button in a forest",
		Characters: []domain.Character{domain.CharacterChiikawa, domain.CharacterHachiware},
	}
}

func TestStoryGenerator_Direct(t *testing.T) {
	t.Run("成功すれば strip レイアウトの1コマストーリーになるのだ", func(t *testing.T) {
		image := &mockImageGenerator{result: &ImageResult{Data: []byte("png"), MimeType: "image/png"}}
		sg := newTestGenerator(t, nil, image)

		story, genErr := sg.Generate(context.Background(), directRequest())
		require.Nil(t, genErr)
		require.NotNil(t, story)

		assert.Equal(t, domain.LayoutStrip, story.Layout)
		require.Len(t, story.Panels, 1)
		assert.True(t, story.Panels[0].HasImage())
		assert.Equal(t, []domain.Character{domain.CharacterChiikawa, domain.CharacterHachiware}, story.Characters)
		assert.Equal(t, "two friends find a button in a forest", story.Prompt)
		assert.NoError(t, story.Validate())
		assert.Equal(t, 1, image.calls)
	})

	t.Run("空入力はリモート呼び出しの前に拒否するのだ", func(t *testing.T) {
		image := &mockImageGenerator{result: &ImageResult{Data: []byte("png"), MimeType: "image/png"}}
		sg := newTestGenerator(t, nil, image)

		req := directRequest()
		req.Scenario = "   "
		story, genErr := sg.Generate(context.Background(), req)

		assert.Nil(t, story)
		require.NotNil(t, genErr)
		assert.Equal(t, KindEmptyInput, genErr.Kind)
		assert.Equal(t, 0, image.calls, "リモート呼び出しが発生してはいけないのだ")
	})

	t.Run("画像なしレスポンスは NoImageReturned なのだ", func(t *testing.T) {
		image := &mockImageGenerator{err: ErrNoImage}
		sg := newTestGenerator(t, nil, image)

		story, genErr := sg.Generate(context.Background(), directRequest())
		assert.Nil(t, story)
		require.NotNil(t, genErr)
		assert.Equal(t, KindNoImageReturned, genErr.Kind)
	})

	t.Run("成功とエラーは排他なのだ", func(t *testing.T) {
		image := &mockImageGenerator{err: errors.New("boom")}
		sg := newTestGenerator(t, nil, image)

		story, genErr := sg.Generate(context.Background(), directRequest())
		assert.True(t, (story == nil) != (genErr == nil), "ストーリーとエラーのどちらか一方だけが返るのだ")
	})
}

func TestStoryGenerator_Scripted(t *testing.T) {
	scriptJSON := `[
		{"panel": 1, "visual_description": "Chiikawa spots a button", "dialogue": "这是什么？"},
		{"panel": 2, "visual_description": "Hachiware presses it", "dialogue": ""},
		{"panel": 3, "visual_description": "Smoke everywhere", "dialogue": "哇！"},
		{"panel": 4, "visual_description": "Both covered in soot", "dialogue": "呜呜……"},
		{"panel": 5, "visual_description": "extra scene", "dialogue": "多余"},
		{"panel": 6, "visual_description": "extra scene 2", "dialogue": "多余"}
	]`

	scriptedRequest := func() domain.GenerationRequest {
		req := directRequest()
		req.Pipeline = domain.PipelineScripted
		return req
	}

	t.Run("台本→画像の2段階で strip ストーリーになるのだ", func(t *testing.T) {
		text := &mockTextGenerator{response: scriptJSON}
		image := &mockImageGenerator{result: &ImageResult{Data: []byte("png"), MimeType: "image/png"}}
		sg := newTestGenerator(t, text, image)

		story, genErr := sg.Generate(context.Background(), scriptedRequest())
		require.Nil(t, genErr)
		require.NotNil(t, story)

		assert.Equal(t, 1, text.calls)
		assert.Equal(t, 1, image.calls)
		assert.Equal(t, domain.LayoutStrip, story.Layout)
		require.Len(t, story.Panels, 1)
	})

	t.Run("6コマの台本は先頭4コマだけが採用されるのだ", func(t *testing.T) {
		text := &mockTextGenerator{response: scriptJSON}
		image := &mockImageGenerator{result: &ImageResult{Data: []byte("png"), MimeType: "image/png"}}
		sg := newTestGenerator(t, text, image)

		story, genErr := sg.Generate(context.Background(), scriptedRequest())
		require.Nil(t, genErr)

		// 保持される台本テキストは4コマ分
		desc := story.Panels[0].VisualDescription
		assert.Contains(t, desc, "4. Both covered in soot")
		assert.NotContains(t, desc, "extra scene")

		// 作画プロンプトにも5コマ目以降は現れない
		assert.Contains(t, image.lastReq.Prompt, "Panel 4: Both covered in soot")
		assert.NotContains(t, image.lastReq.Prompt, "extra scene")
	})

	t.Run("台本のセリフは将来のコマ別表示のために保持されるのだ", func(t *testing.T) {
		text := &mockTextGenerator{response: scriptJSON}
		image := &mockImageGenerator{result: &ImageResult{Data: []byte("png"), MimeType: "image/png"}}
		sg := newTestGenerator(t, text, image)

		story, genErr := sg.Generate(context.Background(), scriptedRequest())
		require.Nil(t, genErr)

		dialogue := story.Panels[0].Dialogue
		assert.Contains(t, dialogue, "这是什么？")
		assert.Contains(t, dialogue, "(silent)")
	})

	t.Run("台本生成能力なしの配備では分類済みエラーになるのだ", func(t *testing.T) {
		image := &mockImageGenerator{result: &ImageResult{Data: []byte("png"), MimeType: "image/png"}}
		sg := newTestGenerator(t, nil, image)

		var story *domain.ComicStory
		var genErr *GenerationError
		require.NotPanics(t, func() {
			story, genErr = sg.Generate(context.Background(), scriptedRequest())
		})
		assert.Nil(t, story)
		require.NotNil(t, genErr)
		assert.Equal(t, KindBadRequest, genErr.Kind)
		assert.Equal(t, 0, image.calls)
	})

	t.Run("壊れた台本は ScriptParseError で、画像呼び出しへ進まないのだ", func(t *testing.T) {
		text := &mockTextGenerator{response: "JSONじゃないのだ"}
		image := &mockImageGenerator{result: &ImageResult{Data: []byte("png"), MimeType: "image/png"}}
		sg := newTestGenerator(t, text, image)

		story, genErr := sg.Generate(context.Background(), scriptedRequest())
		assert.Nil(t, story)
		require.NotNil(t, genErr)
		assert.Equal(t, KindScriptParseError, genErr.Kind)
		assert.Equal(t, 0, image.calls)
	})
}

func TestStoryGenerator_IDUniqueness(t *testing.T) {
	// クロックを固定し、同一ミリ秒内の連続生成でもIDが衝突しないことを確認するのだ
	frozen := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	image := &mockImageGenerator{result: &ImageResult{Data: []byte("png"), MimeType: "image/png"}}
	sg := newTestGenerator(t, nil, image).WithClock(func() time.Time { return frozen })

	first, genErr := sg.Generate(context.Background(), directRequest())
	require.Nil(t, genErr)
	second, genErr := sg.Generate(context.Background(), directRequest())
	require.Nil(t, genErr)

	assert.NotEqual(t, first.ID, second.ID)
	assert.True(t, strings.HasPrefix(second.ID, first.ID[:strings.Index(first.ID, "-")]),
		"同一時刻由来のプレフィックスを共有しつつ末尾で区別されるのだ")
}

func TestIDGenerator_Next(t *testing.T) {
	frozen := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	gen := NewIDGeneratorWithClock(func() time.Time { return frozen })

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := gen.Next()
		if _, dup := seen[id]; dup {
			t.Fatalf("IDが衝突したのだ: %s", id)
		}
		seen[id] = struct{}{}
	}
}
