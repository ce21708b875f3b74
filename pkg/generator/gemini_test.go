package generator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/shouni/go-yonkoma-kit/pkg/domain"
)

func TestNewGeminiEngine(t *testing.T) {
	t.Run("aiClient は必須なのだ", func(t *testing.T) {
		_, err := NewGeminiEngine(nil, "text-model", "image-model", nil)
		assert.Error(t, err)
	})

	t.Run("モデル名は両方必須なのだ", func(t *testing.T) {
		_, err := NewGeminiEngine(&mockAIClient{}, "", "image-model", nil)
		assert.Error(t, err)
	})
}

func TestGeminiEngine_GenerateImage(t *testing.T) {
	t.Run("最初のインライン画像パートを採用するのだ", func(t *testing.T) {
		client := &mockAIClient{
			response: inlineImageResponse(
				&genai.Part{Text: "here is your comic"},
				&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("first")}},
				&genai.Part{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: []byte("second")}},
			),
		}
		engine, err := NewGeminiEngine(client, "text-model", "image-model", nil)
		require.NoError(t, err)

		result, err := engine.GenerateImage(context.Background(), ImageRequest{
			Prompt:      "draw a comic",
			AspectRatio: "9:16",
		})
		require.NoError(t, err)

		assert.Equal(t, []byte("first"), result.Data)
		assert.Equal(t, "image/png", result.MimeType)
		assert.Equal(t, "image-model", client.lastModel)
		assert.Equal(t, "9:16", client.lastOpts.AspectRatio)
	})

	t.Run("テキストパートだけなら ErrNoImage なのだ", func(t *testing.T) {
		client := &mockAIClient{
			response: inlineImageResponse(&genai.Part{Text: "ごめん、描けなかったのだ"}),
		}
		engine, err := NewGeminiEngine(client, "text-model", "image-model", nil)
		require.NoError(t, err)

		_, err = engine.GenerateImage(context.Background(), ImageRequest{Prompt: "draw"})
		assert.ErrorIs(t, err, ErrNoImage)
	})

	t.Run("MIMEタイプが空なら image/png を補うのだ", func(t *testing.T) {
		client := &mockAIClient{
			response: inlineImageResponse(
				&genai.Part{InlineData: &genai.Blob{Data: []byte("bytes")}},
			),
		}
		engine, err := NewGeminiEngine(client, "text-model", "image-model", nil)
		require.NoError(t, err)

		result, err := engine.GenerateImage(context.Background(), ImageRequest{Prompt: "draw"})
		require.NoError(t, err)
		assert.Equal(t, "image/png", result.MimeType)
	})

	t.Run("参照画像はインライン添付として送るのだ", func(t *testing.T) {
		client := &mockAIClient{
			response: inlineImageResponse(
				&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("img")}},
			),
		}
		engine, err := NewGeminiEngine(client, "text-model", "image-model", nil)
		require.NoError(t, err)

		_, err = engine.GenerateImage(context.Background(), ImageRequest{
			Prompt:    "draw",
			Reference: &domain.ReferenceImage{MimeType: "image/jpeg", Data: []byte("ref")},
		})
		require.NoError(t, err)

		require.Len(t, client.lastParts, 2)
		assert.Equal(t, "draw", client.lastParts[0].Text)
		require.NotNil(t, client.lastParts[1].InlineData)
		assert.Equal(t, "image/jpeg", client.lastParts[1].InlineData.MIMEType)
		assert.Equal(t, []byte("ref"), client.lastParts[1].InlineData.Data)
	})

	t.Run("参照画像なしならテキストパートだけなのだ", func(t *testing.T) {
		client := &mockAIClient{
			response: inlineImageResponse(
				&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("img")}},
			),
		}
		engine, err := NewGeminiEngine(client, "text-model", "image-model", nil)
		require.NoError(t, err)

		_, err = engine.GenerateImage(context.Background(), ImageRequest{Prompt: "draw"})
		require.NoError(t, err)
		assert.Len(t, client.lastParts, 1)
	})
}

func TestGeminiEngine_GenerateText(t *testing.T) {
	client := &mockAIClient{textResponse: `[{"panel":1}]`}
	engine, err := NewGeminiEngine(client, "text-model", "image-model", nil)
	require.NoError(t, err)

	got, err := engine.GenerateText(context.Background(), "plan a comic")
	require.NoError(t, err)
	assert.Equal(t, `[{"panel":1}]`, got)
	assert.Equal(t, "text-model", client.lastModel)
}

func TestExtractInlineImage_NilResponse(t *testing.T) {
	_, err := extractInlineImage(nil)
	assert.ErrorIs(t, err, ErrNoImage)
}
