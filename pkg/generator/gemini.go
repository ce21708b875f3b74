package generator

import (
	"context"
	"fmt"

	"github.com/shouni/go-gemini-client/gemini"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// GeminiEngine は gemini クライアントを TextGenerator / ImageGenerator の
// 両契約へ適合させるアダプターです。レートリミッターを通してからリモート
// 呼び出しを行います。
type GeminiEngine struct {
	aiClient   gemini.GenerativeModel
	textModel  string
	imageModel string
	limiter    *rate.Limiter // nil 可（制限なし）
}

// NewGeminiEngine は GeminiEngine を初期化するのだ。
func NewGeminiEngine(aiClient gemini.GenerativeModel, textModel, imageModel string, limiter *rate.Limiter) (*GeminiEngine, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient (gemini.GenerativeModel) is required")
	}
	if textModel == "" || imageModel == "" {
		return nil, fmt.Errorf("textModel と imageModel の両方を指定する必要があります")
	}

	return &GeminiEngine{
		aiClient:   aiClient,
		textModel:  textModel,
		imageModel: imageModel,
		limiter:    limiter,
	}, nil
}

// GenerateText は台本プランニング用のテキスト生成を1回実行します。
func (g *GeminiEngine) GenerateText(ctx context.Context, prompt string) (string, error) {
	if err := g.wait(ctx); err != nil {
		return "", err
	}

	resp, err := g.aiClient.GenerateContent(ctx, g.textModel, prompt)
	if err != nil {
		return "", err // 分類は呼び出し元の境界で行うのだ
	}
	return resp.Text, nil
}

// GenerateImage は画像合成を1回実行し、レスポンス中の最初のインライン画像
// パートを取り出します。画像パートがなければ ErrNoImage です。
func (g *GeminiEngine) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResult, error) {
	if err := g.wait(ctx); err != nil {
		return nil, err
	}

	parts := []*genai.Part{{Text: req.Prompt}}
	if !req.Reference.IsEmpty() {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: req.Reference.MimeType, Data: req.Reference.Data},
		})
	}

	opts := gemini.GenerateOptions{AspectRatio: req.AspectRatio}
	resp, err := g.aiClient.GenerateWithParts(ctx, g.imageModel, parts, opts)
	if err != nil {
		return nil, err
	}

	return extractInlineImage(resp)
}

// extractInlineImage はレスポンス候補の先頭から最初のインライン画像を探します。
// 複数の画像パートが含まれていても最初の1つだけを採用し、残りは無視します。
func extractInlineImage(resp *gemini.Response) (*ImageResult, error) {
	if resp == nil || resp.RawResponse == nil || len(resp.RawResponse.Candidates) == 0 {
		return nil, ErrNoImage
	}

	candidate := resp.RawResponse.Candidates[0]
	if candidate.Content == nil {
		return nil, ErrNoImage
	}
	for _, part := range candidate.Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			mimeType := part.InlineData.MIMEType
			if mimeType == "" {
				mimeType = "image/png"
			}
			return &ImageResult{Data: part.InlineData.Data, MimeType: mimeType}, nil
		}
	}
	return nil, ErrNoImage
}

func (g *GeminiEngine) wait(ctx context.Context) error {
	if g.limiter == nil {
		return nil
	}
	return g.limiter.Wait(ctx)
}
