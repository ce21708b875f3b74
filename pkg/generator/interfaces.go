package generator

import (
	"context"

	"github.com/shouni/go-yonkoma-kit/pkg/domain"
)

// ImageRequest は画像合成能力への1回分の要求です。
type ImageRequest struct {
	Prompt      string
	Reference   *domain.ReferenceImage // nil なら添付なし
	AspectRatio string
}

// ImageResult は合成された画像データとそのメタデータです。
type ImageResult struct {
	Data     []byte
	MimeType string
}

// TextGenerator は台本プランニングに使うテキスト生成能力の契約です。
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ImageGenerator は画像合成能力の契約です。
// レスポンスにインライン画像が1つも含まれない場合は ErrNoImage を返します。
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req ImageRequest) (*ImageResult, error)
}
