package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/shouni/gemini-image-kit/imgutil"
	"github.com/shouni/go-http-kit/httpkit"
	"github.com/shouni/go-yonkoma-kit/pkg/domain"
)

const (
	// CompressionThresholdBytes を超える参照画像はJPEGへ再圧縮して添付します。
	// 添付ペイロードが大きいとリクエスト全体が 400 で弾かれやすいためです。
	CompressionThresholdBytes = 2 << 20 // 2MiB
	// CompressionQuality は再圧縮時のJPEG品質です。
	CompressionQuality = 75
)

// Cacher は準備済み参照画像のTTLキャッシュの契約です。
// patrickmn/go-cache がそのまま満たします。
type Cacher interface {
	Get(key string) (any, bool)
	Set(key string, value any, d time.Duration)
}

// Loader はパス・URL・data URI のいずれかの指定から参照画像を用意します。
// 参照画像はあくまで任意であり、指定が空なら nil を返して生成を止めないのだ。
type Loader struct {
	httpClient httpkit.ClientInterface
	cache      Cacher
	cacheTTL   time.Duration
}

// NewLoader は Loader を初期化します。cache は nil を許容します（キャッシュなし動作）。
func NewLoader(httpClient httpkit.ClientInterface, cache Cacher, cacheTTL time.Duration) *Loader {
	return &Loader{
		httpClient: httpClient,
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

// Load は source の形式を判別して参照画像を取得・整形して返します。
// source が空文字の場合は (nil, nil) を返します。
func (l *Loader) Load(ctx context.Context, source string) (*domain.ReferenceImage, error) {
	if strings.TrimSpace(source) == "" {
		return nil, nil
	}

	if l.cache != nil {
		if val, ok := l.cache.Get(source); ok {
			if ref, ok := val.(*domain.ReferenceImage); ok {
				return ref, nil
			}
		}
	}

	ref, err := l.resolve(ctx, source)
	if err != nil {
		return nil, err
	}

	ref = l.compressIfNeeded(ref)

	if l.cache != nil {
		l.cache.Set(source, ref, l.cacheTTL)
	}
	return ref, nil
}

// resolve は data URI / http(s) URL / ローカルパスの3系統を取得します。
func (l *Loader) resolve(ctx context.Context, source string) (*domain.ReferenceImage, error) {
	if IsDataURI(source) {
		return ParseDataURI(source)
	}

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		if l.httpClient == nil {
			return nil, fmt.Errorf("URL指定の参照画像にはHTTPクライアントが必要です: %s", source)
		}
		data, err := l.httpClient.FetchBytes(ctx, source)
		if err != nil {
			return nil, fmt.Errorf("参照画像の取得に失敗しました: %w", err)
		}
		return fromBytes(data, source)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("参照画像ファイルの読み込みに失敗しました: %w", err)
	}
	return fromBytes(data, source)
}

// compressIfNeeded は閾値を超えたペイロードをJPEGへ再圧縮します。
// 圧縮に失敗しても元のデータで続行するのだ。
func (l *Loader) compressIfNeeded(ref *domain.ReferenceImage) *domain.ReferenceImage {
	if ref.IsEmpty() || len(ref.Data) <= CompressionThresholdBytes {
		return ref
	}

	compressed, err := imgutil.CompressToJPEG(ref.Data, CompressionQuality)
	if err != nil {
		slog.Warn("参照画像の再圧縮に失敗したため元データのまま使います", "size", len(ref.Data), "error", err)
		return ref
	}

	slog.Info("参照画像をJPEGへ再圧縮しました", "before", len(ref.Data), "after", len(compressed))
	return &domain.ReferenceImage{MimeType: "image/jpeg", Data: compressed}
}

func fromBytes(data []byte, source string) (*domain.ReferenceImage, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("参照画像が空です: %s", source)
	}
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, fmt.Errorf("画像ではないデータが指定されました (%s): %s", mimeType, source)
	}
	return &domain.ReferenceImage{MimeType: mimeType, Data: data}, nil
}
