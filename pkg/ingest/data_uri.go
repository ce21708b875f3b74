package ingest

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/shouni/go-yonkoma-kit/pkg/domain"
)

const (
	dataURIPrefix    = "data:"
	dataURISeparator = ";base64,"
)

// ParseDataURI は "data:image/png;base64,...." 形式の自己記述文字列を
// メディアタイプとペイロードに分解して ReferenceImage を返します。
func ParseDataURI(uri string) (*domain.ReferenceImage, error) {
	head, payload, found := strings.Cut(uri, dataURISeparator)
	if !found {
		return nil, fmt.Errorf("data URI 形式ではありません（%q 区切りが見つかりません）", dataURISeparator)
	}

	mimeType := strings.TrimPrefix(head, dataURIPrefix)
	if mimeType == "" {
		return nil, fmt.Errorf("data URI のメディアタイプが空です")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("data URI のbase64デコードに失敗しました: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("data URI のペイロードが空です")
	}

	return &domain.ReferenceImage{MimeType: mimeType, Data: data}, nil
}

// FormatDataURI は ReferenceImage を data URI 文字列へ逆変換するのだ。
func FormatDataURI(ref *domain.ReferenceImage) string {
	if ref.IsEmpty() {
		return ""
	}
	return dataURIPrefix + ref.MimeType + dataURISeparator + base64.StdEncoding.EncodeToString(ref.Data)
}

// IsDataURI は data URI 形式の文字列かどうかを判定します。
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, dataURIPrefix) && strings.Contains(s, dataURISeparator)
}
