package generator

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// ErrorKind は生成失敗の分類です。オーケストレーター境界で必ずこのいずれかへ
// 変換され、生の失敗がそのまま呼び出し元へ漏れることはありません。
type ErrorKind string

const (
	KindEmptyInput        ErrorKind = "empty_input"
	KindScriptParseError  ErrorKind = "script_parse_error"
	KindNoImageReturned   ErrorKind = "no_image_returned"
	KindInvalidCredential ErrorKind = "invalid_credential"
	KindBadRequest        ErrorKind = "bad_request"
	KindServerFault       ErrorKind = "server_fault"
	KindUnknown           ErrorKind = "unknown"
)

// ErrNoImage は画像合成呼び出しが完了したのにインライン画像パートが
// 1つも含まれていなかったことを示すセンチネルです。リトライ条件ではなく
// 確定的な失敗として扱うのだ。
var ErrNoImage = errors.New("モデルが画像を返しませんでした")

// userMessages は分類ごとのユーザー向けメッセージです。
// 失敗1回につきこのうち1つだけが表示される想定です。
var userMessages = map[ErrorKind]string{
	KindEmptyInput:        "请输入故事场景，并至少选择一位角色。",
	KindScriptParseError:  "剧本生成失败，AI 返回的格式无法解析，请重试。",
	KindNoImageReturned:   "无法生成漫画图片，模型可能没有返回图像。",
	KindInvalidCredential: "Session expired or invalid key. Please select your API key again.",
	KindBadRequest:        "请求无效，可能是图片格式或提示有问题。",
	KindServerFault:       "服务器端发生错误，请稍后重试。",
	KindUnknown:           "发生未知错误",
}

// GenerationError は分類済みの生成失敗です。
type GenerationError struct {
	Kind    ErrorKind
	Message string // ユーザー向けメッセージ
	Err     error  // 元の失敗（ログ・デバッグ用）
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// NewGenerationError は指定の分類でエラーを組み立てます。
func NewGenerationError(kind ErrorKind, err error) *GenerationError {
	return &GenerationError{
		Kind:    kind,
		Message: userMessages[kind],
		Err:     err,
	}
}

// Classify はリモート呼び出しの失敗を固定の分類へ変換します。
// 第一経路は genai.APIError の構造化ステータスで、文字列パターン照合は
// 構造化情報が得られない場合の最終フォールバックに限定しています。
func Classify(err error) *GenerationError {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr
	}
	if errors.Is(err, ErrNoImage) {
		return NewGenerationError(KindNoImageReturned, err)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return classifyAPIError(apiErr, err)
	}

	return classifyByMessage(err)
}

func classifyAPIError(apiErr genai.APIError, cause error) *GenerationError {
	switch {
	case apiErr.Code == 401 || apiErr.Code == 403:
		return NewGenerationError(KindInvalidCredential, cause)
	case apiErr.Status == "UNAUTHENTICATED" || apiErr.Status == "PERMISSION_DENIED":
		return NewGenerationError(KindInvalidCredential, cause)
	// API キー不備は「Requested entity was not found」という 404 として返ってくる
	case apiErr.Code == 404 && strings.Contains(apiErr.Message, "Requested entity was not found"):
		return NewGenerationError(KindInvalidCredential, cause)
	case apiErr.Code >= 400 && apiErr.Code < 500:
		return NewGenerationError(KindBadRequest, cause)
	case apiErr.Code >= 500:
		return NewGenerationError(KindServerFault, cause)
	default:
		return unknownWithRawMessage(cause)
	}
}

// classifyByMessage はトランスポートが型付きエラーをくれなかった場合の
// 最終手段なのだ。境界のこの関数以外で文字列照合はしないこと。
func classifyByMessage(err error) *GenerationError {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "Requested entity was not found"):
		return NewGenerationError(KindInvalidCredential, err)
	case strings.Contains(msg, "API key not valid"):
		return NewGenerationError(KindInvalidCredential, err)
	case strings.Contains(msg, "400"):
		return NewGenerationError(KindBadRequest, err)
	case strings.Contains(msg, "500"):
		return NewGenerationError(KindServerFault, err)
	default:
		return unknownWithRawMessage(err)
	}
}

// unknownWithRawMessage は分類不能な失敗に生のメッセージを添えて返します。
func unknownWithRawMessage(err error) *GenerationError {
	return &GenerationError{
		Kind:    KindUnknown,
		Message: fmt.Sprintf("%s: %s", userMessages[KindUnknown], err.Error()),
		Err:     err,
	}
}
