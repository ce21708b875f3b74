package generator

import (
	"context"

	"github.com/shouni/go-gemini-client/gemini"
	"google.golang.org/genai"
)

// --- Mocks ---

// mockTextGenerator は台本プランニング呼び出しのモックです。
type mockTextGenerator struct {
	response string
	err      error
	calls    int
	lastIn   string
}

func (m *mockTextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.calls++
	m.lastIn = prompt
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

// mockImageGenerator は画像合成呼び出しのモックです。
type mockImageGenerator struct {
	result  *ImageResult
	err     error
	calls   int
	lastReq ImageRequest
}

func (m *mockImageGenerator) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResult, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// mockAIClient は gemini.GenerativeModel のモックです。
type mockAIClient struct {
	textResponse string
	response     *gemini.Response
	err          error
	lastModel    string
	lastParts    []*genai.Part
	lastOpts     gemini.GenerateOptions
}

func (m *mockAIClient) GenerateContent(ctx context.Context, model string, prompt string) (*gemini.Response, error) {
	m.lastModel = model
	if m.err != nil {
		return nil, m.err
	}
	return &gemini.Response{Text: m.textResponse}, nil
}

func (m *mockAIClient) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	m.lastModel = model
	m.lastParts = parts
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *mockAIClient) UploadFile(ctx context.Context, data []byte, mimeType, displayName string) (string, string, error) {
	return "", "", nil
}

func (m *mockAIClient) DeleteFile(ctx context.Context, name string) error {
	return nil
}

func (m *mockAIClient) GetFile(ctx context.Context, name string) (*genai.File, error) {
	return nil, nil
}

// inlineImageResponse はインライン画像パートを含むレスポンスを組み立てるヘルパーなのだ。
func inlineImageResponse(parts ...*genai.Part) *gemini.Response {
	return &gemini.Response{
		RawResponse: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: parts},
			}},
		},
	}
}
