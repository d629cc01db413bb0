package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"google.golang.org/genai"

	"github.com/thedomainai/pl-sanky-diagram/internal/model"
)

// DefaultModel 既定の抽出モデル
const DefaultModel = "gemini-2.0-flash"

// Client Gemini APIを使う決算短信の抽出クライアント。
// APIキーは環境変数 GEMINI_API_KEY から読む
type Client struct {
	model   string
	timeout time.Duration
}

// NewClient 抽出クライアントを作成する
func NewClient(modelName string, timeout time.Duration) *Client {
	if modelName == "" {
		modelName = DefaultModel
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{model: modelName, timeout: timeout}
}

// ExtractPDF PDFのバイト列から検証済みのP/Lレコードを抽出する。
// 応答の整形・セグメント確認・スキーマ検証は ParseResponse に委ねる
func (c *Client) ExtractPDF(ctx context.Context, pdf []byte) (*model.Statement, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("環境変数 GEMINI_API_KEY が設定されていません")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("Geminiクライアントの作成に失敗: %w", err)
	}

	contents := []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: "application/pdf", Data: pdf}},
			{Text: extractionPrompt},
		},
	}}
	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(0)),
		ResponseMIMEType: "application/json",
	}

	result, err := client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("抽出リクエストに失敗: %w", err)
	}

	text := result.Text()
	if text == "" {
		return nil, errors.New("抽出応答にテキストが含まれていません")
	}

	return ParseResponse(text)
}
