package assistant

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/and161185/servicelog/internal/metrics"
)

const (
	DefaultBaseURL     = "https://generativelanguage.googleapis.com"
	DefaultModel       = "gemini-3-pro-preview"
	defaultHTTPTimeout = 60 * time.Second
)

// Gemini calls generateContent through the genai SDK.
type Gemini struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

// NewGemini builds a client. Empty model and baseURL take the defaults.
func NewGemini(apiKey, model, baseURL string) *Gemini {
	if model == "" {
		model = DefaultModel
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Gemini{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultHTTPTimeout},
	}
}

// Complete sends one prompt with a system instruction and returns the reply text.
func (g *Gemini) Complete(ctx context.Context, prompt, system string) (string, error) {
	start := time.Now()
	out, err := g.complete(ctx, prompt, system)
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.RecordAssistantCall(status, time.Since(start))
	return out, err
}

func (g *Gemini) complete(ctx context.Context, prompt, system string) (string, error) {
	// Only the configured key counts; genai would otherwise read GEMINI_API_KEY itself.
	if g.apiKey == "" {
		return "", errors.New("gemini: api key not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      g.apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  g.http,
		HTTPOptions: genai.HTTPOptions{BaseURL: g.baseURL + "/"},
	})
	if err != nil {
		return "", err
	}

	var cfg *genai.GenerateContentConfig
	if system != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		}
	}
	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
