package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"newsquarry/internal/config"
)

// Embedder computes a fixed-dimension vector embedding of a text. The
// normalizer and the relevance filter share one instance, loaded once
// and read-only afterwards.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Client talks to an embedding model over HTTP. Ollama and
// OpenAI-compatible endpoints are supported.
type Client struct {
	cfg    config.EmbeddingConfig
	client *http.Client
	logger *slog.Logger
}

// NewClient creates a new embedding client.
func NewClient(cfg config.EmbeddingConfig, logger *slog.Logger) *Client {
	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger.With("component", "embedding_client"),
	}
}

// Embed returns the embedding vector for text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	switch c.cfg.Provider {
	case "ollama":
		return c.embedOllama(ctx, text)
	case "openai":
		return c.embedOpenAI(ctx, text)
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", c.cfg.Provider)
	}
}

// Ping verifies the embedding backend is reachable. The model is the
// one dependency the pipeline cannot run without, so callers treat a
// failed ping as fatal.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.Embed(ctx, "ping"); err != nil {
		return fmt.Errorf("embedding model unavailable: %w", err)
	}
	return nil
}

func (c *Client) embedOllama(ctx context.Context, text string) ([]float32, error) {
	payload := map[string]any{
		"model":  c.cfg.Model,
		"prompt": text,
	}

	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint+"/api/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama embeddings: status %d", resp.StatusCode)
	}

	var result struct {
		Embedding []float64 `json:"embedding"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode ollama response: %w", err)
	}
	if len(result.Embedding) == 0 {
		return nil, fmt.Errorf("empty embedding from ollama")
	}
	return toFloat32(result.Embedding), nil
}

func (c *Client) embedOpenAI(ctx context.Context, text string) ([]float32, error) {
	payload := map[string]any{
		"model": c.cfg.Model,
		"input": text,
	}

	body, _ := json.Marshal(payload)
	endpoint := c.cfg.Endpoint
	if endpoint == "" {
		endpoint = "https://api.openai.com/v1"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai embeddings: status %d", resp.StatusCode)
	}

	var result struct {
		Data []struct {
			Embedding []float64 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode openai response: %w", err)
	}
	if len(result.Data) == 0 || len(result.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("empty embedding from openai")
	}
	return toFloat32(result.Data[0].Embedding), nil
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(x)
	}
	return out
}
