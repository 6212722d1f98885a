package openrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/blueprint-verify/internal/llm"
)

var (
	reOpenFence  = regexp.MustCompile("(?i)^```(json)?")
	reCloseFence = regexp.MustCompile("```$")
)

// Config for the OpenRouter client. Open-weight models served here do not
// enforce structured output, so the schema travels in the prompt and the
// reply gets strict parsing instead.
type Config struct {
	APIKey  string // if empty, falls back to env OPENROUTER_API_KEY
	BaseURL string // default https://openrouter.ai/api/v1
	Model   string
	Timeout time.Duration
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENROUTER_API_KEY")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://openrouter.ai/api/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "mistralai/mistral-small-3.1-24b-instruct:free"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// stripFences removes markdown code fences some models wrap JSON in.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimSpace(reOpenFence.ReplaceAllString(text, ""))
		text = strings.TrimSpace(reCloseFence.ReplaceAllString(text, ""))
	}
	return text
}

// Extract implements llm.Extractor over OpenRouter chat/completions.
func (c *Client) Extract(ctx context.Context, req llm.ExtractRequest) (llm.RawExtraction, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	schema := llm.BuildExtractionJSONSchema()
	schemaJSON, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return llm.RawExtraction{}, nil, fmt.Errorf("encode schema: %w", err)
	}

	system := llm.BuildSystemPrompt() +
		"\n\nYou MUST output valid JSON only. The JSON MUST strictly follow this schema:\n" +
		string(schemaJSON)

	body := map[string]any{
		"model":       c.cfg.Model,
		"temperature": 0,
		"messages": []map[string]any{
			{"role": "system", "content": system},
			{"role": "user", "content": llm.BuildUserPrompt(req.OCRText, req.FilenameHint)},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{
		"Authorization": "Bearer " + c.cfg.APIKey,
		"HTTP-Referer":  "http://localhost",
		"X-Title":       "blueprint-verify",
	}

	c.logger.Info("llm.extract.start",
		"req_id", rid, "model", c.cfg.Model, "text_len", len(req.OCRText))

	raw, _, err := llm.SendJSON(ctx, c.http, endpoint, body, headers, c.logger)
	if err != nil {
		return llm.RawExtraction{}, raw, err
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		return llm.RawExtraction{}, raw, fmt.Errorf("decode openrouter response: %w", err)
	}
	if len(cc.Choices) == 0 {
		return llm.RawExtraction{}, raw, fmt.Errorf("no choices in openrouter response")
	}

	content := []byte(stripFences(cc.Choices[0].Message.Content))
	if err := llm.ValidateJSONAgainstSchema(schema, content); err != nil {
		c.logger.Error("llm.extract.schema_validation_failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.RawExtraction{}, content, fmt.Errorf("model returned non-conforming output: %w", err)
	}

	var out llm.RawExtraction
	if err := json.Unmarshal(content, &out); err != nil {
		return llm.RawExtraction{}, content, fmt.Errorf("model returned non-JSON output: %w", err)
	}

	c.logger.Info("llm.extract.ok",
		"req_id", rid,
		"dimensions", len(out.Dimensions),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, content, nil
}
