// Package ai parses instructions through an OpenAI-compatible chat
// completions endpoint. The model is asked for the same canonical
// command schema the rule-based parser produces, so callers can treat
// both paths uniformly.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rmoreno/cadet/internal/parser"
)

// DefaultTimeout bounds a single parse request when the config does not
// set one.
const DefaultTimeout = 20 * time.Second

const defaultBaseURL = "https://api.openai.com/v1"

// Config holds the connection settings for the chat completions endpoint.
type Config struct {
	// BaseURL is the API root, e.g. "https://api.openai.com/v1". Any
	// server speaking the chat completions protocol works.
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client calls an OpenAI-compatible chat completions API to parse
// instructions. It implements parser.AIParser.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client from the given config. Missing fields fall
// back to defaults; an empty API key is allowed for local servers.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat *respFormat   `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type respFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ParseInstruction asks the model to interpret one instruction and
// returns the resulting command. Any transport, decoding, or validation
// failure is returned as an error so the caller can fall back to the
// rule-based parser.
func (c *Client) ParseInstruction(ctx context.Context, text string) (parser.Command, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: text},
		},
		Temperature:    0.1,
		ResponseFormat: &respFormat{Type: "json_object"},
	})
	if err != nil {
		return parser.Command{}, fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return parser.Command{}, fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return parser.Command{}, fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return parser.Command{}, fmt.Errorf("failed to read chat response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parser.Command{}, fmt.Errorf("chat completions returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return parser.Command{}, fmt.Errorf("failed to decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return parser.Command{}, errors.New("chat completions returned no choices")
	}

	cmd, err := decodeCommand(parsed.Choices[0].Message.Content)
	if err != nil {
		return parser.Command{}, err
	}

	c.logger.Debug("parsed instruction via model",
		zap.String("model", c.model),
		zap.String("action", string(cmd.Action)))
	return cmd, nil
}

const systemPrompt = `You convert manufacturing instructions into structured CAD commands.

Return a JSON object with this exact structure:
{
  "action": "extrude|create_hole|fillet|chamfer|pattern|create_feature",
  "shape": "cylinder|block|sphere or omit if unknown",
  "parameters": {
    "count": integer or null,
    "diameter_mm": number or null,
    "height_mm": number or null,
    "width_mm": number or null,
    "length_mm": number or null,
    "radius_mm": number or null
  },
  "pattern": {"type": "circular|linear", "count": integer or null, "angle_deg": number or null} or null
}

All dimensions are millimeters. Use null for anything the instruction
does not state; never invent values. Return ONLY the JSON, no markdown
formatting or explanation.`

// decodeCommand extracts, decodes, and validates the model's JSON payload.
func decodeCommand(content string) (parser.Command, error) {
	jsonData, err := extractJSON([]byte(content))
	if err != nil {
		return parser.Command{}, fmt.Errorf("failed to extract JSON from model response: %w", err)
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(jsonData, &keys); err != nil {
		return parser.Command{}, fmt.Errorf("failed to parse model response: %w", err)
	}
	if _, ok := keys["parameters"]; !ok {
		return parser.Command{}, errors.New("invalid model response: missing parameters field")
	}

	var cmd parser.Command
	dec := json.NewDecoder(bytes.NewReader(jsonData))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cmd); err != nil {
		return parser.Command{}, fmt.Errorf("failed to parse model response: %w", err)
	}

	if err := validateCommand(cmd); err != nil {
		return parser.Command{}, fmt.Errorf("invalid model response: %w", err)
	}

	cmd.Source = parser.SourceAI
	return cmd, nil
}

func validateCommand(cmd parser.Command) error {
	switch cmd.Action {
	case parser.ActionExtrude, parser.ActionCreateHole, parser.ActionFillet,
		parser.ActionChamfer, parser.ActionPattern, parser.ActionCreateFeature:
	default:
		return fmt.Errorf("unknown action %q", cmd.Action)
	}

	switch cmd.Shape {
	case parser.ShapeUnknown, parser.ShapeCylinder, parser.ShapeBlock, parser.ShapeSphere:
	default:
		return fmt.Errorf("unknown shape %q", cmd.Shape)
	}

	dims := map[string]*float64{
		"diameter_mm": cmd.Params.DiameterMM,
		"height_mm":   cmd.Params.HeightMM,
		"width_mm":    cmd.Params.WidthMM,
		"length_mm":   cmd.Params.LengthMM,
		"radius_mm":   cmd.Params.RadiusMM,
	}
	for name, v := range dims {
		if v != nil && *v <= 0 {
			return fmt.Errorf("%s must be positive, got %v", name, *v)
		}
	}
	if cmd.Params.Count != nil && *cmd.Params.Count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", *cmd.Params.Count)
	}

	if p := cmd.Pattern; p != nil {
		if p.Type != parser.PatternCircular && p.Type != parser.PatternLinear {
			return fmt.Errorf("unknown pattern type %q", p.Type)
		}
		if p.Count != nil && *p.Count < 1 {
			return fmt.Errorf("pattern count must be at least 1, got %d", *p.Count)
		}
	}

	return nil
}

// extractJSON defensively extracts a JSON object from potentially noisy
// model output.
func extractJSON(data []byte) ([]byte, error) {
	str := stripMarkdownCodeBlocks(string(data))

	if json.Valid([]byte(str)) {
		return []byte(str), nil
	}

	// Find JSON object boundaries as fallback
	start := strings.Index(str, "{")
	end := strings.LastIndex(str, "}")

	if start == -1 || end == -1 || start >= end {
		return nil, errors.New("no JSON object found in response")
	}

	extracted := str[start : end+1]
	if !json.Valid([]byte(extracted)) {
		return nil, errors.New("extracted content is not valid JSON")
	}

	return []byte(extracted), nil
}

// stripMarkdownCodeBlocks removes markdown code block markers from a string.
func stripMarkdownCodeBlocks(s string) string {
	s = strings.TrimSpace(s)
	if cut, found := strings.CutPrefix(s, "```json"); found {
		s = cut
	} else if cut, found := strings.CutPrefix(s, "```"); found {
		s = cut
	}
	if cut, found := strings.CutSuffix(s, "```"); found {
		s = cut
	}
	return strings.TrimSpace(s)
}
