package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"miraiz/internal/config"
	"miraiz/internal/utils"

	"github.com/sirupsen/logrus"
)

// OpenAIClient talks to an OpenAI-compatible chat completions API. The HTTP
// client carries no timeout of its own: the completion call is bounded only
// by the caller's context, and cancellation aborts the in-flight request.
type OpenAIClient struct {
	apiKey     string
	apiBase    string
	model      string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewOpenAIClient creates a client for the configured provider.
func NewOpenAIClient(cfg config.LLMConfig, logger *logrus.Logger) *OpenAIClient {
	return &OpenAIClient{
		apiKey:     cfg.APIKey,
		apiBase:    strings.TrimSuffix(cfg.APIBase, "/"),
		model:      cfg.Model,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// chatRequest represents a chat completion request
type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

// chatMessage represents a single message in the conversation
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// responseFormat specifies the format of the response
type responseFormat struct {
	Type string `json:"type"` // "json_object" or "text"
}

// chatResponse represents the API response
type chatResponse struct {
	Choices []struct {
		Index        int         `json:"index"`
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

// CompleteJSON sends the system/user pair in JSON-object mode and returns
// the raw message content. Any transport or status failure is returned
// as-is; the translator decides what, if anything, to recover from.
func (c *OpenAIClient) CompleteJSON(ctx context.Context, system, user string) (string, error) {
	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:    0.1,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}
	return c.chatCompletion(ctx, req)
}

// Ask answers a question about one listing. The system prompt pins the
// model to the supplied context; a non-2xx status degrades to the
// guardrail answer rather than failing the interaction.
func (c *OpenAIClient) Ask(ctx context.Context, question string, pctx *PropertyContext) (string, error) {
	system := "Responde SOLO con los datos del contexto. Si falta un dato, di: '" + NoDataAnswer + "'"

	var user strings.Builder
	if pctx != nil {
		fmt.Fprintf(&user, "[contexto]\nprecio:%s\nhabitaciones:%s\nbaños:%s\nparqueos:%s\nm2:%s\nubicacion:%s\n[/contexto]\n",
			fmtFloat(pctx.Precio), fmtInt(pctx.Habitaciones), fmtFloat(pctx.Banos),
			fmtInt(pctx.Parqueos), fmtFloat(pctx.M2Construccion), fmtString(pctx.Ubicacion))
	}
	fmt.Fprintf(&user, "Pregunta: %s", question)

	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user.String()},
		},
		Temperature: 0.1,
	}

	answer, err := c.chatCompletion(ctx, req)
	if err != nil {
		var statusErr *statusError
		if errors.As(err, &statusErr) {
			c.logger.WithError(err).Warn("completion provider rejected interaction request")
			return NoDataAnswer, nil
		}
		return "", err
	}
	if answer == "" {
		return NoDataAnswer, nil
	}
	return answer, nil
}

// statusError marks a non-2xx provider response.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("completion API returned status %d: %s", e.code, e.body)
}

func (c *OpenAIClient) chatCompletion(ctx context.Context, req chatRequest) (string, error) {
	reqBody, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", c.apiBase)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &statusError{code: resp.StatusCode, body: utils.Truncate(string(body), 200)}
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}
	return result.Choices[0].Message.Content, nil
}

func fmtFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%g", *v)
}

func fmtInt(v *int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%d", *v)
}

func fmtString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
