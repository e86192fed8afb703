package libretranslate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"langbot/internal/domain/entities"
	"langbot/internal/ports/output"
)

var _ output.TranslationProvider = (*Client)(nil)

// Client is a LibreTranslate instance used as a translation provider.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the instance at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Kind() string { return "libretranslate" }

type supportedLanguage struct {
	Code    string   `json:"code"`
	Targets []string `json:"targets"`
}

// SupportedPairs queries /languages and flattens the response into
// (source, target) pairs.
func (c *Client) SupportedPairs(ctx context.Context) ([]entities.LanguagePair, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/languages", nil)
	if err != nil {
		return nil, fmt.Errorf("languages request: %w", err)
	}

	var languages []supportedLanguage
	if err := c.do(req, &languages); err != nil {
		return nil, fmt.Errorf("query supported languages: %w", err)
	}

	var pairs []entities.LanguagePair
	for _, language := range languages {
		for _, target := range language.Targets {
			pairs = append(pairs, entities.LanguagePair{Source: language.Code, Target: target})
		}
	}
	return pairs, nil
}

func (c *Client) Translate(ctx context.Context, text, source, target string) (string, error) {
	var response struct {
		TranslatedText string `json:"translatedText"`
	}
	err := c.postForm(ctx, "/translate", url.Values{
		"q":      {text},
		"source": {source},
		"target": {target},
	}, &response)
	if err != nil {
		return "", fmt.Errorf("translate: %w", err)
	}
	return response.TranslatedText, nil
}

func (c *Client) DetectLanguage(ctx context.Context, text string) ([]entities.DetectedLanguage, error) {
	var response []struct {
		Language   string  `json:"language"`
		Confidence float64 `json:"confidence"`
	}
	err := c.postForm(ctx, "/detect", url.Values{"q": {text}}, &response)
	if err != nil {
		return nil, fmt.Errorf("detect: %w", err)
	}

	detected := make([]entities.DetectedLanguage, 0, len(response))
	for _, candidate := range response {
		detected = append(detected, entities.DetectedLanguage{
			Language:   candidate.Language,
			Confidence: int(candidate.Confidence),
		})
	}
	return detected, nil
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s: unexpected status %d: %s", req.URL.Path, resp.StatusCode, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", req.URL.Path, err)
	}
	return nil
}
