// Package grammar implements the grammar-checking capability against a
// LanguageTool server's /v2/check endpoint.
package grammar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"resume-quality/internal/analysis"
)

// LanguageTool servers reject oversized bodies; longer resumes are checked on
// a prefix.
const maxCheckChars = 20000

// Client checks text against a LanguageTool HTTP server.
type Client struct {
	baseURL    string
	locale     string
	httpClient *http.Client
}

// NewClient constructs a LanguageTool client. baseURL is the server root
// (e.g. https://api.languagetool.org); an empty baseURL returns an error so
// callers can leave the capability nil instead.
func NewClient(baseURL, locale string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("grammar server URL is required")
	}
	if strings.TrimSpace(locale) == "" {
		locale = "en-US"
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		locale:     locale,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type checkResponse struct {
	Matches []struct {
		Message string `json:"message"`
		Rule    struct {
			ID string `json:"id"`
		} `json:"rule"`
	} `json:"matches"`
}

// Check posts the text to /v2/check and returns one issue per match.
func (c *Client) Check(ctx context.Context, text string) ([]analysis.GrammarIssue, error) {
	if len(text) > maxCheckChars {
		cut := maxCheckChars
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	form := url.Values{}
	form.Set("text", text)
	form.Set("language", c.locale)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/check", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("languagetool request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("languagetool status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed checkResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("languagetool response parse: %w", err)
	}

	issues := make([]analysis.GrammarIssue, 0, len(parsed.Matches))
	for _, m := range parsed.Matches {
		issues = append(issues, analysis.GrammarIssue{RuleID: m.Rule.ID, Message: m.Message})
	}
	return issues, nil
}

var _ analysis.GrammarChecker = (*Client)(nil)
