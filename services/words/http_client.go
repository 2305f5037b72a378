package words

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// HTTPClient talks to the external word/category lookup service. All three
// endpoints are plain JSON over GET.
type HTTPClient struct {
	BaseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *HTTPClient) getJSON(path string, params url.Values, out interface{}) error {
	u := fmt.Sprintf("%s%s?%s", c.BaseURL, path, params.Encode())
	resp, err := c.client.Get(u)
	if err != nil {
		return fmt.Errorf("error calling words service: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("words service returned status %d for %s", resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding words service response: %v", err)
	}
	return nil
}

// Generate fetches a quiz question for the given language. The service
// guarantees one correct option among four; the id is assigned locally.
func (c *HTTPClient) Generate(language string) (*Question, error) {
	var payload struct {
		Word          string   `json:"word"`
		CorrectAnswer string   `json:"correct_answer"`
		Distractors   []string `json:"distractors"`
	}
	params := url.Values{"language": {language}}
	if err := c.getJSON("/question", params, &payload); err != nil {
		return nil, err
	}
	if len(payload.Distractors) != 3 {
		return nil, fmt.Errorf("words service returned %d distractors, want 3", len(payload.Distractors))
	}
	q := NewQuestion(payload.Word, payload.CorrectAnswer, payload.Distractors)
	return &q, nil
}

// Validate asks the lookup service whether word belongs to category in the
// given language.
func (c *HTTPClient) Validate(language, category, word string) (*ValidationResult, error) {
	var result ValidationResult
	params := url.Values{
		"language": {language},
		"category": {category},
		"word":     {word},
	}
	if err := c.getJSON("/validate", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RandomCategory picks a random challenge category.
func (c *HTTPClient) RandomCategory(language string) (string, error) {
	var payload struct {
		Category string `json:"category"`
	}
	params := url.Values{"language": {language}}
	if err := c.getJSON("/category", params, &payload); err != nil {
		return "", err
	}
	return payload.Category, nil
}
