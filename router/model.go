package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrInvalidClass is returned when a model predicts a class outside the
// known intents.
var ErrInvalidClass = errors.New("model returned invalid class")

// Model is an external sequence classifier over token ids.
type Model interface {
	Predict(ctx context.Context, ids []int) (int, error)
}

// ModelClassifier classifies token streams with a Vocab and a Model.
type ModelClassifier struct {
	Vocab Vocab
	Model Model
}

// NewModelClassifier returns a ModelClassifier over vocab and model.
func NewModelClassifier(vocab Vocab, model Model) *ModelClassifier {
	return &ModelClassifier{Vocab: vocab, Model: model}
}

// Classify implements Classifier.
func (c *ModelClassifier) Classify(ctx context.Context, tokens []string) (Intent, error) {
	class, err := c.Model.Predict(ctx, c.Vocab.Encode(tokens))
	if err != nil {
		return Fallback, fmt.Errorf("predict: %w", err)
	}
	intent := Intent(class)
	if !intent.Valid() {
		return Fallback, fmt.Errorf("%w: %d", ErrInvalidClass, class)
	}
	return intent, nil
}

// HTTPModel calls a model server that accepts {"ids": [...]} and answers
// {"class": n}.
type HTTPModel struct {
	URL    string
	Client *http.Client
}

// DefaultModelTimeout bounds a single prediction request when HTTPModel has
// no client of its own.
const DefaultModelTimeout = 10 * time.Second

// NewHTTPModel returns an HTTPModel posting to url.
func NewHTTPModel(url string) *HTTPModel {
	return &HTTPModel{URL: url, Client: &http.Client{Timeout: DefaultModelTimeout}}
}

type predictRequest struct {
	IDs []int `json:"ids"`
}

type predictResponse struct {
	Class *int   `json:"class"`
	Error string `json:"error,omitempty"`
}

// Predict implements Model.
func (m *HTTPModel) Predict(ctx context.Context, ids []int) (int, error) {
	body, err := json.Marshal(predictRequest{IDs: ids})
	if err != nil {
		return 0, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.URL, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := m.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("post %s: %w", m.URL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("model server returned %s: %s", resp.Status, bytes.TrimSpace(data))
	}
	var out predictResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	if out.Error != "" {
		return 0, fmt.Errorf("model server: %s", out.Error)
	}
	if out.Class == nil {
		return 0, errors.New("model server response has no class")
	}
	return *out.Class, nil
}
