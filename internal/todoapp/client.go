// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package todoapp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
)

// Client fetches the todo list from its source.
type Client interface {
	FetchTodos(ctx context.Context) ([]Todo, error)
}

// HTTPClient fetches todos with a plain unauthenticated GET returning a
// JSON array. Transport failures surface as *FetchError; a payload that
// decodes badly or fails schema validation surfaces as *DecodeError.
type HTTPClient struct {
	url      string
	client   *http.Client
	validate *validator.Validate
}

// NewHTTPClient creates a client for the given source URL.
func NewHTTPClient(url string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		url:      url,
		client:   &http.Client{Timeout: timeout},
		validate: validator.New(),
	}
}

// FetchTodos implements Client.
func (c *HTTPClient) FetchTodos(ctx context.Context) ([]Todo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &FetchError{Cause: err}
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &FetchError{Cause: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Cause: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	var todos []Todo
	if err := json.NewDecoder(resp.Body).Decode(&todos); err != nil {
		return nil, &DecodeError{Cause: err}
	}
	for i, t := range todos {
		if err := c.validate.Struct(t); err != nil {
			return nil, &DecodeError{Cause: fmt.Errorf("record %d: %w", i, err)}
		}
	}
	return todos, nil
}
