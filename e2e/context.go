package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TestContext carries the HTTP client and the last response of a scenario.
type TestContext struct {
	BaseURL     string
	client      *http.Client
	accessToken string

	lastStatus int
	lastBody   []byte
}

func NewTestContext(baseURL string) *TestContext {
	return &TestContext{
		BaseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (tc *TestContext) reset() {
	tc.accessToken = ""
	tc.lastStatus = 0
	tc.lastBody = nil
}

func (tc *TestContext) do(method, path string, body any, authenticated bool) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, tc.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated && tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}
	resp, err := tc.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	tc.lastStatus = resp.StatusCode
	tc.lastBody, err = io.ReadAll(resp.Body)
	return err
}

func (tc *TestContext) Send(method, path string, body any) error {
	return tc.do(method, path, body, true)
}

func (tc *TestContext) SendAnonymous(method, path string, body any) error {
	return tc.do(method, path, body, false)
}

func (tc *TestContext) Status() int {
	return tc.lastStatus
}

func (tc *TestContext) GetResponseField(field string) (any, error) {
	var m map[string]any
	if err := json.Unmarshal(tc.lastBody, &m); err != nil {
		return nil, fmt.Errorf("response is not a JSON object: %s", tc.lastBody)
	}
	v, ok := m[field]
	if !ok {
		return nil, fmt.Errorf("field %q not in response: %s", field, tc.lastBody)
	}
	return v, nil
}

func (tc *TestContext) ResponseArrayLen() (int, error) {
	var arr []any
	if err := json.Unmarshal(tc.lastBody, &arr); err != nil {
		return 0, fmt.Errorf("response is not a JSON array: %s", tc.lastBody)
	}
	return len(arr), nil
}

func (tc *TestContext) GetAccessToken() string {
	return tc.accessToken
}

func (tc *TestContext) SetAccessToken(token string) {
	tc.accessToken = token
}
