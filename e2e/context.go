package e2e

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TestContext holds the HTTP client and the last response of a scenario.
type TestContext struct {
	BaseURL string
	client  *http.Client

	lastStatus int
	lastBody   []byte
	lastJSON   map[string]any
}

func NewTestContext(baseURL string) *TestContext {
	return &TestContext{
		BaseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Reset clears response state between scenarios.
func (tc *TestContext) Reset() {
	tc.lastStatus = 0
	tc.lastBody = nil
	tc.lastJSON = nil
}

func (tc *TestContext) GET(path string, headers map[string]string) error {
	req, err := http.NewRequest(http.MethodGet, tc.BaseURL+path, nil)
	if err != nil {
		return err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	tc.lastStatus = resp.StatusCode
	tc.lastBody = body
	tc.lastJSON = nil
	if len(body) > 0 {
		var decoded map[string]any
		if err := json.Unmarshal(body, &decoded); err == nil {
			tc.lastJSON = decoded
		}
	}
	return nil
}

func (tc *TestContext) GetLastResponseStatus() int {
	return tc.lastStatus
}

func (tc *TestContext) GetLastResponseBody() []byte {
	return tc.lastBody
}

// GetResponseField resolves a dotted path such as "meta.page_count" in the
// last JSON response.
func (tc *TestContext) GetResponseField(field string) (any, error) {
	if tc.lastJSON == nil {
		return nil, fmt.Errorf("last response is not a JSON object")
	}
	var cur any = tc.lastJSON
	for _, part := range strings.Split(field, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q: %q is not an object", field, part)
		}
		cur, ok = obj[part]
		if !ok {
			return nil, fmt.Errorf("field %q not found in response", field)
		}
	}
	return cur, nil
}

// GetData returns the "data" array of the last envelope.
func (tc *TestContext) GetData() ([]map[string]any, error) {
	raw, err := tc.GetResponseField("data")
	if err != nil {
		return nil, err
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("data is %T, want array", raw)
	}
	rows := make([]map[string]any, 0, len(items))
	for i, item := range items {
		row, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("data[%d] is %T, want object", i, item)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
