// Package testutil provides common test utilities for handler and integration tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Envelope mirrors the response body of every list and lookup endpoint.
// Meta stays loosely typed so tests can assert on key presence.
type Envelope[T any] struct {
	Data  []T            `json:"data"`
	Links map[string]any `json:"links"`
	Meta  map[string]any `json:"meta"`
}

// Get issues a GET for target against handler and returns the recorder.
func Get(handler http.Handler, target string) *httptest.ResponseRecorder {
	return DoRequest(handler, httptest.NewRequest(http.MethodGet, target, nil))
}

// DoRequest executes a request against a handler and returns the recorder.
func DoRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// ReadBody returns the recorded body without draining it.
func ReadBody(t *testing.T, rr *httptest.ResponseRecorder) []byte {
	t.Helper()
	require.NotNil(t, rr.Body, "response has no body")
	return rr.Body.Bytes()
}

// UnmarshalResponse unmarshals the response body into the target struct.
func UnmarshalResponse[T any](t *testing.T, rr *httptest.ResponseRecorder) *T {
	t.Helper()
	body := ReadBody(t, rr)
	var result T
	require.NoError(t, json.Unmarshal(body, &result), "failed to unmarshal response")
	return &result
}

// UnmarshalEnvelope decodes a data/links/meta body with rows of type T.
func UnmarshalEnvelope[T any](t *testing.T, rr *httptest.ResponseRecorder) *Envelope[T] {
	t.Helper()
	return UnmarshalResponse[Envelope[T]](t, rr)
}

// UnmarshalErrorResponse unmarshals the response body as an error response.
func UnmarshalErrorResponse(t *testing.T, rr *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	body := ReadBody(t, rr)
	var result map[string]string
	require.NoError(t, json.Unmarshal(body, &result), "failed to unmarshal error response")
	return result
}

// AssertStatus asserts the response status code matches expected.
func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	assert.Equal(t, expected, rr.Code, "unexpected status code: %s", rr.Body.String())
}

// AssertStatusOK asserts the response status is 200 OK.
func AssertStatusOK(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()
	AssertStatus(t, rr, http.StatusOK)
}

// AssertError asserts status, error code and description of an error response.
func AssertError(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int, expectedCode, expectedDescription string) {
	t.Helper()
	AssertStatus(t, rr, expectedStatus)
	errResp := UnmarshalErrorResponse(t, rr)
	assert.Equal(t, expectedCode, errResp["error"], "unexpected error code")
	assert.Equal(t, expectedDescription, errResp["error_description"], "unexpected error description")
}
