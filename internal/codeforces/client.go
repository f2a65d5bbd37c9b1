package codeforces

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"telegram-codeforces-bot/internal/codec"
)

const DefaultBaseURL = "https://codeforces.com/api/"

const statusOK = "OK"

// ErrAPI matches every *APIError.
var ErrAPI = errors.New("codeforces api error")

// APIError is returned for transport failures, non-OK statuses and results
// that do not fit the declared shape alike.
type APIError struct {
	Method  string
	Comment string
	Err     error
}

func (e *APIError) Error() string {
	switch {
	case e.Comment != "" && e.Err != nil:
		return fmt.Sprintf("codeforces %s: %s: %v", e.Method, e.Comment, e.Err)
	case e.Comment != "":
		return fmt.Sprintf("codeforces %s: %s", e.Method, e.Comment)
	case e.Err != nil:
		return fmt.Sprintf("codeforces %s: %v", e.Method, e.Err)
	default:
		return fmt.Sprintf("codeforces %s: request failed", e.Method)
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func (e *APIError) Is(target error) bool {
	return target == ErrAPI
}

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

type envelope struct {
	Status  string          `json:"status"`
	Comment string          `json:"comment"`
	Result  json.RawMessage `json:"result"`
}

// call performs one GET request and returns the decoded result value
// (maps, slices, json.Number and scalars).
func (c *Client) call(ctx context.Context, method string, params url.Values) (any, error) {
	endpoint := c.baseURL + method
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &APIError{Method: method, Err: fmt.Errorf("create request: %w", err)}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Method: method, Err: err}
	}
	defer resp.Body.Close()

	// Failures come with a 4xx status and a regular envelope, so the body is
	// decoded regardless of the HTTP status.
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &APIError{Method: method, Err: fmt.Errorf("decode response (http %d): %w", resp.StatusCode, err)}
	}
	if env.Status != statusOK {
		comment := env.Comment
		if comment == "" {
			comment = fmt.Sprintf("status %q (http %d)", env.Status, resp.StatusCode)
		}
		return nil, &APIError{Method: method, Comment: comment}
	}

	dec := json.NewDecoder(bytes.NewReader(env.Result))
	dec.UseNumber()
	var result any
	if err := dec.Decode(&result); err != nil {
		return nil, &APIError{Method: method, Err: fmt.Errorf("decode result: %w", err)}
	}
	return result, nil
}

func decodeResult[T any, P interface {
	*T
	codec.Record
}](method string, v any) (T, error) {
	out, err := codec.Decode[T, P](v)
	if err != nil {
		return out, &APIError{Method: method, Err: err}
	}
	return out, nil
}

func decodeResultList[T any, P interface {
	*T
	codec.Record
}](method string, v any) ([]T, error) {
	out, err := codec.DecodeList[T, P](v)
	if err != nil {
		return nil, &APIError{Method: method, Err: err}
	}
	return out, nil
}

func resultField(method string, v any, key string) (any, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &APIError{Method: method, Err: fmt.Errorf("%w: result is not an object", codec.ErrSchemaMismatch)}
	}
	field, ok := obj[key]
	if !ok {
		return nil, &APIError{Method: method, Err: fmt.Errorf("%w: result has no %q", codec.ErrSchemaMismatch, key)}
	}
	return field, nil
}

// params builds a query where unset values are omitted, never sent empty.
type params url.Values

func (p params) setInt(key string, v *int) {
	if v != nil {
		url.Values(p).Set(key, strconv.Itoa(*v))
	}
}

func (p params) setBool(key string, v *bool) {
	if v != nil {
		url.Values(p).Set(key, strconv.FormatBool(*v))
	}
}

func (p params) setString(key string, v *string) {
	if v != nil {
		url.Values(p).Set(key, *v)
	}
}

func (p params) setList(key string, v []string) {
	if v != nil {
		url.Values(p).Set(key, strings.Join(v, ";"))
	}
}
