package icontact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	httpclient "github.com/natserract/icontact/pkg/http"
	"go.uber.org/zap"
)

// Params holds query parameters for GET and the JSON body for POST and PUT
type Params map[string]interface{}

// CallOption tunes a single call
type CallOption func(*callOptions)

type callOptions struct {
	verbose bool
}

// WithVerbose logs request headers and response bodies for this call at info level
func WithVerbose() CallOption {
	return func(o *callOptions) {
		o.verbose = true
	}
}

// Get executes an API call using HTTP GET. params are URL-encoded into the query string.
func (ic *IContact) Get(ctx context.Context, resource string, ids []string, params Params, opts ...CallOption) (interface{}, error) {
	return ic.request(ctx, http.MethodGet, resource, ids, params, opts)
}

// Post executes an API call using HTTP POST. params become the JSON body.
func (ic *IContact) Post(ctx context.Context, resource string, ids []string, params Params, opts ...CallOption) (interface{}, error) {
	return ic.request(ctx, http.MethodPost, resource, ids, params, opts)
}

// Put executes an API call using HTTP PUT. params become the JSON body.
func (ic *IContact) Put(ctx context.Context, resource string, ids []string, params Params, opts ...CallOption) (interface{}, error) {
	return ic.request(ctx, http.MethodPut, resource, ids, params, opts)
}

// Delete executes an API call using HTTP DELETE. params are ignored.
func (ic *IContact) Delete(ctx context.Context, resource string, ids []string, params Params, opts ...CallOption) (interface{}, error) {
	return ic.request(ctx, http.MethodDelete, resource, ids, params, opts)
}

func (ic *IContact) request(ctx context.Context, method, resource string, ids []string, params Params, opts []CallOption) (interface{}, error) {
	var co callOptions
	for _, opt := range opts {
		opt(&co)
	}

	logger := ic.logger.With(
		zap.String("call_id", uuid.NewString()),
		zap.String("resource", resource))

	url := ic.ResourceURL(resource, ids)

	headers := make(map[string]string, len(ic.headers)+1)
	for k, v := range ic.headers {
		headers[k] = v
	}

	var body []byte
	switch method {
	case http.MethodGet:
		query, err := httpclient.EncodeQuery(params)
		if err != nil {
			msg := fmt.Sprintf("Failed to URL-encode parameters: %v. Error message: %v", map[string]interface{}(params), err)
			logger.Error("Failed to URL-encode parameters", zap.Error(err))
			return nil, &Error{Kind: KindUnknownError, Method: method, URL: url, Message: msg}
		}
		url = httpclient.BuildURL(url, query)
	case http.MethodPost:
		if len(params) > 0 {
			b, err := json.Marshal(params)
			if err != nil {
				logger.Error("Failed to encode request body", zap.Error(err))
				return nil, fmt.Errorf("failed to encode %s body: %w", method, err)
			}
			body = b
		}
	case http.MethodPut:
		if params == nil {
			params = Params{}
		}
		b, err := json.Marshal(params)
		if err != nil {
			logger.Error("Failed to encode request body", zap.Error(err))
			return nil, fmt.Errorf("failed to encode %s body: %w", method, err)
		}
		body = b
		headers["Content-Length"] = strconv.Itoa(len(body))
	}

	maxRetries := ic.maxRetries
	if maxRetries == 0 {
		maxRetries = -1
	}

	reqOpts := httpclient.RequestOptions{
		Method:     method,
		URL:        url,
		Headers:    headers,
		Context:    ctx,
		MaxRetries: maxRetries,
		Backoff:    ic.backoff,
		Verbose:    co.verbose,
		Logger:     logger,
	}
	if body != nil {
		reqOpts.Body = body
	}

	resp, err := ic.httpClient.Do(reqOpts)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}

	return ic.processResponse(logger, method, url, resource, ids, resp)
}

// processResponse decodes the body and checks it against the status code and
// the resource's expected envelope key.
func (ic *IContact) processResponse(logger *zap.Logger, method, url, resource string, ids []string, resp *httpclient.Response) (interface{}, error) {
	decoded, err := decodeBody(resp.Body)
	if err != nil {
		logger.Error("Failed to parse response",
			zap.Int("status_code", resp.StatusCode),
			zap.Error(err))
		return nil, &Error{Kind: KindNoData, StatusCode: resp.StatusCode, Message: "Error parsing JSON response"}
	}

	if resp.StatusCode == http.StatusOK {
		key := expectedKey(resource, ids, method)
		if key != "" && !hasKey(decoded, key) {
			logger.Error("Expected data missing from response", zap.String("expected_key", key))
			return nil, &Error{
				Kind:       KindNoData,
				StatusCode: resp.StatusCode,
				Method:     method,
				URL:        url,
				Body:       decoded,
				Message:    fmt.Sprintf("No '%s' data in response", key),
			}
		}

		logger.Info("Call succeeded",
			zap.String("method", method),
			zap.Int("attempts", resp.Attempts))
		return decoded, nil
	}

	apiErr := &Error{
		Kind:       KindForStatus(resp.StatusCode),
		StatusCode: resp.StatusCode,
		Method:     method,
		URL:        url,
		Body:       decoded,
	}
	logger.Error("Call failed",
		zap.String("method", method),
		zap.Int("status_code", resp.StatusCode),
		zap.Stringer("kind", apiErr.Kind),
		zap.String("detail", apiErr.Detail()))
	return nil, apiErr
}

// decodeBody decodes a single JSON value, keeping numbers as json.Number so
// large integers survive unchanged.
func decodeBody(body []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var decoded interface{}
	if err := dec.Decode(&decoded); err != nil {
		return nil, err
	}
	if err := dec.Decode(new(interface{})); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after JSON value")
		}
		return nil, err
	}
	return decoded, nil
}

func hasKey(decoded interface{}, key string) bool {
	m, ok := decoded.(map[string]interface{})
	if !ok {
		return false
	}
	_, ok = m[key]
	return ok
}
