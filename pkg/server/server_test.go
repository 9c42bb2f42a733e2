package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/de-tools/log-enricher/pkg/models/api"
	"github.com/de-tools/log-enricher/pkg/services/transform"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upperTransformer struct{}

func (upperTransformer) Transform(_ context.Context, records []transform.Record) []transform.Result {
	results := make([]transform.Result, 0, len(records))
	for _, r := range records {
		results = append(results, transform.Result{
			RecordID: r.RecordID,
			Result:   transform.ResultOk,
			Data:     bytes.ToUpper(r.Data),
		})
	}
	return results
}

func TestWebAPI_Endpoints(t *testing.T) {
	registry := transform.NewRegistry()
	require.NoError(t, registry.Register("metrics", upperTransformer{}))

	config := Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Transformers: registry,
			Logger:       zerolog.New(zerolog.NewTestWriter(t)),
		},
	}
	testServer := httptest.NewServer(ConfigureRouter(config))
	defer testServer.Close()

	event, err := json.Marshal(events.KinesisFirehoseEvent{
		InvocationID: "invocation",
		Records: []events.KinesisFirehoseEventRecord{
			{RecordID: "r1", Data: []byte("hello\n")},
		},
	})
	require.NoError(t, err)

	tests := []struct {
		name           string
		method         string
		path           string
		body           []byte
		expectedStatus int
		expected       interface{}
		parseResponse  func([]byte) (interface{}, error)
	}{
		{
			name:           "ListVariants",
			method:         http.MethodGet,
			path:           "/api/v1/variants",
			expectedStatus: http.StatusOK,
			expected:       api.Variants{Variants: []string{"metrics"}},
			parseResponse:  unmarshalResponse[api.Variants](),
		},
		{
			name:           "Transform",
			method:         http.MethodPost,
			path:           "/api/v1/transform/metrics",
			body:           event,
			expectedStatus: http.StatusOK,
			expected: map[string]interface{}{
				"records": []interface{}{
					map[string]interface{}{
						"recordId": "r1",
						"result":   "Ok",
						"data":     base64.StdEncoding.EncodeToString([]byte("HELLO\n")),
					},
				},
			},
			parseResponse: func(data []byte) (interface{}, error) {
				var resp map[string]interface{}
				err := json.Unmarshal(data, &resp)
				if records, ok := resp["records"].([]interface{}); ok {
					for _, r := range records {
						delete(r.(map[string]interface{}), "metadata")
					}
				}
				return resp, err
			},
		},
		{
			name:           "Transform_UnknownVariant",
			method:         http.MethodPost,
			path:           "/api/v1/transform/logs",
			body:           event,
			expectedStatus: http.StatusNotFound,
			expected:       api.Error{Error: `variant "logs" is not registered`},
			parseResponse:  unmarshalResponse[api.Error](),
		},
		{
			name:           "Transform_WrongMethod",
			method:         http.MethodGet,
			path:           "/api/v1/transform/metrics",
			expectedStatus: http.StatusMethodNotAllowed,
			expected:       "",
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(tc.method, testServer.URL+tc.path, bytes.NewReader(tc.body))
			require.NoError(t, err, "Failed to build request")

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")

			actual, err := tc.parseResponse(body)
			require.NoError(t, err, "Failed to parse response")

			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestNewWebAPI_DefaultShutdownTimeout(t *testing.T) {
	w := NewWebAPI(Config{Addr: "127.0.0.1:0"})

	assert.Equal(t, defaultShutdownTimeout, w.shutdownTimeout)
	assert.Equal(t, "127.0.0.1:0", w.server.Addr)
}

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(data []byte) (interface{}, error) {
		var response T
		err := json.Unmarshal(data, &response)
		return response, err
	}
}
