package loki

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLogger struct{}

func (m *MockLogger) Error(msg string, args ...any) {
}

type mockHTTPClient struct {
	mock.Mock
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	return args.Get(0).(*http.Response), args.Error(1)
}

func Test_ConfigValidation(t *testing.T) {
	cfg := Config{}
	_, err := New(context.Background(), cfg, &MockLogger{})
	assert.Error(t, err)

	cfg.Url = "https://logs.example.com/loki/api/v1/push"
	pusher, err := New(context.Background(), cfg, &MockLogger{})
	require.NoError(t, err)
	defer pusher.Stop()

	assert.Equal(t, cfg.Url, pusher.config.Url)
	assert.Equal(t, 500, pusher.config.BatchMaxSize)
	assert.Equal(t, 5*time.Second, pusher.config.BatchMaxWait)
	assert.Equal(t, map[string]string{}, pusher.config.Labels)
}

func Test_Pusher_Stop_ShouldFlushQueuedEntries(t *testing.T) {
	var received pushRequest
	client := &mockHTTPClient{}
	client.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		if req.Header.Get("Content-Encoding") != "gzip" {
			return false
		}
		gz, err := gzip.NewReader(req.Body)
		if err != nil {
			return false
		}
		return json.NewDecoder(gz).Decode(&received) == nil
	})).Return(&http.Response{
		StatusCode: http.StatusNoContent,
		Body:       io.NopCloser(bytes.NewBuffer(nil)),
	}, nil).Once()

	cfg := Config{
		Url:          "https://logs.example.com/loki/api/v1/push",
		BatchMaxWait: time.Hour,
		Labels:       map[string]string{"app": "jobscout"},
	}
	pusher, err := NewWithClient(context.Background(), cfg, &MockLogger{}, client)
	require.NoError(t, err)

	assert.NoError(t, pusher.Push(LogEntry{Level: "error", Message: "first"}))
	assert.NoError(t, pusher.Push(LogEntry{Level: "info", Message: "second", Fields: map[string]string{"run": "1"}}))
	pusher.Stop()

	client.AssertExpectations(t)
	require.Len(t, received.Streams, 1)
	assert.Equal(t, "jobscout", received.Streams[0].Stream["app"])
	require.Len(t, received.Streams[0].Values, 2)
	assert.Contains(t, received.Streams[0].Values[1][1], `"msg":"second"`)

	assert.ErrorIs(t, pusher.Push(LogEntry{Message: "late"}), ErrStopped)
}
