package prediction

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string, retries int) *Client {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewClient(url, 2*time.Second, retries, logger)
}

func TestPredictSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predict", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 85.5, body["home_size"])
		assert.Equal(t, 12.0, body["num_appliances"])
		assert.Equal(t, 7.0, body["month"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "predicted_bill": 96}`))
	}))
	defer server.Close()

	resp, err := newTestClient(server.URL, 0).Predict(context.Background(), Request{HomeSize: 85.5, NumAppliances: 12, Month: 7})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 96.0, resp.PredictedBill)
}

func TestPredictServiceReportsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": false}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, 0).Predict(context.Background(), Request{HomeSize: 50, Month: 1})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPredictionFailed))
}

func TestPredictRejectsNegativeBill(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "predicted_bill": -5}`))
	}))
	defer server.Close()

	resp, err := newTestClient(server.URL, 0).Predict(context.Background(), Request{HomeSize: 50, Month: 1})

	require.Error(t, err)
	assert.Nil(t, resp)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "invalid predicted bill", apiErr.Message)
	assert.True(t, errors.Is(err, ErrPredictionFailed))
}

func TestPredictServerError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success": false, "error": "'home_size'"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, 0).Predict(context.Background(), Request{Month: 1})

	require.Error(t, err)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "'home_size'", apiErr.Message)
	assert.True(t, errors.Is(err, ErrPredictionFailed))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestPredictRetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"success": false}`))
			return
		}
		w.Write([]byte(`{"success": true, "predicted_bill": 42.5}`))
	}))
	defer server.Close()

	resp, err := newTestClient(server.URL, 2).Predict(context.Background(), Request{HomeSize: 40, Month: 3})

	require.NoError(t, err)
	assert.Equal(t, 42.5, resp.PredictedBill)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestPredictTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestClient(url, 0).Predict(context.Background(), Request{HomeSize: 40, Month: 3})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPredictionFailed))
}
