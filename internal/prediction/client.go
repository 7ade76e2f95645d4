package prediction

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const predictPath = "/predict"

var ErrPredictionFailed = errors.New("prediction failed")

// APIError describes a failed call to the prediction service.
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("prediction service error at %s (status %d): %s: %v", e.Endpoint, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("prediction service error at %s (status %d): %s", e.Endpoint, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Is lets callers match any service failure with errors.Is(err, ErrPredictionFailed).
func (e *APIError) Is(target error) bool {
	return target == ErrPredictionFailed
}

// Request is the body of POST /predict.
type Request struct {
	HomeSize      float64 `json:"home_size"`
	NumAppliances int     `json:"num_appliances"`
	Month         int     `json:"month"`
}

// Response is the prediction service's answer.
type Response struct {
	Success       bool    `json:"success"`
	PredictedBill float64 `json:"predicted_bill"`
	Error         string  `json:"error,omitempty"`
}

// Client calls the bill prediction service.
type Client struct {
	http   *resty.Client
	logger *logrus.Logger
}

// NewClient builds a client for the service at baseURL. Retries only
// happen on transport errors and 5xx responses.
func NewClient(baseURL string, timeout time.Duration, retryCount int, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.New()
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(retryCount).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		}).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{http: client, logger: logger}
}

// Predict asks the service for next month's bill. Any transport failure,
// non-2xx status, success=false answer or negative bill is reported as an
// *APIError.
func (c *Client) Predict(ctx context.Context, req Request) (*Response, error) {
	c.logger.WithFields(logrus.Fields{
		"home_size":      req.HomeSize,
		"num_appliances": req.NumAppliances,
		"month":          req.Month,
	}).Debug("Requesting bill prediction")

	var result Response
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		SetError(&result).
		Post(predictPath)
	if err != nil {
		c.logger.WithError(err).Error("Prediction request failed")
		return nil, &APIError{Endpoint: predictPath, Message: "request failed", Err: err}
	}

	if resp.IsError() {
		c.logger.WithFields(logrus.Fields{
			"status_code": resp.StatusCode(),
			"message":     result.Error,
		}).Error("Prediction service returned an error")
		return nil, &APIError{StatusCode: resp.StatusCode(), Endpoint: predictPath, Message: errorMessage(result, resp.Status())}
	}

	if !result.Success {
		return nil, &APIError{StatusCode: resp.StatusCode(), Endpoint: predictPath, Message: errorMessage(result, "service reported failure")}
	}

	if b := result.PredictedBill; b < 0 || math.IsNaN(b) || math.IsInf(b, 0) {
		c.logger.WithField("predicted_bill", b).Error("Prediction service returned an invalid bill")
		return nil, &APIError{StatusCode: resp.StatusCode(), Endpoint: predictPath, Message: "invalid predicted bill"}
	}

	return &result, nil
}

func errorMessage(r Response, fallback string) string {
	if r.Error != "" {
		return r.Error
	}
	return fallback
}
