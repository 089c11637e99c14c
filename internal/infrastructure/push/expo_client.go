package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/codeGROOVE-dev/retry"

	"ekanwe/pkg/errors"
	"ekanwe/pkg/logger"
)

const DefaultEndpoint = "https://exp.host/--/api/v2/push/send"

// ExpoClient delivers push messages through the Expo push gateway.
type ExpoClient struct {
	endpoint string
	client   *http.Client
}

func NewExpoClient(endpoint string, timeout time.Duration) *ExpoClient {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ExpoClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// pushRequest is the gateway wire contract. The data payload carries a screen
// name and contextual ids that the client-side router uses to deep-link; its
// keys must stay stable.
type pushRequest struct {
	To    string                 `json:"to"`
	Sound string                 `json:"sound"`
	Title string                 `json:"title"`
	Body  string                 `json:"body"`
	Data  map[string]interface{} `json:"data,omitempty"`
}

// Send posts one push message, retrying transient failures with backoff.
// Client errors from the gateway (bad token, malformed request) are not
// retried.
func (e *ExpoClient) Send(ctx context.Context, token, title, body string, data map[string]interface{}) error {
	jsonData, err := json.Marshal(pushRequest{
		To:    token,
		Sound: "default",
		Title: title,
		Body:  body,
		Data:  data,
	})
	if err != nil {
		return errors.Internal("Failed to marshal push request", err)
	}

	err = retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(jsonData))
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("Content-Type", "application/json")

			resp, err := e.client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return retry.Unrecoverable(fmt.Errorf("push gateway rejected request: HTTP %d", resp.StatusCode))
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				return fmt.Errorf("HTTP %d", resp.StatusCode)
			}

			return nil
		},
		retry.Attempts(3),
		retry.Delay(time.Second),
		retry.MaxDelay(30*time.Second),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			logger.Info("Retrying push send: attempt=%d, error=%v", n, err)
		}),
	)
	if err != nil {
		return errors.DeliveryFailed("Push gateway unreachable or token invalid", err)
	}

	return nil
}
