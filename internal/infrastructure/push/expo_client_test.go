package push

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ekanwe/pkg/errors"
)

func TestSend(t *testing.T) {
	var body map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewExpoClient(server.URL, 5*time.Second)

	err := client.Send(context.Background(), "ExponentPushToken[abc]", "Nouvelle candidature !", "Un influenceur a postulé à votre deal !", map[string]interface{}{
		"screen": "DealsCandidates",
		"dealId": "d1",
	})
	require.NoError(t, err)

	assert.Equal(t, "ExponentPushToken[abc]", body["to"])
	assert.Equal(t, "default", body["sound"])
	assert.Equal(t, "Nouvelle candidature !", body["title"])
	assert.Equal(t, "Un influenceur a postulé à votre deal !", body["body"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "DealsCandidates", data["screen"])
	assert.Equal(t, "d1", data["dealId"])
}

func TestSendRetriesServerErrors(t *testing.T) {
	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewExpoClient(server.URL, 5*time.Second)

	err := client.Send(context.Background(), "ExponentPushToken[abc]", "titre", "corps", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestSendGivesUpAfterRetries(t *testing.T) {
	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewExpoClient(server.URL, 5*time.Second)

	err := client.Send(context.Background(), "ExponentPushToken[abc]", "titre", "corps", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "DELIVERY_FAILED"))
	assert.Equal(t, 3, attempts)
}

func TestSendDoesNotRetryClientErrors(t *testing.T) {
	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewExpoClient(server.URL, 5*time.Second)

	err := client.Send(context.Background(), "bad-token", "titre", "corps", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "DELIVERY_FAILED"))
	assert.Equal(t, 1, attempts, "4xx must not be retried")
}
