package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mediqueue/backend/internal/domain/entities"
	"github.com/mediqueue/backend/internal/domain/providers"
	"github.com/mediqueue/backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outputTextBody(text string) map[string]interface{} {
	return map[string]interface{}{
		"output": []map[string]interface{}{
			{"content": []map[string]string{{"type": "output_text", "text": text}}},
		},
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&config.OpenAIConfig{
		APIKey:       "sk-test",
		BaseURL:      server.URL + "/",
		RateLimitRPM: -1,
	})
	require.NoError(t, err)
	return client
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(&config.OpenAIConfig{})
	assert.Error(t, err)

	_, err = NewClient(nil)
	assert.Error(t, err)
}

func TestNewClient_Defaults(t *testing.T) {
	client, err := NewClient(&config.OpenAIConfig{APIKey: "sk-test"})
	require.NoError(t, err)
	assert.Equal(t, defaultModel, client.model)
	assert.Equal(t, defaultBaseURL, client.baseURL)
	assert.NotNil(t, client.limiter)
}

func TestCheckSymptoms(t *testing.T) {
	var payload map[string]interface{}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/responses", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))

		_ = json.NewEncoder(w).Encode(outputTextBody("```json\n{\"suggestedDepartments\":\"Cardiology\",\"urgencyAssessment\":\"Seek care soon\",\"disclaimer\":\"Not advice\"}\n```"))
	})

	result, err := client.CheckSymptoms(context.Background(), entities.SymptomCheckInput{Description: "chest pain when climbing stairs"})

	require.NoError(t, err)
	assert.Equal(t, "Cardiology", result.SuggestedDepartments)
	assert.Equal(t, "Seek care soon", result.UrgencyAssessment)
	assert.Equal(t, "Not advice", result.Disclaimer)
	assert.Equal(t, defaultModel, payload["model"])
	input := payload["input"].([]interface{})
	require.Len(t, input, 2)
	assert.Contains(t, input[1].(map[string]interface{})["content"], "chest pain when climbing stairs")
}

func TestSuggestSlots(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(outputTextBody(`{"suggestedSlots":"09:00-11:00 every 15 min","suggestedAvailabilityUpdates":"Add a Monday cardiologist"}`))
	})

	result, err := client.SuggestSlots(context.Background(), entities.SlotAllocationInput{
		DoctorAvailability:         "Mon-Fri 9-5",
		PatientLoadPatterns:        "Mondays peak",
		AverageAppointmentDuration: "15 min",
		UnusualPatternsDetected:    "None observed",
	})

	require.NoError(t, err)
	assert.Equal(t, "09:00-11:00 every 15 min", result.SuggestedSlots)
	assert.Equal(t, "Add a Monday cardiologist", result.SuggestedAvailabilityUpdates)
}

func TestComplete_Errors(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		unauthorized bool
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{}`, unauthorized: true},
		{name: "server error", status: http.StatusInternalServerError, body: `{}`},
		{name: "missing output text", status: http.StatusOK, body: `{"output":[]}`},
		{name: "output is not json", status: http.StatusOK, body: `{"output":[{"content":[{"type":"output_text","text":"sorry"}]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.CheckSymptoms(context.Background(), entities.SymptomCheckInput{Description: "headache for days"})

			require.Error(t, err)
			assert.Equal(t, tt.unauthorized, errors.Is(err, providers.ErrAIUnauthorized))
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence(` {"a":1} `))
}

func TestTokenBucket_WaitRespectsContext(t *testing.T) {
	bucket := newTokenBucketWithRate(1, 1)
	require.NoError(t, bucket.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, bucket.Wait(ctx), context.Canceled)
}

func TestNewTokenBucket_Disabled(t *testing.T) {
	assert.Nil(t, newTokenBucket(-1, 0))
}
