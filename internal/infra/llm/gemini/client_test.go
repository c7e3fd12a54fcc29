package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient("", "")
	require.Error(t, err)

	_, err = NewClient("   ", "")
	require.Error(t, err)
}

func TestGenerateContent(t *testing.T) {
	var gotPath, gotKey string
	var gotBody GenerateContentRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{
				"content": {"role": "model", "parts": [{"text": "{\"reps\""}, {"text": ": []}"}]},
				"finishReason": "STOP"
			}],
			"usageMetadata": {"promptTokenCount": 800, "candidatesTokenCount": 40, "totalTokenCount": 840}
		}`))
	}))
	defer server.Close()

	client, err := NewClient("test-key", server.URL)
	require.NoError(t, err)

	req := GenerateContentRequest{
		Contents: []Content{{
			Parts: []Part{
				{InlineData: &InlineData{MimeType: "video/mp4", Data: "AAAA"}},
				{Text: "describe the lift"},
			},
		}},
		GenerationConfig: &GenerationConfig{Temperature: 0.1, ResponseMimeType: "application/json"},
	}
	resp, err := client.GenerateContent(context.Background(), "gemini-test", req)
	require.NoError(t, err)

	require.Equal(t, "/models/gemini-test:generateContent", gotPath)
	require.Equal(t, "test-key", gotKey)
	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 2)
	require.NotNil(t, gotBody.Contents[0].Parts[0].InlineData)
	require.Equal(t, "video/mp4", gotBody.Contents[0].Parts[0].InlineData.MimeType)
	require.Equal(t, "describe the lift", gotBody.Contents[0].Parts[1].Text)
	require.Equal(t, "application/json", gotBody.GenerationConfig.ResponseMimeType)

	// Text joins the candidate parts.
	require.Equal(t, `{"reps": []}`, resp.Text())
	require.Equal(t, 840, resp.UsageMetadata.TotalTokenCount)
}

func TestGenerateContentErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "quota exceeded"}}`))
	}))
	defer server.Close()

	client, err := NewClient("test-key", server.URL)
	require.NoError(t, err)

	_, err = client.GenerateContent(context.Background(), "gemini-test", GenerateContentRequest{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=429")
	require.Contains(t, err.Error(), "quota exceeded")
}

func TestGenerateContentTrimsBaseURLSlash(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	client, err := NewClient("test-key", server.URL+"/")
	require.NoError(t, err)

	resp, err := client.GenerateContent(context.Background(), "gemini-test", GenerateContentRequest{})
	require.NoError(t, err)
	require.Equal(t, "/models/gemini-test:generateContent", gotPath)
	require.Empty(t, resp.Text())
}
