package stt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/usicttechiete/boli.ai/internal/retry"
)

func newTestSarvam(url string) *SarvamProvider {
	p := NewSarvamProvider("test-key", url)
	p.Retry = retry.Policy{MaxAttempts: 3} // no delay in tests
	return p
}

func TestSarvamTranscribe_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("api-subscription-key"); got != "test-key" {
			t.Errorf("api-subscription-key = %q, want test-key", got)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("model"); got != "saarika:v2" {
			t.Errorf("model = %q, want saarika:v2", got)
		}
		if got := r.FormValue("language_code"); got != "en-IN" {
			t.Errorf("language_code = %q, want en-IN", got)
		}
		w.Write([]byte(`{"transcript": "I am ready"}`))
	}))
	defer server.Close()

	res, err := newTestSarvam(server.URL).Transcribe(context.Background(), []byte("audio-bytes"), "clip.m4a")
	if err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	if res.Transcript != "I am ready" {
		t.Errorf("Transcript = %q, want %q", res.Transcript, "I am ready")
	}
	if res.Provider != "sarvam" {
		t.Errorf("Provider = %q, want sarvam", res.Provider)
	}
}

func TestSarvamTranscribe_EmptyTranscriptIsValid(t *testing.T) {
	// Silence yields an empty transcript, not an error
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"transcript": ""}`))
	}))
	defer server.Close()

	res, err := newTestSarvam(server.URL).Transcribe(context.Background(), []byte("x"), "clip.m4a")
	if err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	if res.Transcript != "" {
		t.Errorf("Transcript = %q, want empty", res.Transcript)
	}
}

func TestSarvamTranscribe_RetriesThenSucceeds(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"transcript": "finally"}`))
	}))
	defer server.Close()

	res, err := newTestSarvam(server.URL).Transcribe(context.Background(), []byte("x"), "clip.m4a")
	if err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	if res.Transcript != "finally" {
		t.Errorf("Transcript = %q, want finally", res.Transcript)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestSarvamTranscribe_ExhaustsRetryBudget(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestSarvam(server.URL).Transcribe(context.Background(), []byte("x"), "clip.m4a")
	if err == nil {
		t.Fatal("Transcribe should return an error after exhausting retries")
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestSarvamTranscribe_MissingTranscriptField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"request_id": "abc"}`))
	}))
	defer server.Close()

	if _, err := newTestSarvam(server.URL).Transcribe(context.Background(), []byte("x"), "clip.m4a"); err == nil {
		t.Error("Transcribe should reject responses without a transcript field")
	}
}
