package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Supabase stores audio in a Supabase Storage bucket over its REST API.
type Supabase struct {
	baseURL    string // e.g. https://xyz.supabase.co
	serviceKey string
	bucket     string
	client     *http.Client
}

// NewSupabase creates a Supabase Storage client for the given project URL,
// service-role key and bucket.
func NewSupabase(baseURL, serviceKey, bucket string) *Supabase {
	return &Supabase{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		bucket:     bucket,
		client:     &http.Client{Timeout: 60 * time.Second},
	}
}

// Upload writes audio bytes to the bucket under path. Existing objects are
// not overwritten.
func (s *Supabase) Upload(ctx context.Context, data []byte, path string, contentType string) error {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "false")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to upload audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("storage upload returned status %d: %s", resp.StatusCode, string(body))
	}

	log.Printf("[Storage] Uploaded %d bytes to %s/%s", len(data), s.bucket, path)
	return nil
}

// CreateSignedURL asks Supabase for a time-limited download URL for path.
func (s *Supabase) CreateSignedURL(ctx context.Context, path string, ttlSeconds int) (string, error) {
	url := fmt.Sprintf("%s/storage/v1/object/sign/%s/%s", s.baseURL, s.bucket, path)

	payload, err := json.Marshal(map[string]int{"expiresIn": ttlSeconds})
	if err != nil {
		return "", fmt.Errorf("failed to marshal sign request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create sign request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to create signed URL: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read sign response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("storage sign returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed struct {
		SignedURL string `json:"signedURL"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse sign response: %w", err)
	}
	if parsed.SignedURL == "" {
		return "", fmt.Errorf("storage sign response has no signedURL")
	}

	return s.baseURL + "/storage/v1" + parsed.SignedURL, nil
}
