package discord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/greenhollow/almanac/internal/handler"
)

// APIClient handles communication with the almanac engine API
type APIClient struct {
	BaseURL string
	Client  *http.Client
	APIKey  string
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL, apiKey string) *APIClient {
	return &APIClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
		APIKey: apiKey,
	}
}

// doRequest performs an HTTP request with retry on server errors
func (c *APIClient) doRequest(method, path string, body interface{}) (*http.Response, error) {
	var reqBody []byte
	var err error

	if body != nil {
		reqBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	url := fmt.Sprintf("%s%s", c.BaseURL, path)

	maxRetries := 3
	retryDelay := 500 * time.Millisecond

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff with jitter
			jitter := time.Duration(time.Now().UnixNano()%100) * time.Millisecond
			delay := retryDelay*time.Duration(1<<uint(attempt-1)) + jitter
			time.Sleep(delay)
			slog.Info("Retrying API request", "attempt", attempt, "path", path, "delay", delay)
		}

		req, err := http.NewRequest(method, url, bytes.NewBuffer(reqBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		if c.APIKey != "" {
			req.Header.Set("X-API-Key", c.APIKey)
		}

		resp, err := c.Client.Do(req)
		if err != nil {
			lastErr = err
			slog.Warn("API request failed", "error", err, "attempt", attempt)
			continue
		}

		// Success or non-retryable error
		if resp.StatusCode < 500 {
			return resp, nil
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
		slog.Warn("Server error, will retry", "status", resp.StatusCode, "attempt", attempt)
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// decodeResponse decodes a JSON body into out, translating non-2xx statuses
// into the API's error message.
func decodeResponse(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var apiErr handler.ErrorResponse
		data, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("API error: %s", apiErr.Error)
		}
		return fmt.Errorf("API returned status: %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// GetTime fetches the current in-game time.
func (c *APIClient) GetTime() (*handler.TimeResponse, error) {
	resp, err := c.doRequest(http.MethodGet, "/api/v1/time", nil)
	if err != nil {
		return nil, err
	}
	var out handler.TimeResponse
	if err := decodeResponse(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Sleep advances the clock to the next day start.
func (c *APIClient) Sleep() (*handler.TimeResponse, error) {
	resp, err := c.doRequest(http.MethodPost, "/api/v1/time/sleep", nil)
	if err != nil {
		return nil, err
	}
	var out handler.TimeResponse
	if err := decodeResponse(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PauseTime pauses the clock.
func (c *APIClient) PauseTime() error {
	resp, err := c.doRequest(http.MethodPost, "/api/v1/time/pause", nil)
	if err != nil {
		return err
	}
	return decodeResponse(resp, nil)
}

// ResumeTime resumes the clock.
func (c *APIClient) ResumeTime() error {
	resp, err := c.doRequest(http.MethodPost, "/api/v1/time/resume", nil)
	if err != nil {
		return err
	}
	return decodeResponse(resp, nil)
}

// ExecuteCommand runs a text command line against the engine.
func (c *APIClient) ExecuteCommand(line string) (string, error) {
	resp, err := c.doRequest(http.MethodPost, "/api/v1/command", handler.ExecuteCommandRequest{Command: line})
	if err != nil {
		return "", err
	}
	var out handler.ExecuteCommandResponse
	if err := decodeResponse(resp, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// SpawnPlant plants a new instance of a species.
func (c *APIClient) SpawnPlant(speciesID, regionID string) (json.RawMessage, error) {
	req := handler.SpawnPlantRequest{SpeciesID: speciesID, RegionID: regionID}
	resp, err := c.doRequest(http.MethodPost, "/api/v1/plants", req)
	if err != nil {
		return nil, err
	}
	var out json.RawMessage
	if err := decodeResponse(resp, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListSpecies fetches the species catalog.
func (c *APIClient) ListSpecies() (*handler.SpeciesListResponse, error) {
	resp, err := c.doRequest(http.MethodGet, "/api/v1/species", nil)
	if err != nil {
		return nil, err
	}
	var out handler.SpeciesListResponse
	if err := decodeResponse(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveSession persists the session to the save slot.
func (c *APIClient) SaveSession() error {
	resp, err := c.doRequest(http.MethodPost, "/api/v1/session/save", nil)
	if err != nil {
		return err
	}
	return decodeResponse(resp, nil)
}
