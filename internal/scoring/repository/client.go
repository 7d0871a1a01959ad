package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"indigo/internal/scoring"
)

// Client is an HTTP client for the remote score repository that stores
// participant score records per contest. The repository is an external
// collaborator: this service consumes its fixed contract and never writes
// to it.
type Client struct {
	endpoint string       // base URL of the scores endpoint
	client   *http.Client // HTTP client configured with timeout and context cancellation support
}

// scoresResponse mirrors the wire shape of the repository response.
type scoresResponse struct {
	Participants []scoring.ParticipantSummary `json:"participants"`
}

// FetchScores requests all participant score summaries for the given contest.
// Request format: GET <endpoint>?action=scores&contest_id=<id>.
// Uses context for request cancellation and timeout.
//
// In case of network error, invalid status (not 2xx), or incorrect JSON -
// returns an error. The caller is expected to treat a failed fetch as an
// empty result set; no retry is performed here.
func (c *Client) FetchScores(ctx context.Context, contestID int) ([]scoring.ParticipantSummary, error) {
	url := fmt.Sprintf("%s?action=scores&contest_id=%d", c.endpoint, contestID)

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	req.Header.Set("Accept", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("scores response error code=%d status=%s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed scoresResponse
	err = json.Unmarshal(body, &parsed)
	if err != nil {
		return nil, err
	}

	return parsed.Participants, nil
}

// NewClient creates a new score repository client.
// Parameters:
// - endpoint: address of the scores endpoint (e.g., "https://indigo.example/api/scores.php")
// - timeout: timeout for the HTTP request
//
// Returns a pointer to the initialized client.
// Internally uses *http.Client with the specified timeout to manage request duration.
func NewClient(endpoint string, timeout time.Duration) *Client {
	client := http.Client{
		Timeout: timeout,
	}

	return &Client{
		endpoint: endpoint,
		client:   &client,
	}
}
