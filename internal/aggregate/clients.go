package aggregate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// The aggregator consumes two external collaborators: the activity-record
// source and the profile source. Both speak JSON over HTTP and expect the
// session bearer credential on every read; credential lifecycle is the
// caller's problem.

// ActivityClient reads normalized activity records.
type ActivityClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *slog.Logger
}

// NewActivityClient creates a client for the activity-record source.
func NewActivityClient(baseURL, token string, timeout time.Duration, logger *slog.Logger) *ActivityClient {
	return &ActivityClient{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("source", "activity"),
	}
}

// FetchForSubject returns the ordered activity records logged by one
// subject. The order the source returns is the order the booklet renders.
func (c *ActivityClient) FetchForSubject(ctx context.Context, subjectID string) ([]activityDTO, error) {
	reqURL := fmt.Sprintf("%s/subjects/%s/activities", c.baseURL, url.PathEscape(subjectID))
	return c.fetchRecords(ctx, reqURL)
}

// FetchForRoster returns the activity records of every subject supervised
// by the given staff member, ordered by the source.
func (c *ActivityClient) FetchForRoster(ctx context.Context, issuerID string) ([]activityDTO, error) {
	reqURL := fmt.Sprintf("%s/staff/%s/roster/activities", c.baseURL, url.PathEscape(issuerID))
	return c.fetchRecords(ctx, reqURL)
}

func (c *ActivityClient) fetchRecords(ctx context.Context, reqURL string) ([]activityDTO, error) {
	body, err := getJSON(ctx, c.httpClient, reqURL, c.token)
	if err != nil {
		return nil, err
	}
	var records []activityDTO
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("failed to decode activity records: %w", err)
	}
	c.log.Debug("Fetched activity records.", "count", len(records))
	return records, nil
}

// ProfileClient reads subject/staff/branding display attributes. Any field
// may be absent in a response; consumers treat them all as optional.
type ProfileClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProfileClient creates a client for the profile source.
func NewProfileClient(baseURL, token string, timeout time.Duration, logger *slog.Logger) *ProfileClient {
	return &ProfileClient{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("source", "profile"),
	}
}

// FetchSubject returns the subject's profile attributes.
func (c *ProfileClient) FetchSubject(ctx context.Context, subjectID string) (*subjectDTO, error) {
	reqURL := fmt.Sprintf("%s/subjects/%s", c.baseURL, url.PathEscape(subjectID))
	body, err := getJSON(ctx, c.httpClient, reqURL, c.token)
	if err != nil {
		return nil, err
	}
	var dto subjectDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("failed to decode subject profile: %w", err)
	}
	return &dto, nil
}

// FetchStaff returns a staff member's profile attributes.
func (c *ProfileClient) FetchStaff(ctx context.Context, staffID string) (*staffDTO, error) {
	reqURL := fmt.Sprintf("%s/staff/%s", c.baseURL, url.PathEscape(staffID))
	body, err := getJSON(ctx, c.httpClient, reqURL, c.token)
	if err != nil {
		return nil, err
	}
	var dto staffDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("failed to decode staff profile: %w", err)
	}
	return &dto, nil
}

// FetchBranding returns organization and department display identity in
// one read. Branding is cosmetic; callers tolerate failure here.
func (c *ProfileClient) FetchBranding(ctx context.Context) (*brandingDTO, error) {
	reqURL := c.baseURL + "/branding"
	body, err := getJSON(ctx, c.httpClient, reqURL, c.token)
	if err != nil {
		return nil, err
	}
	var dto brandingDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("failed to decode branding: %w", err)
	}
	return &dto, nil
}

func getJSON(ctx context.Context, client *http.Client, reqURL, token string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, reqURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
