package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
)

var ErrInsightUnavailable = errors.New("insight service unavailable")

// Client is the external AI collaborator. All risk inference happens on the
// other side of this interface.
type Client interface {
	AnalyzeMembers(ctx context.Context, members []MemberProfile) (*InsightResponse, error)
}

type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	validate   *validator.Validate
}

func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		validate: validator.New(),
	}
}

func (c *HTTPClient) AnalyzeMembers(ctx context.Context, members []MemberProfile) (*InsightResponse, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("%w: no service URL configured", ErrInsightUnavailable)
	}

	payload, err := json.Marshal(AnalyzeRequest{Members: members})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInsightUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code: %d", ErrInsightUnavailable, resp.StatusCode)
	}

	var result InsightResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", ErrInsightUnavailable, err)
	}

	if err := c.validate.Struct(&result); err != nil {
		return nil, fmt.Errorf("%w: response failed schema validation: %v", ErrInsightUnavailable, err)
	}

	if result.AtRiskMembers == nil {
		result.AtRiskMembers = []AtRiskMember{}
	}

	return &result, nil
}
