// Package remote fetches quotes from a lender aggregator over HTTP.
package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finplan/internal/plan"
)

const maxErrorBody = 512

type quoteResponse struct {
	Quotes []quoteDTO `json:"quotes"`
}

type quoteDTO struct {
	LenderID       string          `json:"lender_id"`
	RatePercent    decimal.Decimal `json:"rate_percent"`
	MonthlyPayment int64           `json:"monthly_payment"`
	TotalPayment   int64           `json:"total_payment"`
}

// Client is a plan.OfferProvider talking to the aggregator's /quotes endpoint.
type Client struct {
	baseURL  string
	apiToken string
	client   *http.Client
}

func NewClient(baseURL, apiToken string, timeout time.Duration) *Client {
	return &Client{
		baseURL:  baseURL,
		apiToken: apiToken,
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *Client) GetQuotes(ctx context.Context, req plan.QuoteRequest) ([]plan.Quote, error) {
	endpoint, err := url.JoinPath(c.baseURL, "quotes")
	if err != nil {
		return nil, fmt.Errorf("building url: %w", err)
	}

	q := url.Values{}
	q.Set("principal", strconv.FormatInt(req.Principal, 10))
	q.Set("term", strconv.Itoa(req.TermMonths))
	q.Set("category", string(req.Category))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")

	if c.apiToken != "" {
		httpReq.Header.Set("Authorization", "Token "+c.apiToken)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, body)
	}

	var out quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding quotes: %w", err)
	}

	quotes := make([]plan.Quote, 0, len(out.Quotes))

	for _, dto := range out.Quotes {
		if dto.LenderID == "" || dto.MonthlyPayment <= 0 || dto.TotalPayment < dto.MonthlyPayment {
			return nil, fmt.Errorf("malformed quote from lender %q", dto.LenderID)
		}

		quotes = append(quotes, plan.Quote{
			LenderID:       dto.LenderID,
			RatePercent:    dto.RatePercent,
			MonthlyPayment: dto.MonthlyPayment,
			TotalPayment:   dto.TotalPayment,
		})
	}

	return quotes, nil
}
