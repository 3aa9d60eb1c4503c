package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"FinSight/internal/domain/models"
	domsvc "FinSight/internal/domain/service"
	"FinSight/internal/service/ratelimit"
	xhttp "FinSight/pkg/http"

	"github.com/cenkalti/backoff/v4"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15"

// Client fetches daily OHLCV bars from the Yahoo Finance chart API.
type Client struct {
	hosts      []string
	searchHost string
	maxRetries int
	client     *xhttp.Client
	limiter    *ratelimit.Limiter
}

// Option configures Client.
type Option func(*Client)

// WithHosts sets the chart API hosts to rotate through.
func WithHosts(hosts []string) Option {
	return func(c *Client) {
		if len(hosts) > 0 {
			c.hosts = hosts
		}
	}
}

// WithSearchHost sets the symbol search host.
func WithSearchHost(host string) Option {
	return func(c *Client) {
		if host != "" {
			c.searchHost = host
		}
	}
}

// WithMaxRetries bounds the retry attempts for transient failures.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.client = xhttp.NewClient(
			xhttp.WithTimeout(timeout),
			xhttp.WithDefaultHeader("User-Agent", userAgent),
			xhttp.WithDefaultHeader("Accept", "application/json, text/javascript, */*; q=0.01"),
		)
	}
}

// WithRateLimit throttles outbound calls per host. Non-positive rates
// disable throttling.
func WithRateLimit(burst, perSec float64) Option {
	return func(c *Client) {
		if perSec <= 0 {
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = ratelimit.New(burst, perSec)
	}
}

// New creates a Yahoo Finance client.
func New(opts ...Option) *Client {
	c := &Client{
		hosts:      []string{"query1.finance.yahoo.com", "query2.finance.yahoo.com"},
		searchHost: "query2.finance.yahoo.com",
		maxRetries: 3,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		WithTimeout(10 * time.Second)(c)
	}
	return c
}

// chartResponse mirrors the Yahoo v8 chart payload, trimmed to needed fields.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []float64 `json:"open"`
					High   []float64 `json:"high"`
					Low    []float64 `json:"low"`
					Close  []float64 `json:"close"`
					Volume []int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Fetch returns the daily series for ticker between start and end.
// It rotates hosts and retries transient failures with exponential backoff;
// an empty result maps to models.ErrDataUnavailable.
func (c *Client) Fetch(ctx context.Context, ticker string, start, end time.Time) (models.TimeSeries, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return models.TimeSeries{}, fmt.Errorf("ticker is required")
	}
	if end.Before(start) {
		return models.TimeSeries{}, fmt.Errorf("start %s is after end %s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	var series models.TimeSeries
	attempt := 0
	op := func() error {
		host := c.hosts[attempt%len(c.hosts)]
		attempt++

		if c.limiter != nil && !c.limiter.Allow(host) {
			return fmt.Errorf("rate limited on %s", host)
		}

		var cr chartResponse
		err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
			Method: xhttp.MethodGet,
			URL:    fmt.Sprintf("%s/v8/finance/chart/%s", baseURL(host), ticker),
			QueryParams: map[string][]string{
				"period1":  {strconv.FormatInt(start.Unix(), 10)},
				"period2":  {strconv.FormatInt(end.Unix(), 10)},
				"interval": {"1d"},
				"events":   {"div,splits"},
			},
		}, &cr)
		if err != nil {
			var se *xhttp.StatusError
			if errors.As(err, &se) && se.Code == http.StatusNotFound {
				return backoff.Permanent(fmt.Errorf("%w: %s", models.ErrDataUnavailable, ticker))
			}
			return fmt.Errorf("yahoo %s: %w", host, err)
		}
		if cr.Chart.Error != nil {
			return backoff.Permanent(fmt.Errorf("%w: %s (%s)", models.ErrDataUnavailable, ticker, cr.Chart.Error.Code))
		}

		series = toSeries(ticker, &cr)
		return nil
	}

	bo := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.maxRetries)),
		ctx,
	)
	if err := backoff.Retry(op, bo); err != nil {
		if errors.Is(err, models.ErrDataUnavailable) {
			return models.TimeSeries{}, err
		}
		return models.TimeSeries{}, fmt.Errorf("%w: %s: %v", models.ErrDataUnavailable, ticker, err)
	}

	if len(series.Records) == 0 {
		return models.TimeSeries{}, fmt.Errorf("%w: %s returned no records", models.ErrDataUnavailable, ticker)
	}
	return series, nil
}

// baseURL allows hosts with an explicit scheme, used by tests.
func baseURL(host string) string {
	if strings.Contains(host, "://") {
		return host
	}
	return "https://" + host
}

// toSeries converts the chart payload into an ordered, unique-date series.
// Bars with a null close are dropped.
func toSeries(ticker string, cr *chartResponse) models.TimeSeries {
	series := models.TimeSeries{Ticker: ticker}
	if len(cr.Chart.Result) == 0 || len(cr.Chart.Result[0].Indicators.Quote) == 0 {
		return series
	}

	res := cr.Chart.Result[0]
	q := res.Indicators.Quote[0]
	seen := make(map[string]struct{}, len(res.Timestamp))

	for i, ts := range res.Timestamp {
		if i >= len(q.Close) || q.Close[i] == 0 {
			continue
		}
		date := time.Unix(ts, 0).UTC().Truncate(24 * time.Hour)
		key := date.Format("2006-01-02")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		rec := models.PriceRecord{Date: date, Close: q.Close[i]}
		if i < len(q.Open) {
			rec.Open = q.Open[i]
		}
		if i < len(q.High) {
			rec.High = q.High[i]
		}
		if i < len(q.Low) {
			rec.Low = q.Low[i]
		}
		if i < len(q.Volume) {
			rec.Volume = q.Volume[i]
		}
		series.Records = append(series.Records, rec)
	}
	return series
}

var _ domsvc.MarketDataProvider = (*Client)(nil)
