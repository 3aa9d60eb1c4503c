package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"FinSight/internal/domain/models"
	domsvc "FinSight/internal/domain/service"
	xhttp "FinSight/pkg/http"

	"github.com/cenkalti/backoff/v4"
)

// rawValue is Yahoo's wrapper around numeric fields; absent fields decode
// to a zero Raw.
type rawValue struct {
	Raw float64 `json:"raw"`
}

// quoteSummaryResponse mirrors the Yahoo v10 quoteSummary payload, trimmed
// to the modules we request.
type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				LongName           string   `json:"longName"`
				Currency           string   `json:"currency"`
				RegularMarketPrice rawValue `json:"regularMarketPrice"`
				MarketCap          rawValue `json:"marketCap"`
			} `json:"price"`
			SummaryDetail struct {
				PreviousClose rawValue `json:"previousClose"`
				TrailingPE    rawValue `json:"trailingPE"`
				ForwardPE     rawValue `json:"forwardPE"`
				DividendYield rawValue `json:"dividendYield"`
				Beta          rawValue `json:"beta"`
			} `json:"summaryDetail"`
			KeyStatistics struct {
				PEGRatio    rawValue `json:"pegRatio"`
				TrailingEPS rawValue `json:"trailingEps"`
			} `json:"defaultKeyStatistics"`
			FinancialData struct {
				CurrentPrice   rawValue `json:"currentPrice"`
				TotalRevenue   rawValue `json:"totalRevenue"`
				ProfitMargins  rawValue `json:"profitMargins"`
				ReturnOnEquity rawValue `json:"returnOnEquity"`
				DebtToEquity   rawValue `json:"debtToEquity"`
			} `json:"financialData"`
			AssetProfile struct {
				Sector              string `json:"sector"`
				Industry            string `json:"industry"`
				Website             string `json:"website"`
				FullTimeEmployees   int    `json:"fullTimeEmployees"`
				LongBusinessSummary string `json:"longBusinessSummary"`
			} `json:"assetProfile"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// Fundamentals returns valuation, profitability and profile metrics for
// ticker from the quoteSummary API. Hosts rotate and transient failures
// retry the same way Fetch does; an unknown symbol maps to
// models.ErrDataUnavailable.
func (c *Client) Fundamentals(ctx context.Context, ticker string) (models.Fundamentals, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return models.Fundamentals{}, fmt.Errorf("ticker is required")
	}

	var out models.Fundamentals
	attempt := 0
	op := func() error {
		host := c.hosts[attempt%len(c.hosts)]
		attempt++

		if c.limiter != nil && !c.limiter.Allow(host) {
			return fmt.Errorf("rate limited on %s", host)
		}

		var qs quoteSummaryResponse
		err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
			Method: xhttp.MethodGet,
			URL:    fmt.Sprintf("%s/v10/finance/quoteSummary/%s", baseURL(host), ticker),
			QueryParams: map[string][]string{
				"modules": {"price,summaryDetail,defaultKeyStatistics,financialData,assetProfile"},
			},
		}, &qs)
		if err != nil {
			var se *xhttp.StatusError
			if errors.As(err, &se) && se.Code == http.StatusNotFound {
				return backoff.Permanent(fmt.Errorf("%w: %s", models.ErrDataUnavailable, ticker))
			}
			return fmt.Errorf("yahoo %s: %w", host, err)
		}
		if qs.QuoteSummary.Error != nil {
			return backoff.Permanent(fmt.Errorf("%w: %s (%s)", models.ErrDataUnavailable, ticker, qs.QuoteSummary.Error.Code))
		}
		if len(qs.QuoteSummary.Result) == 0 {
			return backoff.Permanent(fmt.Errorf("%w: %s returned no result", models.ErrDataUnavailable, ticker))
		}

		out = toFundamentals(ticker, &qs)
		return nil
	}

	bo := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.maxRetries)),
		ctx,
	)
	if err := backoff.Retry(op, bo); err != nil {
		if errors.Is(err, models.ErrDataUnavailable) {
			return models.Fundamentals{}, err
		}
		return models.Fundamentals{}, fmt.Errorf("%w: %s: %v", models.ErrDataUnavailable, ticker, err)
	}
	return out, nil
}

// toFundamentals flattens the quoteSummary modules into one snapshot.
// Price falls back from the live quote to the regular market price, then
// the previous close.
func toFundamentals(ticker string, qs *quoteSummaryResponse) models.Fundamentals {
	res := qs.QuoteSummary.Result[0]

	price := res.FinancialData.CurrentPrice.Raw
	if price == 0 {
		price = res.Price.RegularMarketPrice.Raw
	}
	if price == 0 {
		price = res.SummaryDetail.PreviousClose.Raw
	}

	f := models.Fundamentals{
		Ticker:        ticker,
		Name:          res.Price.LongName,
		Currency:      res.Price.Currency,
		Price:         price,
		MarketCap:     res.Price.MarketCap.Raw,
		RevenueTTM:    res.FinancialData.TotalRevenue.Raw,
		ProfitMargin:  res.FinancialData.ProfitMargins.Raw,
		TrailingPE:    res.SummaryDetail.TrailingPE.Raw,
		ForwardPE:     res.SummaryDetail.ForwardPE.Raw,
		PEGRatio:      res.KeyStatistics.PEGRatio.Raw,
		EPS:           res.KeyStatistics.TrailingEPS.Raw,
		Beta:          res.SummaryDetail.Beta.Raw,
		DividendYield: res.SummaryDetail.DividendYield.Raw,
		ReturnOnEq:    res.FinancialData.ReturnOnEquity.Raw,
		DebtToEquity:  res.FinancialData.DebtToEquity.Raw,
	}

	p := res.AssetProfile
	if p.Sector != "" || p.Industry != "" || p.LongBusinessSummary != "" {
		f.Profile = &models.CompanyProfile{
			Sector:    p.Sector,
			Industry:  p.Industry,
			Website:   p.Website,
			Employees: p.FullTimeEmployees,
			Summary:   p.LongBusinessSummary,
		}
	}
	return f
}

var _ domsvc.FundamentalsProvider = (*Client)(nil)
