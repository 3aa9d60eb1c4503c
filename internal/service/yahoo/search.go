package yahoo

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"FinSight/internal/domain/models"
	domsvc "FinSight/internal/domain/service"
	xhttp "FinSight/pkg/http"
)

// searchResponse mirrors the Yahoo v1 finance search payload (trimmed).
type searchResponse struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		QuoteType string `json:"quoteType"`
		Exchange  string `json:"exchange"`
		ExchDisp  string `json:"exchDisp"`
		LongName  string `json:"longname"`
	} `json:"quotes"`
}

// exchangePriority prefers US, then UK/EU, then India listings.
func exchangePriority(exchange string) int {
	switch exchange {
	case "NYQ", "NMS", "NAS":
		return 4
	case "LON", "LSE", "ETR", "EPA", "AMS", "VIE", "MIL":
		return 3
	case "NSE", "BSE":
		return 2
	}
	return 1
}

// looksLikeSymbol reports whether query already resembles a ticker
// (short, uppercase alphanumerics plus . and - suffixes, no spaces).
func looksLikeSymbol(query string) bool {
	if len(query) == 0 || len(query) > 12 || strings.Contains(query, " ") {
		return false
	}
	for _, r := range query {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '-':
		default:
			return false
		}
	}
	return true
}

// Resolve maps a company name or symbol to the best matching ticker.
// Symbol-looking queries pass through unchanged.
func (c *Client) Resolve(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("query is required")
	}

	upper := strings.ToUpper(query)
	if looksLikeSymbol(upper) {
		return upper, nil
	}

	var sr searchResponse
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/v1/finance/search", baseURL(c.searchHost)),
		QueryParams: map[string][]string{
			"q":           {query},
			"quotesCount": {"5"},
		},
	}, &sr)
	if err != nil {
		return "", fmt.Errorf("%w: resolve %q: %v", models.ErrDataUnavailable, query, err)
	}

	type candidate struct {
		symbol   string
		priority int
		longName string
	}
	var equities []candidate
	for _, q := range sr.Quotes {
		if q.Symbol == "" || q.ExchDisp == "" {
			continue
		}
		if !strings.Contains(q.QuoteType, "EQ") && !strings.Contains(q.QuoteType, "STK") {
			continue
		}
		equities = append(equities, candidate{
			symbol:   q.Symbol,
			priority: exchangePriority(q.Exchange),
			longName: strings.ToUpper(q.LongName),
		})
	}
	if len(equities) == 0 {
		return "", fmt.Errorf("%w: no ticker found for %q", models.ErrDataUnavailable, query)
	}

	sort.SliceStable(equities, func(i, j int) bool {
		return equities[i].priority > equities[j].priority
	})

	// prefer a candidate whose full name contains the query
	core := strings.ReplaceAll(strings.ReplaceAll(upper, " ", ""), ".", "")
	for _, cand := range equities {
		name := strings.ReplaceAll(strings.ReplaceAll(cand.longName, " ", ""), ".", "")
		if name != "" && (strings.Contains(name, core) || strings.Contains(core, name)) {
			return cand.symbol, nil
		}
	}

	return equities[0].symbol, nil
}

var _ domsvc.TickerResolver = (*Client)(nil)
