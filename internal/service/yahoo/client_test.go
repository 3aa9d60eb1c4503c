package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"FinSight/internal/domain/models"
)

func chartBody(ts []int64, closes []float64) string {
	b := `{"chart":{"result":[{"timestamp":[`
	for i, t := range ts {
		if i > 0 {
			b += ","
		}
		b += fmt.Sprintf("%d", t)
	}
	b += `],"indicators":{"quote":[{"close":[`
	for i, c := range closes {
		if i > 0 {
			b += ","
		}
		b += fmt.Sprintf("%g", c)
	}
	b += `],"open":[],"high":[],"low":[],"volume":[]}]}}],"error":null}}`
	return b
}

func TestFetchParsesDailySeries(t *testing.T) {
	day := int64(24 * 60 * 60)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Unix()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("interval") != "1d" {
			t.Errorf("interval = %q, want 1d", r.URL.Query().Get("interval"))
		}
		fmt.Fprint(w, chartBody(
			[]int64{base, base + day, base + 2*day},
			[]float64{100, 102, 104},
		))
	}))
	defer srv.Close()

	c := New(WithHosts([]string{srv.URL}), WithMaxRetries(0))
	series, err := c.Fetch(context.Background(), "aapl",
		time.Unix(base, 0), time.Unix(base+3*day, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if series.Ticker != "AAPL" {
		t.Fatalf("ticker = %q, want AAPL", series.Ticker)
	}
	if len(series.Records) != 3 {
		t.Fatalf("records = %d, want 3", len(series.Records))
	}
	if series.Records[2].Close != 104 {
		t.Fatalf("last close = %v, want 104", series.Records[2].Close)
	}
	for i := 1; i < len(series.Records); i++ {
		if !series.Records[i].Date.After(series.Records[i-1].Date) {
			t.Fatalf("dates not strictly ascending at %d", i)
		}
	}
}

func TestFetchDropsNullCloses(t *testing.T) {
	day := int64(24 * 60 * 60)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Unix()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// a null close decodes to 0 and must be dropped
		fmt.Fprint(w, chartBody(
			[]int64{base, base + day, base + 2*day},
			[]float64{100, 0, 104},
		))
	}))
	defer srv.Close()

	c := New(WithHosts([]string{srv.URL}), WithMaxRetries(0))
	series, err := c.Fetch(context.Background(), "AAPL",
		time.Unix(base, 0), time.Unix(base+3*day, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series.Records) != 2 {
		t.Fatalf("records = %d, want 2 after dropping null close", len(series.Records))
	}
}

func TestFetchUnknownSymbol(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
	}))
	defer srv.Close()

	c := New(WithHosts([]string{srv.URL}), WithMaxRetries(0))
	_, err := c.Fetch(context.Background(), "NOPE_X",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	if !errors.Is(err, models.ErrDataUnavailable) {
		t.Fatalf("err = %v, want ErrDataUnavailable", err)
	}
}

func TestFetchRetriesTransientFailure(t *testing.T) {
	day := int64(24 * 60 * 60)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Unix()

	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, chartBody([]int64{base, base + day}, []float64{10, 11}))
	}))
	defer srv.Close()

	c := New(WithHosts([]string{srv.URL}), WithMaxRetries(2))
	series, err := c.Fetch(context.Background(), "AAPL",
		time.Unix(base, 0), time.Unix(base+2*day, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls < 2 {
		t.Fatalf("calls = %d, want retry after 429", calls)
	}
	if len(series.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(series.Records))
	}
}

func TestFetchValidatesArguments(t *testing.T) {
	c := New(WithMaxRetries(0))

	if _, err := c.Fetch(context.Background(), "", time.Now(), time.Now()); err == nil {
		t.Fatalf("expected error for empty ticker")
	}

	end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := c.Fetch(context.Background(), "AAPL", end.AddDate(0, 1, 0), end); err == nil {
		t.Fatalf("expected error for start after end")
	}
}

func TestResolveSymbolPassthrough(t *testing.T) {
	c := New()
	got, err := c.Resolve(context.Background(), "aapl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "AAPL" {
		t.Fatalf("resolved = %q, want AAPL", got)
	}
}

func TestResolveCompanyName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if q := r.URL.Query().Get("q"); q != "bank of america" {
			t.Errorf("q = %q", q)
		}
		fmt.Fprint(w, `{"quotes":[
			{"symbol":"BAC.MX","quoteType":"EQUITY","exchange":"MEX","exchDisp":"Mexico","longname":"Bank of America Corporation"},
			{"symbol":"BAC","quoteType":"EQUITY","exchange":"NYQ","exchDisp":"NYSE","longname":"Bank of America Corporation"}
		]}`)
	}))
	defer srv.Close()

	c := New(WithSearchHost(srv.URL))
	got, err := c.Resolve(context.Background(), "bank of america")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "BAC" {
		t.Fatalf("resolved = %q, want BAC (US listing preferred)", got)
	}
}

func TestResolveNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"quotes":[]}`)
	}))
	defer srv.Close()

	c := New(WithSearchHost(srv.URL))
	_, err := c.Resolve(context.Background(), "no such company anywhere")
	if !errors.Is(err, models.ErrDataUnavailable) {
		t.Fatalf("err = %v, want ErrDataUnavailable", err)
	}
}
