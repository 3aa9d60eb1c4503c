package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"FinSight/internal/domain/models"
	"FinSight/internal/presenter"
	"FinSight/internal/usecase"
	"FinSight/pkg/cache"
	xhttp "FinSight/pkg/http"
	xlogger "FinSight/pkg/logger"
	"FinSight/pkg/util"
)

// InsightsHandler exposes the pipeline over HTTP.
type InsightsHandler struct {
	logger       *xlogger.Logger
	insights     *usecase.InsightUseCase
	movers       *usecase.MoversUseCase
	fundamentals *usecase.FundamentalsUseCase
	cache        cache.Service
	chart        ChartOptions
}

// ChartOptions configures the rendered PNG endpoint.
type ChartOptions struct {
	Width    int
	Height   int
	CacheTTL time.Duration
}

func NewInsightsHandler(
	logger *xlogger.Logger,
	insights *usecase.InsightUseCase,
	movers *usecase.MoversUseCase,
	fundamentals *usecase.FundamentalsUseCase,
	cacheSvc cache.Service,
	chart ChartOptions,
) *InsightsHandler {
	if chart.CacheTTL <= 0 {
		chart.CacheTTL = time.Minute
	}
	return &InsightsHandler{
		logger:       logger,
		insights:     insights,
		movers:       movers,
		fundamentals: fundamentals,
		cache:        cacheSvc,
		chart:        chart,
	}
}

func (h *InsightsHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
	g := e.Group("/api")
	g.GET("/insight", h.Insight)
	g.GET("/forecast", h.Forecast)
	g.GET("/sentiment", h.Sentiment)
	g.GET("/movers", h.Movers)
	g.GET("/fundamentals", h.Fundamentals)
	g.GET("/chart", h.Chart)
}

func (h *InsightsHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *InsightsHandler) Insight(c echo.Context) error {
	req := &models.InsightRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if verr := validatePeriod(req.Period); verr != nil {
		return xhttp.AppErrorResponse(c, verr)
	}

	res, err := h.insights.Insight(c.Request().Context(), usecase.InsightParams{
		Ticker:    req.Ticker,
		Horizon:   req.Horizon,
		NewsLimit: req.Limit,
		Period:    req.Period,
	})
	if err != nil {
		h.logger.Error("insight usecase error", xlogger.String("ticker", req.Ticker), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapDomainError(err, req.Ticker))
	}
	res.SentimentPct = presenter.SummaryPercentages(res.Sentiment)
	if res.Forecast != nil {
		series, serr := h.insights.PriceSeries(c.Request().Context(), res.Ticker, req.Period)
		if serr == nil {
			chart := presenter.BuildChartSeries(series, res.Forecast)
			res.Chart = &chart
		}
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *InsightsHandler) Forecast(c echo.Context) error {
	req := &models.ForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if verr := validatePeriod(req.Period); verr != nil {
		return xhttp.AppErrorResponse(c, verr)
	}

	result, series, err := h.insights.Forecast(c.Request().Context(), req.Ticker, req.Horizon, req.Period)
	if err != nil {
		h.logger.Error("forecast usecase error", xlogger.String("ticker", req.Ticker), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapDomainError(err, req.Ticker))
	}

	chart := presenter.BuildChartSeries(series, result)
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"ticker":   result.Ticker,
		"params":   result.Params,
		"forecast": result,
		"chart":    chart,
	})
}

func (h *InsightsHandler) Sentiment(c echo.Context) error {
	req := &models.SentimentRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	tally, headlines, err := h.insights.Sentiment(c.Request().Context(), req.Ticker, req.Limit)
	if err != nil {
		h.logger.Error("sentiment usecase error", xlogger.String("ticker", req.Ticker), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapDomainError(err, req.Ticker))
	}

	return xhttp.SuccessResponse(c, map[string]interface{}{
		"ticker":    req.Ticker,
		"tally":     tally,
		"percent":   presenter.SummaryPercentages(tally),
		"headlines": headlines,
		"total":     tally.Total(),
	})
}

func (h *InsightsHandler) Movers(c echo.Context) error {
	res, err := h.movers.Movers(c.Request().Context())
	if err != nil {
		h.logger.Error("movers usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapDomainError(err, "watchlist"))
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *InsightsHandler) Fundamentals(c echo.Context) error {
	req := &models.FundamentalsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.fundamentals.Fundamentals(c.Request().Context(), req.Ticker)
	if err != nil {
		h.logger.Error("fundamentals usecase error", xlogger.String("ticker", req.Ticker), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapDomainError(err, req.Ticker))
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *InsightsHandler) Chart(c echo.Context) error {
	req := &models.ChartRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if verr := validatePeriod(req.Period); verr != nil {
		return xhttp.AppErrorResponse(c, verr)
	}
	ctx := c.Request().Context()

	period := h.insights.Period(req.Period)
	key := fmt.Sprintf("chart:%s:%d:%s", req.Ticker, req.Horizon, period)
	var png []byte
	if err := h.cache.Get(ctx, key, &png); err == nil {
		return c.Blob(http.StatusOK, "image/png", png)
	}

	result, series, err := h.insights.Forecast(ctx, req.Ticker, req.Horizon, req.Period)
	if err != nil {
		h.logger.Error("chart usecase error", xlogger.String("ticker", req.Ticker), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapDomainError(err, req.Ticker))
	}

	chart := presenter.BuildChartSeries(series, result)
	png, err = presenter.RenderPNG(series, chart, presenter.RenderOptions{
		Width:  h.chart.Width,
		Height: h.chart.Height,
	})
	if err != nil {
		h.logger.Error("chart render error", xlogger.String("ticker", req.Ticker), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("chart rendering failed").WithError(err))
	}
	if err := h.cache.Set(ctx, key, png, h.chart.CacheTTL); err != nil {
		h.logger.Warn("chart cache write failed", xlogger.Error(err))
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

// validatePeriod rejects malformed period strings before they reach the
// fetch layer. Empty means "use the configured default" and is fine.
func validatePeriod(period string) *xhttp.AppError {
	if period == "" {
		return nil
	}
	if _, _, err := util.PeriodToRange(period, time.Now()); err != nil {
		return xhttp.BadRequestErrorf("invalid period %q, want e.g. 30d, 6mo, 2y", period).WithError(err)
	}
	return nil
}

// mapDomainError translates pipeline sentinels into transport errors.
func mapDomainError(err error, subject string) error {
	var statusErr *xhttp.StatusError
	switch {
	case errors.Is(err, models.ErrDataUnavailable):
		return xhttp.NotFoundErrorf("no price data for %q", subject).WithError(err)
	case errors.Is(err, models.ErrInsufficientData):
		return xhttp.UnprocessableError("not enough history to fit a forecast").WithError(err)
	case errors.Is(err, models.ErrUnknownCategory):
		return xhttp.BadGatewayError("classifier returned an unknown sentiment label").WithError(err)
	case errors.As(err, &statusErr):
		return xhttp.BadGatewayError("upstream data source failed").WithError(err)
	default:
		return xhttp.InternalError("pipeline failed").WithError(err)
	}
}
