package models

import "errors"

var (
	// ErrDataUnavailable indicates the external data source returned no
	// records for the symbol/range (invalid symbol, delisted, network failure).
	ErrDataUnavailable = errors.New("market data unavailable")

	// ErrInsufficientData indicates fewer than two distinct price points,
	// so a regression fit is undefined.
	ErrInsufficientData = errors.New("insufficient data for regression")

	// ErrUnknownCategory indicates the sentiment collaborator returned a
	// label outside {Positive, Neutral, Negative}.
	ErrUnknownCategory = errors.New("unknown sentiment category")
)
