package domain

import "errors"

var (
	// ErrInsufficientReserves means a pool reserve is zero, or a computed
	// amount would exceed or exactly exhaust a reserve. Recoverable: the
	// affected (route, amount) pair simply yields no quote.
	ErrInsufficientReserves = errors.New("insufficient reserves")

	// ErrInsufficientInputAmount means the input is too small to buy a
	// single unit of output after fees and truncation. Recoverable.
	ErrInsufficientInputAmount = errors.New("insufficient input amount")

	// ErrNoRouteFound is reported when every candidate route failed to
	// quote, or no candidate routes exist at all.
	ErrNoRouteFound = errors.New("no route found")

	// ErrUnsupportedProtocol indicates a pricing request for a protocol
	// with no formula. Configuration error, never swallowed.
	ErrUnsupportedProtocol = errors.New("unsupported protocol")

	// ErrInvalidAssetOrdering indicates two identical assets were compared
	// for canonical pair ordering. Configuration error, never swallowed.
	ErrInvalidAssetOrdering = errors.New("invalid asset ordering")

	// ErrInvalidRoute indicates a route whose pairs do not form a connected
	// walk from its input asset to its output asset.
	ErrInvalidRoute = errors.New("invalid route")
)
