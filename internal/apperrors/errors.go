package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrPositionNotFound indicates that no position matches the given
	// (asset type, code) pair.
	ErrPositionNotFound = errors.New("position not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrDuplicatePosition indicates that a position with the same
	// (asset type, code) pair already exists.
	ErrDuplicatePosition = errors.New("position already exists")

	// ErrEmptyUpdate indicates that a partial update supplied none of the
	// updatable fields.
	ErrEmptyUpdate = errors.New("at least one field must be provided")

	// ErrUnsupportedAssetType indicates an asset type other than fund or stock.
	ErrUnsupportedAssetType = errors.New("unsupported asset type")
)

// Upstream data errors represent failures talking to or parsing the external
// quote sources. They are contained per position during snapshot evaluation and
// per item during fund import; they never fail a whole request.
var (
	// ErrUpstreamStatus indicates a non-200 response from a quote endpoint.
	ErrUpstreamStatus = errors.New("quote endpoint returned unexpected status")

	// ErrMalformedQuote indicates a response body that does not match the
	// expected textual pattern of the quote source.
	ErrMalformedQuote = errors.New("quote response has unexpected format")

	// ErrMissingPrice indicates that the required price field is absent or
	// not numeric.
	ErrMissingPrice = errors.New("quote price is missing or not numeric")

	// ErrInvalidPrice indicates a quoted price that cannot be used for unit
	// conversion (zero or negative).
	ErrInvalidPrice = errors.New("quote price is not positive")

	// ErrAmountTooSmall indicates an import amount too small to yield a
	// positive unit count at the current price.
	ErrAmountTooSmall = errors.New("amount too small to convert into units")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrInvalidConfig indicates that the portfolio config file is malformed
	// or fails structural validation. Fatal to the request that loads it.
	ErrInvalidConfig = errors.New("invalid portfolio config")
)
