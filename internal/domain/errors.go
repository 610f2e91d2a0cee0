package domain

import "github.com/pkg/errors"

var (
	// ErrUnreachable means the provider could not be reached at all
	// (transport failure or timeout).
	ErrUnreachable = errors.New("market data provider unreachable")
	// ErrProviderRejected means the provider answered but the answer was
	// unusable (non-success status or malformed body).
	ErrProviderRejected = errors.New("market data provider rejected the request")
	// ErrStaleSession means a control was activated but the session holds no
	// cached snapshot anymore.
	ErrStaleSession = errors.New("no cached snapshot for session")
	// ErrAssetNotFound means a control token does not match any asset in the
	// cached snapshot.
	ErrAssetNotFound = errors.New("asset not found in cached snapshot")
)
