package analysis

import "errors"

// Pipeline failure taxonomy. Every failure is single-attempt and surfaced to
// the caller with a stage-prefixed message; handlers map these sentinels to
// HTTP statuses.
var (
	// ErrConfigurationMissing means required API credentials are absent.
	ErrConfigurationMissing = errors.New("configuration missing")

	// ErrUpstreamUnavailable covers rate limits, expired auth, and 5xx
	// responses from a platform. Surfaced verbatim, never retried.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrNoDataFound means the fetch returned zero posts.
	ErrNoDataFound = errors.New("no data found")

	// ErrNoValidContent means every fetched post was rejected by the
	// content filter.
	ErrNoValidContent = errors.New("no valid content after filtering")
)
