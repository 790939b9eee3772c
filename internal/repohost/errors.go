package repohost

import (
	"errors"
	"fmt"
)

// UnsupportedLocationError indicates a URL matched no hosting-provider
// rule, or the page-scrape fallback found no usable repo reference.
type UnsupportedLocationError struct {
	URL    string
	Reason string
	Err    error // underlying scrape failure, if any
}

func (e *UnsupportedLocationError) Error() string {
	return fmt.Sprintf("unsupported source location %q: %s", e.URL, e.Reason)
}

func (e *UnsupportedLocationError) Unwrap() error {
	return e.Err
}

// IsUnsupportedLocation checks if an error is an unsupported-location error
func IsUnsupportedLocation(err error) bool {
	var target *UnsupportedLocationError
	return errors.As(err, &target)
}

// InvalidRepoAddressError indicates a derived repository address failed
// the whitespace/scheme invariant.
type InvalidRepoAddressError struct {
	Address string
}

func (e *InvalidRepoAddressError) Error() string {
	return fmt.Sprintf("repo address %q does not seem to be valid", e.Address)
}

// IsInvalidRepoAddress checks if an error is an invalid-address error
func IsInvalidRepoAddress(err error) bool {
	var target *InvalidRepoAddressError
	return errors.As(err, &target)
}

// ScrapeFetchError indicates the scraper was given a non-HTTP scheme or
// got a non-200 response from the project page.
type ScrapeFetchError struct {
	URL        string
	StatusCode int // 0 when the request was never made
	Reason     string
}

func (e *ScrapeFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("unable to get %s - return code %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("unable to get %s: %s", e.URL, e.Reason)
}

// IsScrapeFetch checks if an error is a scrape fetch error
func IsScrapeFetch(err error) bool {
	var target *ScrapeFetchError
	return errors.As(err, &target)
}
