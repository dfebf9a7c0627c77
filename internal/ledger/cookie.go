package ledger

import (
	"encoding/json"
	"net/url"

	"subwaylog/pkg/domain"
)

// CookieName is the fixed key the ride log occupies in client storage. The
// persisted value keeps the original cookie wire format: a URL-percent-encoded
// JSON array of ride records.
const CookieName = "nyc_rides"

// CookieMaxAgeSeconds is the fixed expiry stamped on the cookie, roughly 400
// days, the practical upper bound many browsers enforce.
const CookieMaxAgeSeconds = 34560000

// CookiePath scopes the cookie site-wide.
const CookiePath = "/"

// EncodeCookieValue serializes rides to compact JSON and percent-encodes the
// result for use as a cookie value.
func EncodeCookieValue(rides []domain.RideRecord) (string, error) {
	if rides == nil {
		rides = []domain.RideRecord{}
	}
	data, err := json.Marshal(rides)
	if err != nil {
		return "", err
	}
	return url.QueryEscape(string(data)), nil
}

// DecodeCookieValue reverses EncodeCookieValue. It never fails: an empty
// value, a decode failure, a parse failure, or a non-array payload all yield
// an empty sequence.
func DecodeCookieValue(value string) []domain.RideRecord {
	if value == "" {
		return []domain.RideRecord{}
	}
	raw, err := url.QueryUnescape(value)
	if err != nil {
		return []domain.RideRecord{}
	}
	rides, err := domain.DecodeRides([]byte(raw))
	if err != nil || rides == nil {
		return []domain.RideRecord{}
	}
	return rides
}
