package ledger

import (
	"encoding/json"
	"fmt"
	"time"

	"subwaylog/pkg/domain"
)

// ExportFilename returns the download name for an export taken at the given
// time, patterned nyc-rides-<YYYY-MM-DD>.json.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("nyc-rides-%s.json", now.UTC().Format("2006-01-02"))
}

// ExportJSON renders rides as a pretty-printed JSON array, the same shape as
// the persisted ledger but readable enough to hand to the user.
func ExportJSON(rides []domain.RideRecord) ([]byte, error) {
	if rides == nil {
		rides = []domain.RideRecord{}
	}
	return json.MarshalIndent(rides, "", "  ")
}

// ParseImport decodes a user-selected import document. The document must
// parse to a JSON array of ride records; otherwise the error is returned for
// display and the caller leaves the ledger unchanged.
func ParseImport(data []byte) ([]domain.RideRecord, error) {
	rides, err := domain.DecodeRides(data)
	if err != nil {
		return nil, err
	}
	if rides == nil {
		rides = []domain.RideRecord{}
	}
	return rides, nil
}
