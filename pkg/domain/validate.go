package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// DecodeSnapshot parses data into a Snapshot, enforcing structural shape at
// the storage boundary. Values that are valid JSON but not snapshot-shaped
// fail the same way malformed JSON does, so callers substitute the seed
// dataset in either case.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Snapshot{}, errors.New("decode snapshot: top-level value is not an object")
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// Validate checks the structural invariants of the snapshot. Range overlap
// between entries is deliberately not validated; classification resolves
// overlap by list order.
func (s Snapshot) Validate() error {
	for i, entry := range s.RollingStock {
		for j, r := range entry.Ranges {
			if r.Low > r.High {
				return fmt.Errorf("rolling stock %d (%s) range %d: low %d exceeds high %d", i, entry.Model, j, r.Low, r.High)
			}
		}
	}
	return nil
}

// DecodeRides parses data into a ride sequence. The top-level value must be
// a JSON array; any other shape is a decode error. Import paths surface the
// error while ledger loads substitute an empty sequence.
func DecodeRides(data []byte) ([]RideRecord, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New("decode rides: top-level value is not an array")
	}
	var rides []RideRecord
	if err := json.Unmarshal(data, &rides); err != nil {
		return nil, fmt.Errorf("decode rides: %w", err)
	}
	return rides, nil
}
