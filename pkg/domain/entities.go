// Package domain defines the core persistent entities, value types, and
// storage ports used by subwaylog.
package domain

// Division identifies the operating division a car or line belongs to.
type Division string

// Canonical divisions of the system. SIR is operationally separate but uses
// the same numeric car identification scheme.
const (
	// DivisionA identifies the numbered (IRT) lines.
	DivisionA Division = "A"
	// DivisionB identifies the lettered (BMT/IND) lines.
	DivisionB Division = "B"
	// DivisionSIR identifies the Staten Island Railway.
	DivisionSIR Division = "SIR"
)

// CarRange is an inclusive numeric interval of car numbers.
type CarRange struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// Contains reports whether n falls inside the range, inclusive on both ends.
func (r CarRange) Contains(n int) bool {
	return n >= r.Low && n <= r.High
}

// RollingStockEntry maps one or more car-number ranges to a fleet model.
// Ranges across entries may overlap; lookup resolves overlap by list order,
// earliest entry first.
type RollingStockEntry struct {
	Model    string     `json:"model"`
	Division Division   `json:"division"`
	Ranges   []CarRange `json:"ranges"`
}

// LineEntry describes a service line. ID doubles as the classification label
// stamped onto ride records; uniqueness is expected but not enforced on edit.
type LineEntry struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Division  Division  `json:"division"`
	Color     string    `json:"color"`
	Terminals [2]string `json:"terminals"`
}

// Snapshot is the whole-document unit of dataset load and save. It carries no
// schema version; readers substitute the seed dataset when a persisted value
// fails to decode.
type Snapshot struct {
	RollingStock []RollingStockEntry `json:"rollingStock"`
	Lines        []LineEntry         `json:"lines"`
}

// RideRecord is one logged ride. Line, LineColor, Model and Division are
// copied at creation time so later dataset edits never rewrite history.
// Records are immutable once created; the only mutation is whole-record
// deletion.
type RideRecord struct {
	ID          string `json:"id"`
	TrainNumber string `json:"trainNumber"`
	Line        string `json:"line"`
	LineColor   string `json:"lineColor"`
	Model       string `json:"model"`
	Division    string `json:"division"`
	Timestamp   string `json:"timestamp"`
}

// Clone returns a deep copy of the snapshot so callers can edit the copy
// without aliasing the original's range slices.
func (s Snapshot) Clone() Snapshot {
	cloned := Snapshot{
		RollingStock: make([]RollingStockEntry, len(s.RollingStock)),
		Lines:        append([]LineEntry(nil), s.Lines...),
	}
	for i, entry := range s.RollingStock {
		cloned.RollingStock[i] = cloneRollingStock(entry)
	}
	return cloned
}

func cloneRollingStock(e RollingStockEntry) RollingStockEntry {
	cp := e
	cp.Ranges = append([]CarRange(nil), e.Ranges...)
	return cp
}

// CloneRides returns a copy of the ride slice; records themselves are
// value types with no shared references.
func CloneRides(rides []RideRecord) []RideRecord {
	if rides == nil {
		return nil
	}
	return append([]RideRecord(nil), rides...)
}
