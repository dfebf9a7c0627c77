package dataset

import "subwaylog/pkg/domain"

// Edit operations produce a new snapshot from the old one by structural
// copy-with-replacement at the targeted index; the caller's snapshot is never
// mutated, which keeps optimistic UI updates trivially safe to discard. None
// of these persist anything; persistence is a separate explicit Save.
// An out-of-range index leaves the snapshot unchanged.

// ModelField names an editable field of a rolling-stock entry.
type ModelField string

// Editable rolling-stock fields.
const (
	ModelFieldName     ModelField = "model"
	ModelFieldDivision ModelField = "division"
)

// LineField names an editable field of a line entry.
type LineField string

// Editable line fields.
const (
	LineFieldID           LineField = "id"
	LineFieldLabel        LineField = "label"
	LineFieldDivision     LineField = "division"
	LineFieldColor        LineField = "color"
	LineFieldTerminalFrom LineField = "terminalFrom"
	LineFieldTerminalTo   LineField = "terminalTo"
)

// AddModel appends a rolling-stock entry.
func AddModel(s domain.Snapshot, entry domain.RollingStockEntry) domain.Snapshot {
	out := s.Clone()
	out.RollingStock = append(out.RollingStock, entry)
	return out
}

// UpdateModelField replaces one field of the rolling-stock entry at index.
func UpdateModelField(s domain.Snapshot, index int, field ModelField, value string) domain.Snapshot {
	if index < 0 || index >= len(s.RollingStock) {
		return s
	}
	out := s.Clone()
	entry := &out.RollingStock[index]
	switch field {
	case ModelFieldName:
		entry.Model = value
	case ModelFieldDivision:
		entry.Division = domain.Division(value)
	}
	return out
}

// AddRange appends a car-number range to the rolling-stock entry at index.
func AddRange(s domain.Snapshot, index int, r domain.CarRange) domain.Snapshot {
	if index < 0 || index >= len(s.RollingStock) {
		return s
	}
	out := s.Clone()
	out.RollingStock[index].Ranges = append(out.RollingStock[index].Ranges, r)
	return out
}

// UpdateRange replaces the rangeIndex-th range of the rolling-stock entry at
// index.
func UpdateRange(s domain.Snapshot, index, rangeIndex int, r domain.CarRange) domain.Snapshot {
	if index < 0 || index >= len(s.RollingStock) {
		return s
	}
	if rangeIndex < 0 || rangeIndex >= len(s.RollingStock[index].Ranges) {
		return s
	}
	out := s.Clone()
	out.RollingStock[index].Ranges[rangeIndex] = r
	return out
}

// RemoveModel deletes the rolling-stock entry at index.
func RemoveModel(s domain.Snapshot, index int) domain.Snapshot {
	if index < 0 || index >= len(s.RollingStock) {
		return s
	}
	out := s.Clone()
	out.RollingStock = append(out.RollingStock[:index], out.RollingStock[index+1:]...)
	return out
}

// AddLine appends a line entry.
func AddLine(s domain.Snapshot, line domain.LineEntry) domain.Snapshot {
	out := s.Clone()
	out.Lines = append(out.Lines, line)
	return out
}

// UpdateLineField replaces one field of the line entry at index. ID edits are
// allowed without a uniqueness check; the ID is a label, not a foreign key.
func UpdateLineField(s domain.Snapshot, index int, field LineField, value string) domain.Snapshot {
	if index < 0 || index >= len(s.Lines) {
		return s
	}
	out := s.Clone()
	line := &out.Lines[index]
	switch field {
	case LineFieldID:
		line.ID = value
	case LineFieldLabel:
		line.Label = value
	case LineFieldDivision:
		line.Division = domain.Division(value)
	case LineFieldColor:
		line.Color = value
	case LineFieldTerminalFrom:
		line.Terminals[0] = value
	case LineFieldTerminalTo:
		line.Terminals[1] = value
	}
	return out
}

// RemoveLine deletes the line entry at index.
func RemoveLine(s domain.Snapshot, index int) domain.Snapshot {
	if index < 0 || index >= len(s.Lines) {
		return s
	}
	out := s.Clone()
	out.Lines = append(out.Lines[:index], out.Lines[index+1:]...)
	return out
}
