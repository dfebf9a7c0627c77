package dataset

import "subwaylog/pkg/domain"

// Seed returns the hard-coded default dataset. It is the fallback for every
// load that finds no usable persisted snapshot, and the target of an explicit
// reseed. Callers receive a fresh copy on every call.
func Seed() domain.Snapshot {
	return seedSnapshot.Clone()
}

var seedSnapshot = domain.Snapshot{
	RollingStock: []domain.RollingStockEntry{
		{Model: "R46", Division: domain.DivisionB, Ranges: []domain.CarRange{{Low: 5482, High: 6258}}},
		{Model: "R62", Division: domain.DivisionA, Ranges: []domain.CarRange{{Low: 1301, High: 1625}}},
		{Model: "R62A", Division: domain.DivisionA, Ranges: []domain.CarRange{{Low: 1651, High: 2475}}},
		{Model: "R68", Division: domain.DivisionB, Ranges: []domain.CarRange{{Low: 2500, High: 2924}}},
		{Model: "R68A", Division: domain.DivisionB, Ranges: []domain.CarRange{{Low: 5001, High: 5200}}},
		{Model: "R142", Division: domain.DivisionA, Ranges: []domain.CarRange{{Low: 6301, High: 7180}}},
		{Model: "R142A", Division: domain.DivisionA, Ranges: []domain.CarRange{{Low: 7211, High: 7590}}},
		{Model: "R143", Division: domain.DivisionB, Ranges: []domain.CarRange{{Low: 8101, High: 8312}}},
		{Model: "R160A", Division: domain.DivisionB, Ranges: []domain.CarRange{{Low: 8313, High: 8712}, {Low: 9943, High: 9974}}},
		{Model: "R160B", Division: domain.DivisionB, Ranges: []domain.CarRange{{Low: 8713, High: 9942}}},
		{Model: "R179", Division: domain.DivisionB, Ranges: []domain.CarRange{{Low: 3010, High: 3327}}},
		{Model: "R188", Division: domain.DivisionA, Ranges: []domain.CarRange{{Low: 7811, High: 7936}}},
		{Model: "R211A", Division: domain.DivisionB, Ranges: []domain.CarRange{{Low: 4000, High: 4399}}},
		{Model: "R211S", Division: domain.DivisionSIR, Ranges: []domain.CarRange{{Low: 4550, High: 4625}}},
		{Model: "R44", Division: domain.DivisionSIR, Ranges: []domain.CarRange{{Low: 388, High: 466}}},
	},
	Lines: []domain.LineEntry{
		{ID: "1", Label: "1 – Broadway-7 Av Local", Division: domain.DivisionA, Color: "#EE352E", Terminals: [2]string{"Van Cortlandt Park–242 St", "South Ferry"}},
		{ID: "4", Label: "4 – Lexington Av Express", Division: domain.DivisionA, Color: "#00933C", Terminals: [2]string{"Woodlawn", "Crown Hts–Utica Av"}},
		{ID: "7", Label: "7 – Flushing Local", Division: domain.DivisionA, Color: "#B933AD", Terminals: [2]string{"Flushing–Main St", "34 St–Hudson Yards"}},
		{ID: "A", Label: "A – 8 Av Express", Division: domain.DivisionB, Color: "#0039A6", Terminals: [2]string{"Inwood–207 St", "Far Rockaway–Mott Av"}},
		{ID: "G", Label: "G – Brooklyn-Queens Crosstown", Division: domain.DivisionB, Color: "#6CBE45", Terminals: [2]string{"Court Sq", "Church Av"}},
		{ID: "L", Label: "L – 14 St-Canarsie Local", Division: domain.DivisionB, Color: "#A7A9AC", Terminals: [2]string{"8 Av", "Canarsie–Rockaway Pkwy"}},
		{ID: "N", Label: "N – Broadway Express", Division: domain.DivisionB, Color: "#FCCC0A", Terminals: [2]string{"Astoria–Ditmars Blvd", "Coney Island–Stillwell Av"}},
		{ID: "SIR", Label: "Staten Island Railway", Division: domain.DivisionSIR, Color: "#0039A6", Terminals: [2]string{"St George", "Tottenville"}},
	},
}
