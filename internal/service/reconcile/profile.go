package reconcile

import "fmt"

// Attribute is one configured output column of a reconciliation profile.
type Attribute struct {
	// Column is the exact header in the matched dataset.
	Column string `json:"column"`
	// Field is the key under which the value lands in a LookupRecord.
	Field string `json:"field"`
	// Title is the display/export header.
	Title string `json:"title"`
	// IsDate marks attributes that get day-first display formatting when
	// their value parses as a date; unparseable values pass through verbatim.
	IsDate bool `json:"isDate"`
}

// Profile describes one reconciliation view: the business key to join on
// and the attributes copied from the matched row.
type Profile struct {
	Name      string `json:"name"`
	KeyColumn string `json:"keyColumn"`
	// TargetKeyColumn is the key header in the matched dataset; it can
	// differ from the driver header (the fleet registry uses "plate"
	// where the master sheet says "Plate No").
	TargetKeyColumn string      `json:"targetKeyColumn"`
	KeyField        string      `json:"keyField"`
	KeyTitle        string      `json:"keyTitle"`
	Attributes      []Attribute `json:"attributes"`
}

// FieldNames lists the non-key output fields in display order.
func (p Profile) FieldNames() []string {
	names := make([]string, 0, len(p.Attributes))
	for _, a := range p.Attributes {
		names = append(names, a.Field)
	}
	return names
}

// Contracts joins the reference sheet against an uploaded contract export
// on "Contract No." — the original contract verification view.
var Contracts = Profile{
	Name:            "contracts",
	KeyColumn:       "Contract No.",
	TargetKeyColumn: "Contract No.",
	KeyField:        "contract",
	KeyTitle:        "Contract No",
	Attributes: []Attribute{
		{Column: "Plate No.", Field: "plate", Title: "Plate No"},
		{Column: "Model", Field: "model", Title: "Model"},
		{Column: "Pick-up Date", Field: "pickup", Title: "Pick-up Date", IsDate: true},
		{Column: "Drop-off Date", Field: "dropoff", Title: "Drop-off Date", IsDate: true},
	},
}

// Fleet joins the vehicle registry on "Plate No", picking up registration
// and insurance expiry dates that frequently arrive as Excel serials.
var Fleet = Profile{
	Name:            "fleet",
	KeyColumn:       "Plate No",
	TargetKeyColumn: "plate",
	KeyField:        "plate",
	KeyTitle:        "Plate No",
	Attributes: []Attribute{
		{Column: "model", Field: "model", Title: "Model"},
		{Column: "chassis", Field: "chassis", Title: "Chassis No"},
		{Column: "regExpiry", Field: "regExpiry", Title: "Reg Expiry", IsDate: true},
		{Column: "insExpiry", Field: "insExpiry", Title: "Ins Expiry", IsDate: true},
		{Column: "color", Field: "color", Title: "Color"},
	},
}

// ProfileByName resolves a view name to its profile.
func ProfileByName(name string) (Profile, error) {
	switch name {
	case Contracts.Name:
		return Contracts, nil
	case Fleet.Name:
		return Fleet, nil
	}
	return Profile{}, fmt.Errorf("unknown lookup profile: %s", name)
}
