package services

// LocationTable is the static State → District → Mandal reference data used
// by the membership and complaint forms. Names are both key and display
// value; there are no separate identifiers.
//
// The map alone would lose ordering, so the ordered views below are kept
// alongside it and the two must stay in sync.
var LocationTable = map[string]map[string][]string{
	"Telangana": {
		"Hyderabad": {
			"Amberpet", "Charminar", "Golconda", "Himayathnagar",
			"Nampally", "Secunderabad", "Shaikpet",
		},
		"Rangareddy": {
			"Chevella", "Ibrahimpatnam", "Maheshwaram", "Rajendranagar",
			"Serilingampally", "Shamshabad",
		},
		"Warangal": {
			"Hanamkonda", "Hasanparthy", "Khila Warangal", "Parkal",
			"Wardhannapet",
		},
		"Karimnagar": {
			"Choppadandi", "Huzurabad", "Jammikunta", "Karimnagar Rural",
			"Manakondur",
		},
		"Nalgonda": {
			"Chityal", "Devarakonda", "Miryalaguda", "Nakrekal", "Nalgonda",
		},
	},
	"Andhra Pradesh": {
		"Visakhapatnam": {
			"Anandapuram", "Bheemunipatnam", "Gajuwaka", "Pendurthi",
			"Visakhapatnam Rural",
		},
		"Guntur": {
			"Mangalagiri", "Pedakakani", "Tadepalli", "Tenali", "Thullur",
		},
		"Krishna": {
			"Gannavaram", "Gudivada", "Machilipatnam", "Pamarru", "Vuyyuru",
		},
		"Chittoor": {
			"Chandragiri", "Puttur", "Srikalahasti", "Tirupati Rural",
		},
	},
	"Karnataka": {
		"Bengaluru Urban": {
			"Anekal", "Bengaluru East", "Bengaluru North", "Bengaluru South",
			"Yelahanka",
		},
		"Mysuru": {
			"Hunsur", "Mysuru Rural", "Nanjangud", "T Narasipura",
		},
		"Ballari": {
			"Ballari Rural", "Kampli", "Kurugodu", "Sandur", "Siruguppa",
		},
	},
}

// stateOrder fixes the display order of states.
var stateOrder = []string{"Telangana", "Andhra Pradesh", "Karnataka"}

// districtOrder fixes the display order of districts per state.
var districtOrder = map[string][]string{
	"Telangana":      {"Hyderabad", "Rangareddy", "Warangal", "Karimnagar", "Nalgonda"},
	"Andhra Pradesh": {"Visakhapatnam", "Guntur", "Krishna", "Chittoor"},
	"Karnataka":      {"Bengaluru Urban", "Mysuru", "Ballari"},
}

// States returns the ordered list of states.
func States() []string {
	out := make([]string, len(stateOrder))
	copy(out, stateOrder)
	return out
}

// Districts returns the ordered districts of a state, or an empty list when
// the state is empty or unknown.
func Districts(state string) []string {
	order, ok := districtOrder[state]
	if !ok {
		return []string{}
	}
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// Mandals returns the ordered mandals of a (state, district) pair, or an
// empty list when either level is empty or unknown.
func Mandals(state, district string) []string {
	districts, ok := LocationTable[state]
	if !ok {
		return []string{}
	}
	mandals, ok := districts[district]
	if !ok {
		return []string{}
	}
	out := make([]string, len(mandals))
	copy(out, mandals)
	return out
}

// ValidLocation reports whether the given state/district/mandal triple exists
// in the table. Empty trailing levels are allowed: ("Telangana", "", "") is
// valid, ("Telangana", "", "Chevella") is not.
func ValidLocation(state, district, mandal string) bool {
	if state == "" {
		return district == "" && mandal == ""
	}
	districts, ok := LocationTable[state]
	if !ok {
		return false
	}
	if district == "" {
		return mandal == ""
	}
	mandals, ok := districts[district]
	if !ok {
		return false
	}
	if mandal == "" {
		return true
	}
	for _, m := range mandals {
		if m == mandal {
			return true
		}
	}
	return false
}

// LocationSelector drives the dependent State/District/Mandal selects.
// Selecting a parent level discards the child selections, even when the new
// parent happens to contain a child of the same name.
type LocationSelector struct {
	State    string
	District string
	Mandal   string
}

// SelectState sets the state and unconditionally clears district and mandal.
func (s *LocationSelector) SelectState(name string) {
	s.State = name
	s.District = ""
	s.Mandal = ""
}

// SelectDistrict sets the district and clears the mandal.
func (s *LocationSelector) SelectDistrict(name string) {
	s.District = name
	s.Mandal = ""
}

// SelectMandal sets the mandal. No cascading effect.
func (s *LocationSelector) SelectMandal(name string) {
	s.Mandal = name
}

// AvailableDistricts returns the options for the district select.
func (s *LocationSelector) AvailableDistricts() []string {
	return Districts(s.State)
}

// AvailableMandals returns the options for the mandal select.
func (s *LocationSelector) AvailableMandals() []string {
	return Mandals(s.State, s.District)
}

// DistrictEnabled reports whether the district select is interactive.
func (s *LocationSelector) DistrictEnabled() bool {
	return s.State != ""
}

// MandalEnabled reports whether the mandal select is interactive.
func (s *LocationSelector) MandalEnabled() bool {
	return s.District != ""
}
