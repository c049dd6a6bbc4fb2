package claim

// DefaultState is pre-selected in the jurisdiction step when configuration
// does not override it.
const DefaultState = "Florida"

// USStates is the closed 50-state enumeration offered at the jurisdiction
// step. Membership is the only guard on that step.
var USStates = []string{
	"Alabama", "Alaska", "Arizona", "Arkansas", "California", "Colorado",
	"Connecticut", "Delaware", "Florida", "Georgia",
	"Hawaii", "Idaho", "Illinois", "Indiana", "Iowa", "Kansas",
	"Kentucky", "Louisiana", "Maine", "Maryland",
	"Massachusetts", "Michigan", "Minnesota", "Mississippi", "Missouri",
	"Montana", "Nebraska", "Nevada", "New Hampshire", "New Jersey",
	"New Mexico", "New York", "North Carolina", "North Dakota", "Ohio",
	"Oklahoma", "Oregon", "Pennsylvania", "Rhode Island", "South Carolina",
	"South Dakota", "Tennessee", "Texas", "Utah", "Vermont", "Virginia",
	"Washington", "West Virginia", "Wisconsin", "Wyoming",
}

// IsUSState reports closed-world membership (exact match, case-sensitive).
func IsUSState(s string) bool {
	for _, state := range USStates {
		if state == s {
			return true
		}
	}
	return false
}
