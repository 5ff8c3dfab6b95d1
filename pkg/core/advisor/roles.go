// Package advisor assembles the executive briefing prompts sent to the
// text generation backend. Each briefing speaks as one member of the
// virtual board: the CFO reads the ratio report, the CMO reads the unit
// economics, and the CEO synthesizes the two written narratives.
package advisor

// Role identifies which executive persona a briefing speaks as.
type Role string

const (
	RoleCFO Role = "cfo"
	RoleCMO Role = "cmo"
	RoleCEO Role = "ceo"
)

// Title returns the display title used in rendered reports.
func (r Role) Title() string {
	switch r {
	case RoleCFO:
		return "Fractional CFO"
	case RoleCMO:
		return "Chief Marketing Officer"
	case RoleCEO:
		return "Chief Executive Officer"
	default:
		return "Unknown Advisor"
	}
}

// Roles lists the advisors in the order the board convenes them.
func Roles() []Role {
	return []Role{RoleCFO, RoleCMO, RoleCEO}
}
