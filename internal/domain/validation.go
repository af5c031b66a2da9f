package domain

// Severity grades how wrong a unit is for a food category.
type Severity string

const (
	SeverityError   Severity = "error"   // physically/commercially impossible pairing
	SeverityWarning Severity = "warning" // unusual, a better unit exists
	SeverityInfo    Severity = "info"    // accepted as-is
)

// UnitValidationVerdict is the advisory output of the category unit
// validator. It never mutates data; entry pathways decide what to do with it.
type UnitValidationVerdict struct {
	IsValid        bool     `json:"isValid"`
	Severity       Severity `json:"severity"`
	SuggestedUnit  string   `json:"suggestedUnit,omitempty"`
	SuggestedUnits []string `json:"suggestedUnits,omitempty"`
	Reason         string   `json:"reason"`
}
