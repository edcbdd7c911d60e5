package domain

// descriptionByCategory maps upstream transaction type codes to
// human-readable labels. Unmapped codes pass through verbatim.
var descriptionByCategory = map[string]string{
	"Varekjøp":     "Purchase of goods",
	"Nettgiro":     "Online payment",
	"Overføring":   "Transfer",
	"Minibank":     "ATM",
	"Kontantuttak": "Cash withdrawal",
	"Renter":       "Interest",
	"Gebyr":        "Fee",
	"Lønn":         "Salary",
	"Pensjon":      "Pension",
	"Trygd":        "Benefit payment",
	"Refusjon":     "Refund",
}

// DefaultDescription is used when upstream sends no transaction type.
const DefaultDescription = "Transaction"

// DescriptionForCategory translates an upstream category code into a
// display description.
func DescriptionForCategory(category string) string {
	if category == "" {
		return DefaultDescription
	}
	if description, ok := descriptionByCategory[category]; ok {
		return description
	}
	return category
}
