package compliance

// countryCodes maps lower-cased country names to ISO 3166-1 alpha-2 codes.
// Lookup keys must stay lower case.
var countryCodes = map[string]string{
	"norway":         "NO",
	"norge":          "NO",
	"sweden":         "SE",
	"sverige":        "SE",
	"denmark":        "DK",
	"danmark":        "DK",
	"finland":        "FI",
	"iceland":        "IS",
	"germany":        "DE",
	"deutschland":    "DE",
	"france":         "FR",
	"spain":          "ES",
	"portugal":       "PT",
	"italy":          "IT",
	"netherlands":    "NL",
	"belgium":        "BE",
	"luxembourg":     "LU",
	"austria":        "AT",
	"switzerland":    "CH",
	"poland":         "PL",
	"czech republic": "CZ",
	"slovakia":       "SK",
	"hungary":        "HU",
	"slovenia":       "SI",
	"croatia":        "HR",
	"romania":        "RO",
	"bulgaria":       "BG",
	"greece":         "GR",
	"estonia":        "EE",
	"latvia":         "LV",
	"lithuania":      "LT",
	"ireland":        "IE",
	"united kingdom": "GB",
	"great britain":  "GB",
	"england":        "GB",
	"united states":  "US",
	"usa":            "US",
	"canada":         "CA",
}
