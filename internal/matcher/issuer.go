package matcher

import "strings"

// knownIssuers lists issuer name variants recognized in raw card labels,
// checked in order
var knownIssuers = []string{
	"DBS", "POSB", "OCBC", "UOB", "Citi", "Citibank", "HSBC",
	"AMEX", "American Express", "Standard Chartered", "StanChart",
	"Maybank", "CIMB", "BOC", "Bank of China",
}

// issuerNormalizations folds alternate issuer spellings onto their canonical
// names
var issuerNormalizations = map[string]string{
	"CITIBANK":         "Citi",
	"AMERICAN EXPRESS": "AMEX",
	"STANCHART":        "Standard Chartered",
	"BANK OF CHINA":    "BOC",
	"POSB":             "DBS",
}

// ExtractIssuer guesses the card issuer from a raw card label when no
// catalog match exists. Returns "Unknown" if no issuer keyword is found.
func ExtractIssuer(rawName string) string {
	upper := strings.ToUpper(rawName)
	for _, issuer := range knownIssuers {
		if !strings.Contains(upper, strings.ToUpper(issuer)) {
			continue
		}
		if normalized, ok := issuerNormalizations[strings.ToUpper(issuer)]; ok {
			return normalized
		}
		return issuer
	}
	return "Unknown"
}
