package currency

// Info describes a supported currency.
type Info struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

var supported = []Info{
	{Code: "INR", Name: "Indian Rupee", Symbol: "₹"},
	{Code: "USD", Name: "US Dollar", Symbol: "$"},
	{Code: "EUR", Name: "Euro", Symbol: "€"},
	{Code: "GBP", Name: "British Pound", Symbol: "£"},
	{Code: "JPY", Name: "Japanese Yen", Symbol: "¥"},
	{Code: "AUD", Name: "Australian Dollar", Symbol: "A$"},
	{Code: "CAD", Name: "Canadian Dollar", Symbol: "C$"},
	{Code: "CHF", Name: "Swiss Franc", Symbol: "Fr"},
	{Code: "CNY", Name: "Chinese Yuan", Symbol: "¥"},
	{Code: "SGD", Name: "Singapore Dollar", Symbol: "S$"},
	{Code: "AED", Name: "UAE Dirham", Symbol: "د.إ"},
}

var localeDefaults = map[string]string{
	"en-IN": "INR",
	"hi-IN": "INR",
	"en-US": "USD",
	"en-GB": "GBP",
	"en-EU": "EUR",
	"de-DE": "EUR",
	"fr-FR": "EUR",
	"ja-JP": "JPY",
	"en-AU": "AUD",
	"en-CA": "CAD",
	"en-SG": "SGD",
}

// Supported returns the catalog of currencies the app offers.
func Supported() []Info {
	out := make([]Info, len(supported))
	copy(out, supported)
	return out
}

// IsSupported reports whether the code is in the catalog.
func IsSupported(code string) bool {
	for _, info := range supported {
		if info.Code == code {
			return true
		}
	}
	return false
}

// DefaultForLocale maps a BCP 47 locale tag to the onboarding default
// currency. Unknown locales fall back to INR.
func DefaultForLocale(locale string) string {
	if code, ok := localeDefaults[locale]; ok {
		return code
	}
	return "INR"
}
