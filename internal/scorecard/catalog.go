package scorecard

// fallbackColor is used for any metric name not in the catalog.
const fallbackColor = "#999999"

// metricColors maps metric display names to their fixed chart colors.
var metricColors = map[string]string{
	"Work Search":                         "#3b8ee2",
	"Benefit Year Earnings":               "#4cc74c",
	"Separation Issues":                   "#f04848",
	"Able + Available":                    "#ff9b1f",
	"Employment Service Registration":     "#4dd2d2",
	"Base Period Wages":                   "#ffd23b",
	"Other Eligibility Issues":            "#c15fcf",
	"All Other Causes":                    "#ff7b93",
	"Improper Payment Rate":               "#1f77b4",
	"Fraud Rate":                          "#ff7f0e",
	"First Payment Timeliness (14 days)":  "#2a9d8f",
	"First Payment Timeliness (21 days)":  "#e76f51",
	"Nonmonetary Determination":           "#9467bd",
	"Nonmonetary Determination Quality":   "#9467bd",
	"Separation Determination Quality":    "#8c564b",
	"Nonseparation Determination Quality": "#17becf",
}

// MetricColor returns the catalog color for a metric name, or the
// fallback for unknown names.
func MetricColor(name string) string {
	if c, ok := metricColors[name]; ok {
		return c
	}
	return fallbackColor
}
