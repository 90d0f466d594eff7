package models

// FRED series identifiers used across the views.
const (
	SeriesDGS1MO = "DGS1MO"
	SeriesDGS3MO = "DGS3MO"
	SeriesDGS6MO = "DGS6MO"
	SeriesDGS1   = "DGS1"
	SeriesDGS2   = "DGS2"
	SeriesDGS5   = "DGS5"
	SeriesDGS7   = "DGS7"
	SeriesDGS10  = "DGS10"
	SeriesDGS20  = "DGS20"
	SeriesDGS30  = "DGS30"

	SeriesT10Y2Y = "T10Y2Y"
	SeriesT10Y3M = "T10Y3M"

	SeriesCPI        = "CPIAUCSL"
	SeriesCoreCPI    = "CPILFESL"
	SeriesPCE        = "PCEPI"
	SeriesCorePCE    = "PCEPILFE"
	SeriesMichigan   = "MICH"
	SeriesBreakeven  = "T10YIE"
	SeriesRealYield  = "DFII10"

	SeriesUnemployment = "UNRATE"
	SeriesSahmRule     = "SAHMREALTIME"
	SeriesRecession    = "USREC"
	SeriesIndustrial   = "INDPRO"
	SeriesPayrolls     = "PAYEMS"
)

// Catalog maps series identifiers to human-readable labels. Fixed at process
// start, never mutated.
var Catalog = map[string]string{
	SeriesDGS1MO: "1-Month Treasury",
	SeriesDGS3MO: "3-Month Treasury",
	SeriesDGS6MO: "6-Month Treasury",
	SeriesDGS1:   "1-Year Treasury",
	SeriesDGS2:   "2-Year Treasury",
	SeriesDGS5:   "5-Year Treasury",
	SeriesDGS7:   "7-Year Treasury",
	SeriesDGS10:  "10-Year Treasury",
	SeriesDGS20:  "20-Year Treasury",
	SeriesDGS30:  "30-Year Treasury",

	SeriesT10Y2Y: "10Y-2Y Spread",
	SeriesT10Y3M: "10Y-3M Spread",

	SeriesCPI:       "CPI (All Urban)",
	SeriesCoreCPI:   "Core CPI (ex Food & Energy)",
	SeriesPCE:       "PCE Price Index",
	SeriesCorePCE:   "Core PCE",
	SeriesMichigan:  "Umich Inflation Expectations (1Y)",
	SeriesBreakeven: "10Y Breakeven Inflation",
	SeriesRealYield: "10Y Real Yield (TIPS)",

	SeriesUnemployment: "Unemployment Rate",
	SeriesSahmRule:     "Sahm Rule Indicator",
	SeriesRecession:    "NBER Recession Indicator",
	SeriesIndustrial:   "Industrial Production",
	SeriesPayrolls:     "Nonfarm Payrolls",
}

// Label returns the catalog label for id, or the id itself when unknown.
func Label(id string) string {
	if l, ok := Catalog[id]; ok {
		return l
	}
	return id
}

// CurveMaturities lists the treasury curve series in maturity order with
// their maturities in years.
var CurveMaturities = []struct {
	ID    string
	Label string
	Years float64
}{
	{SeriesDGS1MO, "1M", 1.0 / 12},
	{SeriesDGS3MO, "3M", 3.0 / 12},
	{SeriesDGS6MO, "6M", 6.0 / 12},
	{SeriesDGS1, "1Y", 1},
	{SeriesDGS2, "2Y", 2},
	{SeriesDGS5, "5Y", 5},
	{SeriesDGS7, "7Y", 7},
	{SeriesDGS10, "10Y", 10},
	{SeriesDGS20, "20Y", 20},
	{SeriesDGS30, "30Y", 30},
}

// CurveSeriesIDs returns the curve identifiers in maturity order.
func CurveSeriesIDs() []string {
	ids := make([]string, len(CurveMaturities))
	for i, m := range CurveMaturities {
		ids[i] = m.ID
	}
	return ids
}
