package models

// Requests for view endpoints. Defined in domain for consistency and reuse.
// Dates are FRED-style YYYY-MM-DD strings.

type OverviewRequest struct {
	Start string `query:"start" json:"start" default:"2000-01-01" validate:"datetime=2006-01-02"`
}

type YieldCurveRequest struct {
	Start string `query:"start" json:"start" default:"1990-01-01" validate:"datetime=2006-01-02"`
	Date  string `query:"date" json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type InflationRequest struct {
	Start string `query:"start" json:"start" default:"1990-01-01" validate:"datetime=2006-01-02"`
}

type RecessionRequest struct {
	Start string `query:"start" json:"start" default:"1990-01-01" validate:"datetime=2006-01-02"`
}

type SeriesRequest struct {
	IDs   string `query:"ids" json:"ids" validate:"required,min=1"`
	Start string `query:"start" json:"start" default:"2000-01-01" validate:"datetime=2006-01-02"`
}
