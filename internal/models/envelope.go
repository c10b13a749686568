package models

// EnvelopeBudget assigns money to a category for one month.
type EnvelopeBudget struct {
	ID        int64   `json:"id"`
	UserID    int64   `json:"-"`
	Category  string  `json:"category"`
	Assigned  float64 `json:"assigned"`
	Activity  float64 `json:"activity"`
	Available float64 `json:"available"`
	Month     string  `json:"month"` // YYYY-MM
	Rollover  bool    `json:"rollover"`
	Priority  int     `json:"priority"` // 1-10
	Notes     *string `json:"notes"`
}

func DefaultEnvelopeBudget(month string) EnvelopeBudget {
	return EnvelopeBudget{Category: "General", Month: month, Rollover: true, Priority: 5}
}

type EnvelopePatch struct {
	Assigned  Optional[float64] `json:"assigned"`
	Activity  Optional[float64] `json:"activity"`
	Available Optional[float64] `json:"available"`
	Rollover  Optional[bool]    `json:"rollover"`
	Priority  Optional[int]     `json:"priority"`
	Notes     Optional[string]  `json:"notes"`
}
