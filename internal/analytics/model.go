package analytics

// MonthlyPoint is one month of the six-month series shown on the analytics
// screen.
type MonthlyPoint struct {
	Month      string  `json:"month"`
	Revenue    float64 `json:"revenue"`
	NewMembers int     `json:"new_members"`
}

type Stats struct {
	TotalRevenue   float64 `json:"total_revenue"`
	AverageRevenue float64 `json:"average_revenue"`
	TotalMembers   int     `json:"total_members"`
	ActiveMembers  int     `json:"active_members"`
	RetentionRate  float64 `json:"retention_rate"`
}

type Overview struct {
	Monthly []MonthlyPoint `json:"monthly"`
	Stats   Stats          `json:"stats"`
}

type Dashboard struct {
	TotalMembers    int     `json:"total_members"`
	ActiveMembers   int     `json:"active_members"`
	ExpiringSoon    int     `json:"expiring_soon"`
	MonthRevenue    float64 `json:"month_revenue"`
	NewMembersMonth int     `json:"new_members_month"`
}
