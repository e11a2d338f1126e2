package domain

// VelocityPoint is the number of completions on one UTC day.
type VelocityPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ContributionReport summarizes ledger activity for a team.
type ContributionReport struct {
	TeamID            string          `json:"teamId"`
	TotalTasks        int             `json:"totalTasks"`
	CompletedTasks    int             `json:"completedTasks"`
	TotalContributors int             `json:"totalContributors"`
	RecentActivity    []TaskEvent     `json:"recentActivity"`
	Velocity          []VelocityPoint `json:"velocity"`
	Disputes          []TaskEvent     `json:"disputes"`
}

// NamedValue is one slice of a chart.
type NamedValue struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// PerformerScore ranks a contributor.
type PerformerScore struct {
	User  string `json:"user"`
	Score int    `json:"score"`
}

// ScreenTime is the estimated screen time of a contributor.
type ScreenTime struct {
	User  string  `json:"user"`
	Hours float64 `json:"hours"`
}

// DayTrend counts completed and added tasks on one day.
type DayTrend struct {
	Day       string `json:"day"`
	Completed int    `json:"completed"`
	Added     int    `json:"added"`
}

// CategoryScore is one axis of the skill matrix.
type CategoryScore struct {
	Subject  string `json:"subject"`
	A        int    `json:"A"`
	FullMark int    `json:"fullMark"`
}

// TeamHealth is the health dashboard for a team's shadow tasks.
type TeamHealth struct {
	TotalTasks             int              `json:"totalTasks"`
	CompletedTasks         int              `json:"completedTasks"`
	AvgCompletionTimeHours float64          `json:"avgCompletionTimeHours"`
	BurnoutRiskUsers       []string         `json:"burnoutRiskUsers"`
	TopPerformers          []PerformerScore `json:"topPerformers"`
	StatusBreakdown        []NamedValue     `json:"statusBreakdown"`
	WorkloadDistribution   []NamedValue     `json:"workloadDistribution"`
	ScreenTime             []ScreenTime     `json:"screenTime"`
	Trends                 []DayTrend       `json:"trends"`
	Categories             []CategoryScore  `json:"categories"`
}
