package models

type Goal struct {
	ID       int64   `json:"id"`
	UserID   int64   `json:"-"`
	Name     string  `json:"name"`
	Target   float64 `json:"target"`
	Current  float64 `json:"current"`
	Deadline string  `json:"deadline"`
	Priority string  `json:"priority"`
}

func DefaultGoal() Goal {
	return Goal{Name: "Goal", Priority: "low"}
}

type GoalPatch struct {
	Name     Optional[string]  `json:"name"`
	Target   Optional[float64] `json:"target"`
	Current  Optional[float64] `json:"current"`
	Deadline Optional[string]  `json:"deadline"`
	Priority Optional[string]  `json:"priority"`
}
