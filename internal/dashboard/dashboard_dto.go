package dashboard

type StatsResponse struct {
	TotalEmployees int64 `json:"total_employees"`
	PresentToday   int64 `json:"present_today"`
	AbsentToday    int64 `json:"absent_today"`
	Unmarked       int64 `json:"unmarked"`
}
