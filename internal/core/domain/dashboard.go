package domain

// DashboardStats is the landing-page projection.
type DashboardStats struct {
	TodayAppointments int     `json:"todayAppointments"`
	WaitingPatients   int     `json:"waitingPatients"`
	TodayRevenue      float64 `json:"todayRevenue"`
	TotalPatients     int     `json:"totalPatients"`
}

// MonthlyStats covers the current calendar month.
type MonthlyStats struct {
	Appointments   int     `json:"appointments"`
	Revenue        float64 `json:"revenue"`
	NewPatients    int     `json:"newPatients"`
	MedicalRecords int     `json:"medicalRecords"`
}
