package entity

// PatientStats summarizes the patient funnel for the dashboard.
type PatientStats struct {
	TotalPatients     int64   `json:"total_patients"`
	NewPatients       int64   `json:"new_patients"`
	ConvertedPatients int64   `json:"converted_patients"`
	AvgPoints         float64 `json:"avg_points"`
}

// AppointmentStats summarizes appointment load for the dashboard.
type AppointmentStats struct {
	TotalAppointments int64 `json:"total_appointments"`
	Confirmed         int64 `json:"confirmed"`
	Pending           int64 `json:"pending"`
	Completed         int64 `json:"completed"`
	Today             int64 `json:"today"`
}
