package dto

type CreateAppointmentRequest struct {
	PatientID string  `json:"patientId" validate:"required,uuid"`
	DoctorID  *string `json:"doctorId" validate:"omitempty,uuid"`
	SiteID    *string `json:"siteId" validate:"omitempty,uuid"`
	Date      string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time      string  `json:"time" validate:"required,max=8"`
	Treatment *string `json:"treatment"`
	Status    string  `json:"status" validate:"omitempty,oneof=Confirmada Pendiente Completada Cancelada"`
	Notes     *string `json:"notes"`
}
