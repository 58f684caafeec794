package dto

type CreateSiteRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Address string `json:"address"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
	Active  *bool  `json:"active"`
}

type CreateDoctorRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	Specialty string `json:"specialty" validate:"omitempty,max=150"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
	Active    *bool  `json:"active"`
}
