package converter

import (
	"strings"

	"novadent-crm/internal/domain/entity"
)

// LeadToPatient builds the patient record a lead conversion creates. The
// lead's single name field is split on the first space; a lead with no
// surname gets an empty last name.
func LeadToPatient(lead *entity.Lead) *entity.Patient {
	firstName := lead.Name
	lastName := ""
	if idx := strings.Index(lead.Name, " "); idx > 0 {
		firstName = lead.Name[:idx]
		lastName = strings.TrimSpace(lead.Name[idx+1:])
	}

	return &entity.Patient{
		FirstName:      firstName,
		LastName:       lastName,
		Phone:          lead.Phone,
		Email:          lead.Email,
		ReferralSource: lead.Source,
		LeadStatus:     entity.LeadStatusConverted,
		SiteID:         lead.SiteID,
	}
}
