package dto

/* =========================================================
   REQUEST DTOs
========================================================= */

// CreateInstitutionRequest provisions a tenant: organization, institution,
// first location and the staff login, all in one call.
type CreateInstitutionRequest struct {
	Name   string   `json:"name" validate:"required,min=2,max=160"`
	Type   string   `json:"type" validate:"omitempty,oneof=school college university coaching"`
	Boards []string `json:"boards" validate:"omitempty,dive,min=2,max=40"`

	City    string `json:"city" validate:"omitempty,max=80"`
	State   string `json:"state" validate:"omitempty,max=80"`
	Address string `json:"address" validate:"omitempty,max=500"`

	// staff credential
	StaffUserName string `json:"staff_user_name" validate:"required,min=3,max=50"`
	StaffEmail    string `json:"staff_email" validate:"required,email"`
	StaffPassword string `json:"staff_password" validate:"required,min=8,max=72"`
}

type CreateFeeStructureRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=120"`
	AmountINR    int    `json:"amount_inr" validate:"required,gt=0"`
	AcademicYear string `json:"academic_year" validate:"omitempty,len=9"`
}
