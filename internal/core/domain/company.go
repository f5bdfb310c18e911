package domain

// Company is an organization record.
type Company struct {
	CompanyID string `json:"companyID" db:"company_id"`
	Name      string `json:"name" db:"name"`
	OrgNumber string `json:"orgNumber" db:"org_number"` // unique when set
	Email     string `json:"email" db:"email"`
	Phone     string `json:"phone" db:"phone"`
	Website   string `json:"website" db:"website"`
	Address   string `json:"address" db:"address"`
	City      string `json:"city" db:"city"`
	ZipCode   string `json:"zipCode" db:"zip_code"`
	Ownership
	AuditFields
}
