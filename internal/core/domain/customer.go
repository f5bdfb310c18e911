package domain

// Customer is a person contact, optionally linked to a company.
type Customer struct {
	CustomerID string  `json:"customerID" db:"customer_id"`
	Email      string  `json:"email" db:"email"` // unique
	Name       string  `json:"name" db:"name"`
	Phone      string  `json:"phone" db:"phone"`
	CompanyID  *string `json:"companyID,omitempty" db:"company_id"`
	Ownership
	AuditFields
}

// DisplayName is what audit entries record for a customer; falls back to the
// email when no name was entered.
func (c Customer) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Email
}
