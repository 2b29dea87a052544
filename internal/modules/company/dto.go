package company

type CreateCompanyRequest struct {
	Name        string `json:"name" binding:"required" validate:"required,max=50"`
	Description string `json:"description" binding:"required" validate:"required"`
	Image       string `json:"image" binding:"required" validate:"required"`
	Location    string `json:"location" binding:"required" validate:"required"`
	Website     string `json:"website" binding:"required" validate:"required"`
	Address     string `json:"address" binding:"required" validate:"required"`
	District    string `json:"district" binding:"required" validate:"required"`
	Province    string `json:"province" binding:"required" validate:"required"`
	PostalCode  string `json:"postal_code" binding:"required" validate:"required,max=5"`
	Tel         string `json:"tel" binding:"required" validate:"required"`
	Region      string `json:"region" binding:"required" validate:"required"`
	Salary      string `json:"salary" binding:"required" validate:"required"`
}

// UpdateCompanyRequest patches simple fields; empty strings keep current
// values.
type UpdateCompanyRequest struct {
	Name        string `json:"name" validate:"omitempty,max=50"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Location    string `json:"location"`
	Website     string `json:"website"`
	Address     string `json:"address"`
	District    string `json:"district"`
	Province    string `json:"province"`
	PostalCode  string `json:"postal_code" validate:"omitempty,max=5"`
	Tel         string `json:"tel"`
	Region      string `json:"region"`
	Salary      string `json:"salary"`
}
