package company

type Company struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Logo        string   `json:"logo"`
	Description string   `json:"description"`
	Eligibility string   `json:"eligibility"`
	VisitDate   string   `json:"visitDate"`
	Roles       []string `json:"roles"`
}

type CreateInput struct {
	Name        string
	Logo        string
	Description string
	Eligibility string
	VisitDate   string
	Roles       []string
}

func (in CreateInput) WithID(id string) Company {
	roles := make([]string, len(in.Roles))
	copy(roles, in.Roles)
	return Company{
		ID:          id,
		Name:        in.Name,
		Logo:        in.Logo,
		Description: in.Description,
		Eligibility: in.Eligibility,
		VisitDate:   in.VisitDate,
		Roles:       roles,
	}
}
