package faq

type Type string

const (
	TypeTechnical Type = "technical"
	TypeHR        Type = "hr"
	TypeAptitude  Type = "aptitude"
)

func (t Type) Valid() bool {
	switch t {
	case TypeTechnical, TypeHR, TypeAptitude:
		return true
	}
	return false
}

// FAQ.Company is a free-text company name, not a reference.
type FAQ struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Company  string `json:"company"`
	Type     Type   `json:"type"`
}

type CreateInput struct {
	Question string
	Answer   string
	Company  string
	Type     Type
}

func (in CreateInput) WithID(id string) FAQ {
	return FAQ{
		ID:       id,
		Question: in.Question,
		Answer:   in.Answer,
		Company:  in.Company,
		Type:     in.Type,
	}
}
