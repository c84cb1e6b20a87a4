package update

// Update is a placement announcement. IsNew is set by the author, not
// derived from Date.
type Update struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Date    string `json:"date"`
	IsNew   bool   `json:"isNew"`
}

type CreateInput struct {
	Title   string
	Content string
	Date    string
	IsNew   bool
}

func (in CreateInput) WithID(id string) Update {
	return Update{
		ID:      id,
		Title:   in.Title,
		Content: in.Content,
		Date:    in.Date,
		IsNew:   in.IsNew,
	}
}
