package resource

// Resource is a curated learning resource served by the backend. The
// library page renders it as a card with an optional outbound link.
type Resource struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// HasLink reports whether the card should render an open button.
func (r Resource) HasLink() bool {
	return r.Link != ""
}
