package catalog

// Customer is the external customer record, reduced to what resolution needs.
type Customer struct {
	ID   string   `json:"id"`
	Tags []string `json:"tags"`
}

// Segment is a named customer grouping owned by the external catalog service.
type Segment struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Query string `json:"query,omitempty"`
}

// Collection is an external catalog grouping of products.
type Collection struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Handle string `json:"handle"`
}
