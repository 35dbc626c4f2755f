package types

// Category is a canonical need/resource kind. Victims and donors are
// compatible when their free-text types resolve to the same category.
type Category struct {
	Slug         string   `json:"slug"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Aliases      []string `json:"aliases,omitempty"`
	DisplayOrder int      `json:"display_order"`
}
