package schema

// RefCategoryTable represents the 'category' table
type RefCategoryTable struct {
	Table     string
	ID        string
	Name      string
	Parent    string
	CreatedAt string
}

// RefCategory is the schema definition for category
var RefCategory = RefCategoryTable{
	Table:     "category",
	ID:        "id",
	Name:      "name",
	Parent:    "parent",
	CreatedAt: "created_at",
}

func (t RefCategoryTable) Columns() []string {
	return []string{t.ID, t.Name, t.Parent, t.CreatedAt}
}
