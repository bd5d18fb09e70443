package schema

// RefSuggestTable represents the 'suggest' table
type RefSuggestTable struct {
	Table            string
	ID               string
	MemeID           string
	BeforeCategories string
	AfterCategories  string
	ApplyUserID      string
	Status           string
	CreatedAt        string
}

// RefSuggest is the schema definition for suggest
var RefSuggest = RefSuggestTable{
	Table:            "suggest",
	ID:               "id",
	MemeID:           "meme_id",
	BeforeCategories: "before_categories",
	AfterCategories:  "after_categories",
	ApplyUserID:      "apply_user_id",
	Status:           "status",
	CreatedAt:        "created_at",
}

func (t RefSuggestTable) Columns() []string {
	return []string{t.ID, t.MemeID, t.BeforeCategories, t.AfterCategories, t.ApplyUserID, t.Status, t.CreatedAt}
}
