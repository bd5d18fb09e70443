package schema

// RefMemeURLTable represents the 'meme_url' table
type RefMemeURLTable struct {
	Table  string
	ID     string
	MemeID string
	URL    string
	Cover  string
	Format string
	Sort   string
}

// RefMemeURL is the schema definition for meme_url
var RefMemeURL = RefMemeURLTable{
	Table:  "meme_url",
	ID:     "id",
	MemeID: "meme_id",
	URL:    "url",
	Cover:  "cover",
	Format: "format",
	Sort:   "sort",
}

func (t RefMemeURLTable) Columns() []string {
	return []string{t.ID, t.MemeID, t.URL, t.Cover, t.Format, t.Sort}
}
