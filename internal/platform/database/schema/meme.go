package schema

// RefMemeTable represents the 'meme' table
type RefMemeTable struct {
	Table      string
	ID         string
	Categories string
	Nickname   string
	Message    string
	ShowAt     string
	Status     string
	Likes      string
	Unlikes    string
	CreatedAt  string
}

// RefMeme is the schema definition for meme
var RefMeme = RefMemeTable{
	Table:      "meme",
	ID:         "id",
	Categories: "categories",
	Nickname:   "nickname",
	Message:    "message",
	ShowAt:     "show_at",
	Status:     "status",
	Likes:      "likes",
	Unlikes:    "unlikes",
	CreatedAt:  "created_at",
}

func (t RefMemeTable) Columns() []string {
	return []string{t.ID, t.Categories, t.Nickname, t.Message, t.ShowAt, t.Status, t.Likes, t.Unlikes, t.CreatedAt}
}
