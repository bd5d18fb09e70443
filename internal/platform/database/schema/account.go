package schema

// RefAccountTable represents the 'account' table
type RefAccountTable struct {
	Table          string
	ID             string
	Username       string
	HashedPassword string
	IsAdmin        string
	UsualAddress   string
	LastActivityAt string
	CreatedAt      string
}

// RefAccount is the schema definition for account
var RefAccount = RefAccountTable{
	Table:          "account",
	ID:             "id",
	Username:       "username",
	HashedPassword: "hashed_password",
	IsAdmin:        "is_admin",
	UsualAddress:   "usual_address",
	LastActivityAt: "last_activity_at",
	CreatedAt:      "created_at",
}

func (t RefAccountTable) Columns() []string {
	return []string{t.ID, t.Username, t.HashedPassword, t.IsAdmin, t.UsualAddress, t.LastActivityAt, t.CreatedAt}
}
