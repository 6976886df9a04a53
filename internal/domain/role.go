package domain

const (
	RoleAdmin    = "admin"
	RoleBusiness = "business"
	RoleInvestor = "investor"
)

// Principal is the caller identity extracted from the Bearer token.
// It is passed explicitly into services; nothing reads it ambiently.
type Principal struct {
	UserID string
	Role   string
	Token  string
}

// MenuItem is one entry of a role's navigation menu.
type MenuItem struct {
	Title    string     `json:"title" toml:"title"`
	Path     string     `json:"path" toml:"path"`
	Icon     string     `json:"icon,omitempty" toml:"icon"`
	Children []MenuItem `json:"children,omitempty" toml:"children"`
}
