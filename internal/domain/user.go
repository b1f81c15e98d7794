package domain

// AuthLevel is one of the two flat privilege levels.
type AuthLevel int

const (
	AuthLevelStandard AuthLevel = 0
	AuthLevelAdmin    AuthLevel = 1
)

// Valid reports whether the level is Standard or Admin.
func (l AuthLevel) Valid() bool {
	return l == AuthLevelStandard || l == AuthLevelAdmin
}

func (l AuthLevel) String() string {
	switch l {
	case AuthLevelStandard:
		return "Standard"
	case AuthLevelAdmin:
		return "Admin"
	default:
		return "Unknown"
	}
}

// User is the directory record for someone who can log in.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	AuthLevel    AuthLevel
}

// Snapshot freezes the identity fields of u.
func (u *User) Snapshot() UserSnapshot {
	return UserSnapshot{Username: u.Username, ID: u.ID, AuthLevel: u.AuthLevel}
}

// UserSnapshot is a copy of a user's identity taken at a point in time. Ticket
// owners and message authors keep the snapshot from when they were written.
type UserSnapshot struct {
	Username  string    `json:"username"`
	ID        int64     `json:"id"`
	AuthLevel AuthLevel `json:"authLevel"`
}

// IsAdmin reports whether the snapshot carries Admin privileges.
func (s UserSnapshot) IsAdmin() bool {
	return s.AuthLevel == AuthLevelAdmin
}
