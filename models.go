package messagely

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the account model
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username      string     `bun:"username,notnull,unique" json:"username,omitempty"`
	FirstName     string     `bun:"first_name,notnull" json:"first_name,omitempty"`
	LastName      string     `bun:"last_name,notnull" json:"last_name,omitempty"`
	Phone         string     `bun:"phone_number" json:"phone,omitempty"`
	PasswordHash  string     `bun:"password_hash" json:"-"`
	JoinedAt      *time.Time `bun:"joined_at,nullzero,default:current_timestamp" json:"join_at,omitempty"`
	LastLoginAt   *time.Time `bun:"last_login_at,nullzero" json:"last_login_at,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// UserSummary is the public projection embedded in message payloads. It
// never carries the password hash.
type UserSummary struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
}

// Summary returns the public projection of the user
func (u *User) Summary() UserSummary {
	if u == nil {
		return UserSummary{}
	}
	return UserSummary{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
	}
}

// Message is a single text message between two users
type Message struct {
	bun.BaseModel `bun:"table:messages,alias:msg"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	FromUsername  string     `bun:"from_username,notnull" json:"from_username,omitempty"`
	ToUsername    string     `bun:"to_username,notnull" json:"to_username,omitempty"`
	Body          string     `bun:"body,notnull" json:"body,omitempty"`
	SentAt        *time.Time `bun:"sent_at,nullzero,default:current_timestamp" json:"sent_at,omitempty"`
	ReadAt        *time.Time `bun:"read_at,nullzero" json:"read_at,omitempty"`
	FromUser      *User      `bun:"rel:belongs-to,join:from_username=username" json:"from_user,omitempty"`
	ToUser        *User      `bun:"rel:belongs-to,join:to_username=username" json:"to_user,omitempty"`
}

// IsParticipant reports whether the username is the sender or the recipient
func (m *Message) IsParticipant(username string) bool {
	if m == nil || username == "" {
		return false
	}
	return m.FromUsername == username || m.ToUsername == username
}

// IsRecipient reports whether the username is the recipient
func (m *Message) IsRecipient(username string) bool {
	if m == nil || username == "" {
		return false
	}
	return m.ToUsername == username
}
