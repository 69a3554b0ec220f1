package domain

import "time"

type PendingKind string

const (
	PendingNone             PendingKind = ""
	PendingAwaitingPhone    PendingKind = "awaiting_phone"
	PendingAwaitingAddress  PendingKind = "awaiting_address"
	PendingCategoryBrowsing PendingKind = "category_browsing"
	PendingLead             PendingKind = "lead_pending"
)

// PendingContext is the input a session expects next. Only the payload
// field matching Kind is meaningful.
type PendingContext struct {
	Kind     PendingKind `json:"kind,omitempty"`
	Category string      `json:"category,omitempty"`
	Label    string      `json:"label,omitempty"`
	Source   string      `json:"source,omitempty"`
}

func AwaitingPhone() PendingContext {
	return PendingContext{Kind: PendingAwaitingPhone}
}

func AwaitingAddress(label string) PendingContext {
	return PendingContext{Kind: PendingAwaitingAddress, Label: label}
}

func CategoryBrowsing(category string) PendingContext {
	return PendingContext{Kind: PendingCategoryBrowsing, Category: category}
}

func LeadPending(source string) PendingContext {
	return PendingContext{Kind: PendingLead, Source: source}
}

func (p PendingContext) IsNone() bool {
	return p.Kind == PendingNone
}

// Session is the per-chat conversational state.
type Session struct {
	ID        string         `json:"id"`
	Language  Language       `json:"language"`
	Cart      Cart           `json:"cart"`
	Pending   PendingContext `json:"pending"`
	Phone     string         `json:"phone,omitempty"`
	Name      string         `json:"name,omitempty"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func NewSession(id string, lang Language) *Session {
	return &Session{
		ID:        id,
		Language:  lang,
		UpdatedAt: time.Now(),
	}
}

// Reset clears the cart and the pending context after a terminal action.
func (s *Session) Reset() {
	s.Cart.Clear()
	s.Pending = PendingContext{}
}

// UserProfile is what survives restarts for a chat.
type UserProfile struct {
	ChatID   int64
	Name     string
	Language Language // empty until chosen
	Phone    string
	Source   string
}

type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)
