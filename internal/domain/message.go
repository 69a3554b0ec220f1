package domain

// Update is an inbound chat event reduced to the fields the engine reads.
type Update struct {
	ChatID    int64
	FirstName string
	Username  string
	Text      string
	Contact   *Contact
	Location  *Location
}

type Contact struct {
	PhoneNumber string
	FirstName   string
}

type Location struct {
	Latitude  float64
	Longitude float64
}

// Button is a reply keyboard button. RequestContact and RequestLocation
// ask the client to share the phone number or the location.
type Button struct {
	Text            string `json:"text"`
	RequestContact  bool   `json:"request_contact,omitempty"`
	RequestLocation bool   `json:"request_location,omitempty"`
}

type Keyboard [][]Button

// Rows builds a keyboard with one plain button per row.
func Rows(labels ...string) Keyboard {
	kb := make(Keyboard, 0, len(labels))
	for _, l := range labels {
		kb = append(kb, []Button{{Text: l}})
	}
	return kb
}

// Outbound is a message to deliver through the chat platform.
type Outbound struct {
	ChatID    int64
	Text      string
	Keyboard  Keyboard
	ParseMode string
	// Broadcast marks bulk sends that are throttled.
	Broadcast bool
}
