package domain

// ChannelKind distinguishes broadcast channels from group chats.
// The set is closed: records with any other Format value are skipped
// at decode time.
type ChannelKind string

const (
	KindChannel ChannelKind = "Channel"
	KindChat    ChannelKind = "Chat"
)

// Channel is one entitlement-gated destination a user may post into.
//
// RecordID is the content-store record identity and the dedup key for
// resolver output. ID is the chat-transport destination identifier and
// may be empty when the source record carries none; such channels can
// still be listed but not posted into.
type Channel struct {
	RecordID    string
	ID          string
	URL         string
	Name        string
	Icon        string
	Kind        ChannelKind
	Description string
	Tags        []string
}

// Postable reports whether the channel can be addressed through the
// chat transport.
func (c Channel) Postable() bool {
	return c.ID != ""
}

// Label returns the display name prefixed with the icon glyph, if any.
func (c Channel) Label() string {
	if c.Icon == "" {
		return c.Name
	}
	return c.Icon + " " + c.Name
}
