package notion

import "github.com/heartmarshall/postbot/internal/domain"

// Property names of the channel and people collections.
const (
	propName        = "Name"
	propInviteLink  = "Invite link"
	propID          = "id"
	propFormat      = "Format"
	propTags        = "Tags"
	propDescription = "Description"
	propTelegram    = "Telegram"
)

// DecodeChannels projects raw records into channels. Decoding is
// best-effort per record: a record missing its name or invite link, or
// with a Format value outside the {Channel, Chat} allow-list, is
// skipped silently. Missing optional fields (icon, description, tags,
// transport id) yield zero values.
func DecodeChannels(records []Record) []domain.Channel {
	channels := make([]domain.Channel, 0, len(records))
	for _, r := range records {
		ch, ok := decodeChannel(r)
		if !ok {
			continue
		}
		channels = append(channels, ch)
	}
	return channels
}

func decodeChannel(r Record) (domain.Channel, bool) {
	name, ok := extractText(r, propName)
	if !ok {
		return domain.Channel{}, false
	}
	url, ok := extractURL(r, propInviteLink)
	if !ok {
		return domain.Channel{}, false
	}
	kind, ok := decodeKind(r)
	if !ok {
		return domain.Channel{}, false
	}

	id, _ := extractNumberID(r, propID)
	description, _ := extractText(r, propDescription)

	return domain.Channel{
		RecordID:    r.ID,
		ID:          id,
		URL:         url,
		Name:        name,
		Icon:        extractIcon(r),
		Kind:        kind,
		Description: description,
		Tags:        extractSelectNames(r, propTags),
	}, true
}

// decodeKind reads the first entry of the multi-valued Format property.
// The mapping is an explicit allow-list, not a default: anything other
// than the two known literals drops the record.
func decodeKind(r Record) (domain.ChannelKind, bool) {
	values := extractSelectNames(r, propFormat)
	if len(values) == 0 {
		return "", false
	}
	switch values[0] {
	case "Channel":
		return domain.KindChannel, true
	case "Chat":
		return domain.KindChat, true
	}
	return "", false
}

// DecodeUserTags returns the entitlement tags of a people record in
// the order the store returned them. Resolver output order depends on
// this order being preserved.
func DecodeUserTags(r Record) []string {
	return extractSelectNames(r, propTags)
}
