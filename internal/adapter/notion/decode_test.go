package notion

import (
	"testing"

	"github.com/heartmarshall/postbot/internal/domain"
)

func channelRecord(id, name, url, format string) Record {
	props := map[string]Property{}
	if name != "" {
		props[propName] = Property{Type: "title", Title: []RichText{{Text: RichTextBody{Content: name}}}}
	}
	if url != "" {
		u := url
		props[propInviteLink] = Property{Type: "url", URL: &u}
	}
	if format != "" {
		props[propFormat] = Property{Type: "multi_select", MultiSelect: []SelectOption{{Name: format}}}
	}
	return Record{ID: id, Properties: props}
}

func TestDecodeChannels_FullRecord(t *testing.T) {
	t.Parallel()

	r := channelRecord("rec-1", "DevOps", "https://t.me/+abc", "Channel")
	n := float64(123456)
	r.Icon = &RecordIcon{Type: "emoji", Emoji: "🔧"}
	r.Properties[propID] = Property{Type: "number", Number: &n}
	r.Properties[propDescription] = Property{Type: "rich_text", RichText: []RichText{{Text: RichTextBody{Content: "infra requests"}}}}
	r.Properties[propTags] = Property{Type: "multi_select", MultiSelect: []SelectOption{{Name: "ops"}, {Name: "backend"}}}

	channels := DecodeChannels([]Record{r})
	if len(channels) != 1 {
		t.Fatalf("decoded %d channels, want 1", len(channels))
	}

	ch := channels[0]
	if ch.RecordID != "rec-1" || ch.ID != "123456" || ch.Name != "DevOps" {
		t.Errorf("unexpected identity fields: %+v", ch)
	}
	if ch.URL != "https://t.me/+abc" || ch.Icon != "🔧" || ch.Description != "infra requests" {
		t.Errorf("unexpected optional fields: %+v", ch)
	}
	if ch.Kind != domain.KindChannel {
		t.Errorf("Kind = %q, want %q", ch.Kind, domain.KindChannel)
	}
	if len(ch.Tags) != 2 || ch.Tags[0] != "ops" || ch.Tags[1] != "backend" {
		t.Errorf("Tags = %v, want [ops backend]", ch.Tags)
	}
}

func TestDecodeChannels_MissingRequiredFieldsDropsRecord(t *testing.T) {
	t.Parallel()

	records := []Record{
		channelRecord("no-name", "", "https://t.me/+a", "Channel"),
		channelRecord("no-url", "Backend", "", "Channel"),
		channelRecord("ok", "DevOps", "https://t.me/+b", "Channel"),
	}

	channels := DecodeChannels(records)
	if len(channels) != 1 {
		t.Fatalf("decoded %d channels, want 1 (malformed records dropped)", len(channels))
	}
	if channels[0].RecordID != "ok" {
		t.Errorf("survivor = %q, want the well-formed record", channels[0].RecordID)
	}
	for _, ch := range channels {
		if ch.Name == "" || ch.URL == "" {
			t.Errorf("output contains channel with empty name/url: %+v", ch)
		}
	}
}

func TestDecodeChannels_FormatAllowList(t *testing.T) {
	t.Parallel()

	cases := []struct {
		format string
		kind   domain.ChannelKind
		kept   bool
	}{
		{"Channel", domain.KindChannel, true},
		{"Chat", domain.KindChat, true},
		{"Forum", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		channels := DecodeChannels([]Record{channelRecord("r", "Name", "https://t.me/+x", tc.format)})
		if tc.kept {
			if len(channels) != 1 || channels[0].Kind != tc.kind {
				t.Errorf("format %q: got %v, want kind %q", tc.format, channels, tc.kind)
			}
		} else if len(channels) != 0 {
			t.Errorf("format %q: record kept, want dropped", tc.format)
		}
	}
}

func TestDecodeChannels_FirstFormatValueWins(t *testing.T) {
	t.Parallel()

	r := channelRecord("r", "Name", "https://t.me/+x", "")
	r.Properties[propFormat] = Property{Type: "multi_select", MultiSelect: []SelectOption{
		{Name: "Chat"}, {Name: "Channel"},
	}}

	channels := DecodeChannels([]Record{r})
	if len(channels) != 1 || channels[0].Kind != domain.KindChat {
		t.Fatalf("got %v, want single channel of kind Chat", channels)
	}
}

func TestDecodeChannels_OptionalFieldsAbsent(t *testing.T) {
	t.Parallel()

	channels := DecodeChannels([]Record{channelRecord("r", "Name", "https://t.me/+x", "Chat")})
	if len(channels) != 1 {
		t.Fatalf("decoded %d channels, want 1", len(channels))
	}

	ch := channels[0]
	if ch.ID != "" || ch.Icon != "" || ch.Description != "" || len(ch.Tags) != 0 {
		t.Errorf("optional fields should be zero when absent: %+v", ch)
	}
}

func TestDecodeUserTags_StoreOrder(t *testing.T) {
	t.Parallel()

	r := record(map[string]Property{
		propTags: {Type: "multi_select", MultiSelect: []SelectOption{
			{Name: "b"}, {Name: "a"},
		}},
	})

	tags := DecodeUserTags(r)
	if len(tags) != 2 || tags[0] != "b" || tags[1] != "a" {
		t.Errorf("DecodeUserTags = %v, want [b a] (store order)", tags)
	}
}

func TestDecodeUserTags_NoTagsProperty(t *testing.T) {
	t.Parallel()

	if tags := DecodeUserTags(record(map[string]Property{})); len(tags) != 0 {
		t.Errorf("DecodeUserTags = %v, want empty", tags)
	}
}
