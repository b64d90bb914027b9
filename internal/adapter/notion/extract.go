package notion

import "strconv"

// Typed extractors over the generic property tree. Each one reads the
// property's declared type and takes the first entry where the value is
// multi-valued. They are pure functions so decode behavior stays
// testable record by record.

// extractText returns the first text fragment of a title or rich-text
// property. The raw content is preferred; plain_text is the fallback
// for fragments without a raw body (mentions, equations).
func extractText(r Record, property string) (string, bool) {
	prop, ok := r.Properties[property]
	if !ok {
		return "", false
	}

	var fragments []RichText
	switch prop.Type {
	case "title":
		fragments = prop.Title
	case "rich_text":
		fragments = prop.RichText
	default:
		return "", false
	}

	if len(fragments) == 0 {
		return "", false
	}
	if c := fragments[0].Text.Content; c != "" {
		return c, true
	}
	if p := fragments[0].PlainText; p != "" {
		return p, true
	}
	return "", false
}

// extractURL returns the value of a url property.
func extractURL(r Record, property string) (string, bool) {
	prop, ok := r.Properties[property]
	if !ok || prop.Type != "url" || prop.URL == nil || *prop.URL == "" {
		return "", false
	}
	return *prop.URL, true
}

// extractSelectNames returns the option names of a multi-valued select
// property in the order the store returned them. Absent or mistyped
// properties yield nil.
func extractSelectNames(r Record, property string) []string {
	prop, ok := r.Properties[property]
	if !ok || prop.Type != "multi_select" {
		return nil
	}

	names := make([]string, 0, len(prop.MultiSelect))
	for _, opt := range prop.MultiSelect {
		if opt.Name != "" {
			names = append(names, opt.Name)
		}
	}
	return names
}

// extractNumberID returns a number property formatted as an opaque
// identifier string. Fractional values are truncated; the transport
// only understands integral ids.
func extractNumberID(r Record, property string) (string, bool) {
	prop, ok := r.Properties[property]
	if !ok || prop.Type != "number" || prop.Number == nil {
		return "", false
	}
	return strconv.FormatInt(int64(*prop.Number), 10), true
}

// extractIcon returns the record-level emoji glyph, if any.
func extractIcon(r Record) string {
	if r.Icon == nil || r.Icon.Type != "emoji" {
		return ""
	}
	return r.Icon.Emoji
}
