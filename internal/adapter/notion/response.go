package notion

// queryResponse is one page of a collection query. A null next_cursor
// signals the last page.
type queryResponse struct {
	Results    []Record `json:"results"`
	NextCursor *string  `json:"next_cursor"`
}

// Record is a generic content-store record: an identity, an optional
// record-level icon, and a property tree keyed by property name.
type Record struct {
	ID         string              `json:"id"`
	Icon       *RecordIcon         `json:"icon"`
	Properties map[string]Property `json:"properties"`
}

// RecordIcon is the record-level glyph. Only emoji icons are used;
// other icon types (file, external) decode with an empty Emoji.
type RecordIcon struct {
	Type  string `json:"type"`
	Emoji string `json:"emoji"`
}

// Property carries every value variant the store can return for a
// single property. Type names the populated variant; the extractors in
// extract.go switch on it instead of hard-coding one shape per
// property name.
type Property struct {
	Type        string         `json:"type"`
	Title       []RichText     `json:"title"`
	RichText    []RichText     `json:"rich_text"`
	URL         *string        `json:"url"`
	Number      *float64       `json:"number"`
	MultiSelect []SelectOption `json:"multi_select"`
}

// RichText is one fragment of a title or rich-text value.
type RichText struct {
	PlainText string       `json:"plain_text"`
	Text      RichTextBody `json:"text"`
}

// RichTextBody holds the raw content of a rich-text fragment.
type RichTextBody struct {
	Content string `json:"content"`
}

// SelectOption is one entry of a multi-valued select property.
type SelectOption struct {
	Name string `json:"name"`
}
