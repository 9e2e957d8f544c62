package notion

// TextSegment is one piece of a title or rich_text property value.
type TextSegment struct {
	Text struct {
		Content string `json:"content"`
	} `json:"text"`
}

func segments(content string) []TextSegment {
	var seg TextSegment
	seg.Text.Content = content
	return []TextSegment{seg}
}

// TitleProp shapes a value for a property of type title.
func TitleProp(s string) map[string]any {
	return map[string]any{"title": segments(s)}
}

// RichTextProp shapes a value for a property of type rich_text.
func RichTextProp(s string) map[string]any {
	return map[string]any{"rich_text": segments(s)}
}

// URLProp shapes a value for a property of type url.
func URLProp(s string) map[string]any {
	return map[string]any{"url": s}
}

// DateProp shapes a value for a property of type date; start must be an ISO
// 8601 date.
func DateProp(start string) map[string]any {
	return map[string]any{"date": map[string]string{"start": start}}
}
