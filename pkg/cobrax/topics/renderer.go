package topics

// Renderer formats topic content for display
type Renderer interface {
	// Render takes the raw content and the topic file extension
	Render(content string, format string) string
}

// PlainRenderer returns content as-is
type PlainRenderer struct{}

// Render returns the content unchanged
func (r *PlainRenderer) Render(content string, _ string) string {
	return content
}
