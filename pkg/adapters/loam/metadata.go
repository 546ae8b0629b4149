package loam

// GraphMetadata is the typed header of a graph document stored in Loam: the
// frontmatter of a Markdown file, or the body of a JSON/YAML file.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type GraphMetadata struct {
	ID    string   `json:"id" mapstructure:"id"`
	Title string   `json:"title" mapstructure:"title"`
	Tags  []string `json:"tags" mapstructure:"tags"`

	// Nodes and Connections hold the graph document itself.
	Nodes       map[string]any `json:"nodes" mapstructure:"nodes"`
	Connections []any          `json:"connections" mapstructure:"connections"`
}
