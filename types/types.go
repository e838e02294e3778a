package types

// Dimensions holds the pixel size of an image as reported by a probe
type Dimensions struct {
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
}

// ImageMeta holds the externally supplied metadata for one image
type ImageMeta struct {
	Path     string         `json:"path"`
	Score    float64        `json:"score"`
	HasScore bool           `json:"-"`
	Fields   map[string]any `json:"fields,omitempty"`
}

// NodeType selects what kind of filesystem node gets listed
type NodeType string

const (
	NodeImage     NodeType = "image"
	NodeDirectory NodeType = "dir"
)

// ParseNodeType accepts the short and long spellings of a node type
func ParseNodeType(s string) (NodeType, bool) {
	switch s {
	case "image", "images", "img":
		return NodeImage, true
	case "dir", "dirs", "directory", "directories":
		return NodeDirectory, true
	default:
		return "", false
	}
}
