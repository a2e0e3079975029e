package entity

// Source identifies where an article came from.
// ID may be empty for providers that do not expose a stable source id.
type Source struct {
	ID   string
	Name string
}
