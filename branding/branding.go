// Package branding holds the organization presets that theme the
// portal: stylesheet, logo, favicon and storefront link. The selected
// organization is persisted per session.
package branding

// Organization is one themable organization preset.
type Organization struct {
	Name    string `json:"name"`
	CSSFile string `json:"css_file"`
	Logo    string `json:"logo"`
	Icon    string `json:"icon"`
	Site    string `json:"site"`
}

type Repo interface {
	Get(name string) (*Organization, error)
	List() []*Organization
	Default() *Organization
}
