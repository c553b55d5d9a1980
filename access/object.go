// Package access holds the server-declared UI capability descriptors
// (access objects) and the per-session catalog that gates what the
// current session is permitted to see.
package access

// ObjectType classifies the UI element an access object gates.
type ObjectType string

const (
	TypeMenu      ObjectType = "MENU"
	TypeComponent ObjectType = "COMPONENT"
	TypeButton    ObjectType = "BUTTON"
	TypeTab       ObjectType = "TAB"
)

// Object is one capability descriptor as returned by the backend. The
// full set is replaced wholesale on every fetch, never patched.
type Object struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"` // unique capability identifier
	Type        ObjectType `json:"type"`
	Metadata    Metadata   `json:"metadata"`
	Description string     `json:"description"`
}

// Metadata is the open map attached to an access object. The known keys
// have typed accessors; anything else rides along untouched.
type Metadata map[string]any

func (m Metadata) Href() string    { return m.str("href") }
func (m Metadata) Label() string   { return m.str("label") }
func (m Metadata) Section() string { return m.str("section") }
func (m Metadata) Icon() string    { return m.str("icon") }

func (m Metadata) str(key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}
