package guard

// Route is the navigation metadata the guard consumes: whether the path
// needs an authenticated session and, optionally, one named capability
// from the closed permission check set.
type Route struct {
	Path         string
	Name         string
	RequiresAuth bool
	Permission   string
}

// Table is a declarative route registry keyed by path. Unknown paths
// resolve to the configured not-found route, which requires no auth.
type Table struct {
	routes   map[string]Route
	notFound Route
}

// NewTable builds a Table from the given routes. Later duplicates of a
// path win, matching declarative route-list semantics.
func NewTable(routes ...Route) *Table {
	t := &Table{
		routes:   make(map[string]Route, len(routes)),
		notFound: Route{Path: "/404", Name: "NotFound"},
	}
	for _, r := range routes {
		t.routes[r.Path] = r
	}
	return t
}

// SetNotFound overrides the route unknown paths resolve to.
func (t *Table) SetNotFound(r Route) {
	t.notFound = r
}

// Register adds or replaces one route.
func (t *Table) Register(r Route) {
	t.routes[r.Path] = r
}

// Lookup resolves path to its route. The second return reports whether
// the path was registered; unregistered paths return the not-found route.
func (t *Table) Lookup(path string) (Route, bool) {
	if r, ok := t.routes[path]; ok {
		return r, true
	}
	return t.notFound, false
}
