package ui

// Route paths served by the content area.
const (
	routeHome    = "/"
	routeCart    = "/cart"
	routeProfile = "/profile"
	routeLogs    = "/logs"
)

// router tracks the current page and the pages visited before it.
type router struct {
	path    string
	history []string
}

func newRouter() router {
	return router{path: routeHome}
}

// Path returns the current route.
func (r router) Path() string {
	if r.path == "" {
		return routeHome
	}
	return r.path
}

// NavigateTo switches to path. Navigating to the current path is a no-op.
func (r *router) NavigateTo(path string) {
	if path == "" {
		path = routeHome
	}
	if path == r.Path() {
		return
	}
	r.history = append(r.history, r.Path())
	r.path = path
}

// Back returns to the previous page. It reports false when there is none.
func (r *router) Back() bool {
	if len(r.history) == 0 {
		return false
	}
	last := len(r.history) - 1
	r.path = r.history[last]
	r.history = r.history[:last]
	return true
}

// Reset drops history and returns home.
func (r *router) Reset() {
	r.history = nil
	r.path = routeHome
}
