// Package screen holds the interactive flows of the client as explicit state
// machines. Screens never talk HTTP: they dispatch slice thunks and ask a
// Navigator to move elsewhere.
package screen

// RouteName names a screen in the navigation stack
type RouteName string

const (
	RouteEntryList  RouteName = "EntryList"
	RouteEntryEdit  RouteName = "EntryEdit"
	RouteAddEntry   RouteName = "AddEntry"
	RouteCategories RouteName = "Categories"
	RouteDashboard  RouteName = "Dashboard"
)

// Route is a navigation target with its parameters
type Route struct {
	Name RouteName
	// EntryID is required by RouteEntryEdit.
	EntryID int
	// Notice carries a failure from the screen being left, for the next
	// screen to show.
	Notice error
}

// Navigator moves between screens
type Navigator interface {
	Navigate(route Route)
}

// History is a Navigator that records every route it is asked to show.
type History struct {
	routes []Route
}

// Navigate implements Navigator
func (h *History) Navigate(route Route) {
	h.routes = append(h.routes, route)
}

// Current returns the most recent route
func (h *History) Current() (Route, bool) {
	if len(h.routes) == 0 {
		return Route{}, false
	}
	return h.routes[len(h.routes)-1], true
}
