package router

import (
	"sync"

	"github.com/pt428/recipes/internal/client/models"
)

// Navigator holds the current route and the state carried by the last
// transition.
type Navigator struct {
	mu        sync.Mutex
	router    *Router
	current   Route
	state     *models.ReturnState
	redirects int
	onChange  func(Route)
}

func NewNavigator(r *Router) *Navigator {
	return &Navigator{router: r, current: r.Resolve("/")}
}

// OnChange registers fn to run after every transition.
func (n *Navigator) OnChange(fn func(Route)) {
	n.mu.Lock()
	n.onChange = fn
	n.mu.Unlock()
}

// Go moves to path carrying state (may be nil).
func (n *Navigator) Go(path string, state *models.ReturnState) Route {
	n.mu.Lock()
	n.current = n.router.Resolve(path)
	n.state = state
	route, fn := n.current, n.onChange
	n.mu.Unlock()

	if fn != nil {
		fn(route)
	}
	return route
}

// Redirect is a transition without state, used by out-of-band events such
// as an expired session.
func (n *Navigator) Redirect(path string) {
	n.mu.Lock()
	n.redirects++
	n.mu.Unlock()
	n.Go(path, nil)
}

func (n *Navigator) Current() Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// TakeState returns the state of the last transition and forgets it.
func (n *Navigator) TakeState() *models.ReturnState {
	n.mu.Lock()
	defer n.mu.Unlock()
	st := n.state
	n.state = nil
	return st
}

// Redirects counts calls to Redirect.
func (n *Navigator) Redirects() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.redirects
}
