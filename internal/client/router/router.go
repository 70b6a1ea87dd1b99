// Package router maps client paths onto the screens of the terminal client.
package router

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
)

type Name string

const (
	RouteList          Name = "list"
	RouteRecipe        Name = "recipe"
	RouteShared        Name = "shared"
	RouteProfileEdit   Name = "profile_edit"
	RouteProfileDelete Name = "profile_delete"
)

// Route is a resolved path.
type Route struct {
	Name   Name
	Path   string
	Params map[string]string
}

// RecipeID is the :id parameter of a recipe route.
func (r Route) RecipeID() int64 {
	id, _ := strconv.ParseInt(r.Params["id"], 10, 64)
	return id
}

// Token is the :token parameter of a shared route.
func (r Route) Token() string {
	return r.Params["token"]
}

type resultKey struct{}

type Router struct {
	r *httprouter.Router
}

func New() *Router {
	hr := httprouter.New()
	hr.RedirectTrailingSlash = false

	hr.GET("/", named(RouteList))
	hr.GET("/recipes", named(RouteList))
	hr.GET("/recipes/:id", named(RouteRecipe))
	hr.GET("/shared/:token", named(RouteShared))
	hr.GET("/profile/edit", named(RouteProfileEdit))
	hr.GET("/profile/delete", named(RouteProfileDelete))

	return &Router{r: hr}
}

func named(name Name) httprouter.Handle {
	return func(_ http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		res := req.Context().Value(resultKey{}).(*Route)
		res.Name = name
		for _, p := range ps {
			res.Params[p.Key] = p.Value
		}
	}
}

// Resolve matches path against the known routes. Unknown paths, and recipe
// paths whose id is not a number, resolve to the listing.
func (rt *Router) Resolve(path string) Route {
	p := normalize(path)
	fallback := Route{Name: RouteList, Path: "/", Params: map[string]string{}}

	h, ps, _ := rt.r.Lookup(http.MethodGet, p)
	if h == nil {
		return fallback
	}

	res := &Route{Path: p, Params: map[string]string{}}
	req := (&http.Request{}).WithContext(context.WithValue(context.Background(), resultKey{}, res))
	h(nil, req, ps)

	if res.Name == RouteRecipe && res.RecipeID() <= 0 {
		return fallback
	}
	return *res
}

func normalize(path string) string {
	path = strings.TrimSpace(path)
	if u, err := url.Parse(path); err == nil {
		path = u.Path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}

// RecipePath is the detail path of recipe id.
func RecipePath(id int64) string {
	return "/recipes/" + strconv.FormatInt(id, 10)
}

// SharedPath is the public path of a share token.
func SharedPath(token string) string {
	return "/shared/" + url.PathEscape(token)
}
