// Package admin configures how each entity is listed, searched,
// filtered and mutated in the generic record-management UI. The
// configuration is plain structs consumed by a generic engine; the
// models themselves are untouched.
package admin

import (
	"fmt"
	"strings"
)

// BuildSite assembles the default admin site with all three model
// admins registered.
func BuildSite() *Site {
	site := NewSite("/admin")
	site.Header = "Blog Admin Demo"
	site.Register(NewUserAdmin())
	site.Register(NewBlogAdmin())
	site.Register(NewPostAdmin())
	return site
}

// Site is the registry of model admins and the URL namespace they are
// served under.
type Site struct {
	Header string
	Prefix string

	entries map[string]Entry
	order   []string
}

// NewSite creates a site rooted at prefix, e.g. "/admin".
func NewSite(prefix string) *Site {
	return &Site{
		Header:  "Blog Admin",
		Prefix:  strings.TrimSuffix(prefix, "/"),
		entries: map[string]Entry{},
	}
}

// Register adds a model admin to the site.
func (s *Site) Register(e Entry) {
	key := e.AppLabel() + "_" + e.ModelName()
	if _, dup := s.entries[key]; dup {
		panic(fmt.Sprintf("admin: %s registered twice", key))
	}
	e.bind(s)
	s.entries[key] = e
	s.order = append(s.order, key)
}

// Get looks an admin up by app label and model name.
func (s *Site) Get(app, model string) (Entry, bool) {
	e, ok := s.entries[app+"_"+model]
	return e, ok
}

// Entries returns the registered admins in registration order.
func (s *Site) Entries() []Entry {
	out := make([]Entry, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.entries[key])
	}
	return out
}

// Reverse resolves a route name of the stable convention
// "<namespace>:<app>_<model>_<view>" to a URL. The change view takes
// the primary key as its argument:
//
//	Reverse("admin:users_user_change", 3)   -> /admin/users/user/3/change/
//	Reverse("admin:content_post_changelist") -> /admin/content/post/
func (s *Site) Reverse(route string, args ...any) string {
	_, name, ok := strings.Cut(route, ":")
	if !ok {
		name = route
	}
	parts := strings.SplitN(name, "_", 3)
	if len(parts) != 3 {
		panic(fmt.Sprintf("admin: malformed route name %q", route))
	}
	app, model, view := parts[0], parts[1], parts[2]
	base := fmt.Sprintf("%s/%s/%s/", s.Prefix, app, model)
	switch view {
	case "changelist":
		return base
	case "add":
		return base + "add/"
	case "change":
		if len(args) != 1 {
			panic(fmt.Sprintf("admin: route %q needs a primary key", route))
		}
		return fmt.Sprintf("%s%v/change/", base, args[0])
	default:
		panic(fmt.Sprintf("admin: unknown view %q in route %q", view, route))
	}
}
