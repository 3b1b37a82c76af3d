// Package nav computes the visible navigation tree from the current
// role set. Pure configuration: pages a role cannot see are also gated
// at the router, this only decides what the menu renders.
package nav

import "qualifaize-web/internal/model"

type Item struct {
	Title string
	Path  string
}

type Group struct {
	Title string
	Items []Item
}

var (
	signIn         = Item{Title: "Sign In", Path: "/signin"}
	signOut        = Item{Title: "Sign Out", Path: "/signout"}
	accountDetails = Item{Title: "Account Details", Path: "/account"}
	home           = Item{Title: "Home", Path: "/"}
	interviewPage  = Item{Title: "Interview", Path: "/interview"}
	historyPage    = Item{Title: "History", Path: "/history"}
	documentAdmin  = Item{Title: "Document Management", Path: "/documents"}
	userAdmin      = Item{Title: "User Management", Path: "/users"}
)

// ForRoles builds the menu for the given identity. An unauthenticated
// visitor gets the sign-in set; GUEST adds account pages, USER the
// interview pages, ADMIN the management pages.
func ForRoles(authenticated bool, roles []string) []Group {
	if !authenticated {
		return []Group{
			{Title: "Account", Items: []Item{signIn}},
			{Title: "Home", Items: []Item{home}},
		}
	}

	groups := []Group{
		{Title: "Account", Items: []Item{signOut, accountDetails}},
		{Title: "Home", Items: []Item{home}},
	}

	if hasRole(roles, model.RoleUser) || hasRole(roles, model.RoleAdmin) {
		groups[1].Items = append(groups[1].Items, interviewPage, historyPage)
	}

	if hasRole(roles, model.RoleAdmin) {
		groups = append(groups, Group{Title: "Management", Items: []Item{documentAdmin, userAdmin}})
	}

	return groups
}

func hasRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
