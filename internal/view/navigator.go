// Package view holds the per-session screen state: which view is showing,
// whether the admin gate is open, and the transient form and modal flags.
package view

// Name identifies a top-level screen.
type Name string

const (
	Home           Name = "home"
	Catalog        Name = "catalog"
	AdminLogin     Name = "admin-login"
	AdminDashboard Name = "admin-dashboard"
)

func (n Name) Valid() bool {
	switch n {
	case Home, Catalog, AdminLogin, AdminDashboard:
		return true
	}
	return false
}

// Navigator is a single-value state machine with no history.
type Navigator struct {
	current Name
}

func NewNavigator() Navigator { return Navigator{current: Home} }

// Restore resumes at n; unknown values fall back to home.
func Restore(n Name) Navigator {
	if !n.Valid() {
		return NewNavigator()
	}
	return Navigator{current: n}
}

func (n *Navigator) Current() Name {
	if n.current == "" {
		return Home
	}
	return n.current
}

func (n *Navigator) Home() { n.current = Home }

func (n *Navigator) Browse() { n.current = Catalog }

// Admin opens the dashboard when authenticated and the login screen otherwise.
func (n *Navigator) Admin(authenticated bool) {
	if authenticated {
		n.current = AdminDashboard
		return
	}
	n.current = AdminLogin
}

// LoginSucceeded moves from the login screen to the dashboard; from any
// other view it leaves the current screen alone.
func (n *Navigator) LoginSucceeded() {
	if n.Current() == AdminLogin {
		n.current = AdminDashboard
	}
}

func (n *Navigator) LoggedOut() { n.current = Home }
