package view

// Checker verifies the admin password.
type Checker interface {
	Check(password string) error
}

// Guard is the admin authenticated flag.
type Guard struct {
	authenticated bool
}

func RestoreGuard(authenticated bool) Guard { return Guard{authenticated: authenticated} }

func (g *Guard) Authenticated() bool { return g.authenticated }

func (g *Guard) Login(c Checker, password string) error {
	if err := c.Check(password); err != nil {
		return err
	}
	g.authenticated = true
	return nil
}

func (g *Guard) Logout() { g.authenticated = false }
