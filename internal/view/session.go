package view

import (
	"handmade/internal/services"
)

const (
	LoginFailedMessage = "Incorrect password. Please try again."
	LoggedOutNotice    = "You have been logged out."
)

// Session bundles everything one browser session remembers between
// requests. None of it reaches the data backend.
type Session struct {
	Nav   Navigator
	Guard Guard

	Category       string
	InquiryFor     string // product id whose inquiry modal is open
	AddProductOpen bool
	PendingDelete  string // product id awaiting confirmation

	Notice   string // shown once, then cleared
	LoginErr string // inline error on the login screen
}

func NewSession() *Session {
	return &Session{Nav: NewNavigator(), Category: services.AllCategories}
}

// Home, Browse and Admin are the header navigation. Leaving a screen drops
// any delete that was waiting for an answer.
func (s *Session) Home() {
	s.PendingDelete = ""
	s.Nav.Home()
}

func (s *Session) Browse() {
	s.PendingDelete = ""
	s.Nav.Browse()
}

func (s *Session) Admin() {
	s.PendingDelete = ""
	s.Nav.Admin(s.Guard.Authenticated())
}

// Login opens the gate and, from the login screen, moves to the dashboard.
// A wrong password leaves everything as it was and records an inline error.
func (s *Session) Login(c Checker, password string) bool {
	if err := s.Guard.Login(c, password); err != nil {
		s.LoginErr = LoginFailedMessage
		return false
	}
	s.LoginErr = ""
	s.Nav.LoginSucceeded()
	return true
}

func (s *Session) Logout() {
	s.Guard.Logout()
	s.Nav.LoggedOut()
	s.AddProductOpen = false
	s.PendingDelete = ""
	s.LoginErr = ""
	s.Notice = LoggedOutNotice
}

// OpenInquiry shows the inquiry modal for one product card.
func (s *Session) OpenInquiry(productID string) { s.InquiryFor = productID }

func (s *Session) CloseInquiry() { s.InquiryFor = "" }

func (s *Session) SetCategory(c string) {
	if c == "" {
		c = services.AllCategories
	}
	s.Category = c
}

// Flash returns the pending notice and login error and clears both.
func (s *Session) Flash() (notice, loginErr string) {
	notice, loginErr = s.Notice, s.LoginErr
	s.Notice, s.LoginErr = "", ""
	return notice, loginErr
}

// View is the screen to render. The dashboard is never shown to an
// unauthenticated session.
func (s *Session) View() Name {
	v := s.Nav.Current()
	if v == AdminDashboard && !s.Guard.Authenticated() {
		return AdminLogin
	}
	return v
}
