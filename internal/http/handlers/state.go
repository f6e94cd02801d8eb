package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"handmade/internal/view"
)

// Session keys. Values are plain strings and bools so any fiber.Storage
// can hold them.
const (
	keyView          = "view"
	keyAuth          = "auth"
	keyCategory      = "category"
	keyInquiry       = "inquiry"
	keyAddOpen       = "add_open"
	keyPendingDelete = "pending_delete"
	keyNotice        = "notice"
	keyLoginErr      = "login_err"
)

// StateStore keeps each browser's view.Session in the fiber session.
type StateStore struct {
	Sessions *session.Store
}

func (s *StateStore) Load(c *fiber.Ctx) (*view.Session, *session.Session, error) {
	sess, err := s.Sessions.Get(c)
	if err != nil {
		return nil, nil, err
	}
	st := view.NewSession()
	if v, ok := sess.Get(keyView).(string); ok {
		st.Nav = view.Restore(view.Name(v))
	}
	if v, ok := sess.Get(keyAuth).(bool); ok {
		st.Guard = view.RestoreGuard(v)
	}
	if v, ok := sess.Get(keyCategory).(string); ok {
		st.SetCategory(v)
	}
	st.InquiryFor, _ = sess.Get(keyInquiry).(string)
	st.AddProductOpen, _ = sess.Get(keyAddOpen).(bool)
	st.PendingDelete, _ = sess.Get(keyPendingDelete).(string)
	st.Notice, _ = sess.Get(keyNotice).(string)
	st.LoginErr, _ = sess.Get(keyLoginErr).(string)
	return st, sess, nil
}

func (s *StateStore) Save(sess *session.Session, st *view.Session) error {
	sess.Set(keyView, string(st.Nav.Current()))
	sess.Set(keyAuth, st.Guard.Authenticated())
	sess.Set(keyCategory, st.Category)
	sess.Set(keyInquiry, st.InquiryFor)
	sess.Set(keyAddOpen, st.AddProductOpen)
	sess.Set(keyPendingDelete, st.PendingDelete)
	sess.Set(keyNotice, st.Notice)
	sess.Set(keyLoginErr, st.LoginErr)
	return sess.Save()
}

// Update loads the session, applies fn, saves, and sends the browser back
// to "/" which renders whatever view fn left selected.
func (s *StateStore) Update(fn func(c *fiber.Ctx, st *view.Session) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, sess, err := s.Load(c)
		if err != nil {
			return err
		}
		if err := fn(c, st); err != nil {
			return err
		}
		if err := s.Save(sess, st); err != nil {
			return err
		}
		return c.Redirect("/")
	}
}

// Authenticated reports the admin flag without touching anything else.
func (s *StateStore) Authenticated(c *fiber.Ctx) bool {
	sess, err := s.Sessions.Get(c)
	if err != nil {
		return false
	}
	ok, _ := sess.Get(keyAuth).(bool)
	return ok
}
