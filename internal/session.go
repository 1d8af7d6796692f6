package internal

type User struct {
	ID      int64
	Name    string
	Email   string
	Picture string
}

// Session is the explicit context every authenticated call runs under. It is
// created at login, persisted locally, and torn down at logout; nothing else
// carries the current user.
type Session struct {
	User  User
	Token string
}

func (s *Session) UserID() int64 {
	if s == nil {
		return 0
	}
	return s.User.ID
}
