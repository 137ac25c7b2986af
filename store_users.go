package console

const msgUsersFetchFailed = "Failed to fetch users"

// UserStore backs the admin user management screens.
type UserStore struct {
	*Store[User]
}

func NewUserStore(opts ...StoreOption[User]) *UserStore {
	handlers := StoreHandlers[User]{
		GetID: func(u User) int64 { return u.ID },
		SetID: func(u *User, id int64) { u.ID = id },
	}
	return &UserStore{Store: NewStore("users", msgUsersFetchFailed, handlers, opts...)}
}

// ByRole is a read only view of users holding role.
func (s *UserStore) ByRole(role Role) []User {
	return s.Filter(func(u User) bool { return u.Role == role })
}

// Active is a read only view of active users.
func (s *UserStore) Active() []User {
	return s.Filter(func(u User) bool { return u.Active })
}
