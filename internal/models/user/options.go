package models

func WithUsername(username string) UserOption {
	return func(u *User) { u.Username = username }
}

func WithEmail(email string) UserOption {
	return func(u *User) { u.Email = email }
}

func WithPassword(password string) UserOption {
	return func(u *User) { u.Password = password }
}

func WithIsAdmin(admin bool) UserOption {
	return func(u *User) { u.IsAdmin = admin }
}

// Profile
func WithName(name string) UserOption {
	return func(u *User) { u.Profile.Name = name }
}

func WithBio(bio string) UserOption {
	return func(u *User) { u.Profile.Bio = bio }
}

func WithAvatarURL(url string) UserOption {
	return func(u *User) { u.Profile.AvatarURL = url }
}

func WithLocation(location string) UserOption {
	return func(u *User) { u.Profile.Location = location }
}
