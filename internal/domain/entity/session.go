package entity

// Session banderas de sesión persistidas localmente tras el login remoto.
type Session struct {
	LoggedIn bool
	UserName string
	Email    string
}
