package auth

const (
	FieldUsername = "username"
	FieldPassword = "password"
	FieldEmail    = "email"
)

type LoginPageData struct {
	Username string
	Error    string
}

type RegisterPageData struct {
	Username      string
	Email         string
	Error         string
	UsernameError string
	PasswordError string
	EmailError    string
}

// HasErrors reports whether any registration field was rejected.
func (d RegisterPageData) HasErrors() bool {
	return d.Error != "" || d.UsernameError != "" || d.PasswordError != "" || d.EmailError != ""
}
