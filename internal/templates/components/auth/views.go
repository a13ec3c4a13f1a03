package auth

import (
	"github.com/a-h/templ"

	"github.com/codr1/ScoreChallenge/internal/templates/markup"
)

func input(w *markup.Writer, kind, name, label, value, autocomplete, fieldError string) {
	w.Raw(`<div class="form-field"><label`)
	w.Attr("for", name)
	w.Raw(`>`)
	w.Text(label)
	w.Raw(`</label><input`)
	w.Attr("type", kind)
	w.Attr("id", name)
	w.Attr("name", name)
	w.Attr("autocomplete", autocomplete)
	if value != "" {
		w.Attr("value", value)
	}
	if fieldError != "" {
		w.Attr("aria-invalid", "true")
	}
	w.Raw(`>`)
	if fieldError != "" {
		w.Raw(`<p class="field-error">`)
		w.Text(fieldError)
		w.Raw(`</p>`)
	}
	w.Raw(`</div>`)
}

func formError(w *markup.Writer, message string) {
	if message == "" {
		return
	}
	w.Raw(`<div class="error-card" role="alert">`)
	w.Text(message)
	w.Raw(`</div>`)
}

func LoginPage(data LoginPageData) templ.Component {
	return markup.Component(func(w *markup.Writer) {
		w.Raw(`<section class="auth-page"><h1>Log in</h1><form method="post" action="/login" class="auth-form">`)
		input(w, "text", FieldUsername, "Username", data.Username, "username", "")
		input(w, "password", FieldPassword, "Password", "", "current-password", "")
		formError(w, data.Error)
		w.Raw(`<button type="submit" class="button-primary">Log in</button></form>`)
		w.Raw(`<p class="auth-switch">No account yet? <a href="/register">Sign up</a></p></section>`)
	})
}

func RegisterPage(data RegisterPageData) templ.Component {
	return markup.Component(func(w *markup.Writer) {
		w.Raw(`<section class="auth-page"><h1>Sign up</h1><form method="post" action="/register" class="auth-form">`)
		input(w, "text", FieldUsername, "Username", data.Username, "username", data.UsernameError)
		input(w, "email", FieldEmail, "Email (optional, for match reminders)", data.Email, "email", data.EmailError)
		input(w, "password", FieldPassword, "Password", "", "new-password", data.PasswordError)
		formError(w, data.Error)
		w.Raw(`<button type="submit" class="button-primary">Create account</button></form>`)
		w.Raw(`<p class="auth-switch">Already registered? <a href="/login">Log in</a></p></section>`)
	})
}
