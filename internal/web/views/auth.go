package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// LoginData holds data for the login page
type LoginData struct {
	PageData
	Email string
	Error string
}

// Login renders the login form
func Login(data LoginData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Login</h1>`); err != nil {
			return err
		}
		if data.Error != "" {
			if _, err := fmt.Fprintf(w, `<p class="error">%s</p>`, templ.EscapeString(data.Error)); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w,
			`<form action="/login" method="post">`+
				`<label>Email <input type="email" name="email" value="%s" required></label>`+
				`<label>Password <input type="password" name="password" required></label>`+
				`<button type="submit">Login</button>`+
				`</form>`+
				`<p>No account? <a href="/register">Register</a></p>`,
			templ.EscapeString(data.Email))
		return err
	})
	return page(data.PageData, body)
}

// RegisterData holds data for the registration page
type RegisterData struct {
	PageData
	Name        string
	Email       string
	Role        string
	Error       string
	FieldErrors map[string]string
}

// Register renders the registration form
func Register(data RegisterData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Register</h1>`); err != nil {
			return err
		}
		if data.Error != "" {
			if _, err := fmt.Fprintf(w, `<p class="error">%s</p>`, templ.EscapeString(data.Error)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `<form action="/register" method="post">`); err != nil {
			return err
		}
		if err := textField(w, "Name", "name", "text", data.Name, data.FieldErrors); err != nil {
			return err
		}
		if err := textField(w, "Email", "email", "email", data.Email, data.FieldErrors); err != nil {
			return err
		}
		if err := textField(w, "Password", "password", "password", "", data.FieldErrors); err != nil {
			return err
		}
		if err := roleSelect(w, data.Role, data.FieldErrors); err != nil {
			return err
		}
		_, err := io.WriteString(w,
			`<button type="submit">Register</button></form>`+
				`<p>Already registered? <a href="/login">Login</a></p>`)
		return err
	})
	return page(data.PageData, body)
}

func textField(w io.Writer, label, name, inputType, value string, fieldErrors map[string]string) error {
	if _, err := fmt.Fprintf(w,
		`<label>%s <input type="%s" name="%s" value="%s" required></label>`,
		templ.EscapeString(label), inputType, name, templ.EscapeString(value)); err != nil {
		return err
	}
	return fieldError(w, name, fieldErrors)
}

func roleSelect(w io.Writer, selected string, fieldErrors map[string]string) error {
	if _, err := io.WriteString(w, `<label>Role <select name="role">`); err != nil {
		return err
	}
	for _, role := range []string{"player", "admin"} {
		attr := ""
		if role == selected {
			attr = " selected"
		}
		if _, err := fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, role, attr, role); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, `</select></label>`); err != nil {
		return err
	}
	return fieldError(w, "role", fieldErrors)
}

func fieldError(w io.Writer, name string, fieldErrors map[string]string) error {
	msg, ok := fieldErrors[name]
	if !ok {
		return nil
	}
	_, err := fmt.Fprintf(w, `<span class="field-error" data-field="%s">%s</span>`,
		name, templ.EscapeString(msg))
	return err
}
