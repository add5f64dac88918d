package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/sportsday/sportsday/internal/model"
)

// FlashMessage is a one-shot notice shown on the next rendered page
type FlashMessage struct {
	Type    string // "success", "error" or "info"
	Message string
}

// PageData carries the chrome shared by every page
type PageData struct {
	Title string
	Flash *FlashMessage
	User  *model.User
}

// page wraps a body component in the shared document chrome: head, nav
// and flash banner.
func page(data PageData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>%s - Sportsday</title></head><body>`,
			templ.EscapeString(data.Title)); err != nil {
			return err
		}
		if err := nav(data.User).Render(ctx, w); err != nil {
			return err
		}
		if data.Flash != nil {
			if _, err := fmt.Fprintf(w,
				`<div class="flash flash-%s" role="status">%s</div>`,
				templ.EscapeString(data.Flash.Type),
				templ.EscapeString(data.Flash.Message)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `<main>`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

func nav(user *model.User) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<nav><a href="/">Sportsday</a>`); err != nil {
			return err
		}
		if user != nil {
			dashboard := "/player-dashboard"
			if user.IsAdmin() {
				dashboard = "/admin-dashboard"
			}
			if _, err := fmt.Fprintf(w,
				`<a href="%s">Dashboard</a><a href="/reports">Reports</a><span class="nav-user">%s</span><a href="/logout">Logout</a>`,
				dashboard,
				templ.EscapeString(user.Name)); err != nil {
				return err
			}
		} else {
			if _, err := io.WriteString(w,
				`<a href="/login">Login</a><a href="/register">Register</a>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</nav>`)
		return err
	})
}
