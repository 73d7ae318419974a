package templates

import (
	"bytes"
	"fmt"
	htmpl "html/template"
	texttpl "text/template"
)

// Template names carried in EmailJob.Template.
const (
	LoginNotification = "login_notification"
	Welcome           = "welcome"
)

type emailTemplate struct {
	subject string
	text    string
	html    string
}

var registry = map[string]emailTemplate{
	LoginNotification: {
		subject: "New login to your account",
		text: "Hi {{.UserName}},\n\n" +
			"Your account was just used to sign in.\n\n" +
			"Time: {{.Time}}\nBrowser: {{.UserAgent}}\n\n" +
			"If this was not you, change your password immediately.\n",
		html: "<p>Hi {{.UserName}},</p>" +
			"<p>Your account was just used to sign in.</p>" +
			"<p>Time: {{.Time}}<br>Browser: {{.UserAgent}}</p>" +
			"<p>If this was not you, change your password immediately.</p>",
	},
	Welcome: {
		subject: "Welcome to Bloggramm",
		text: "Hi {{.UserName}},\n\n" +
			"Your account was created. Happy blogging!\n",
		html: "<p>Hi {{.UserName}},</p>" +
			"<p>Your account was created. Happy blogging!</p>",
	},
}

// Render produces subject, text, and html bodies for the named template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	t, ok := registry[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
	text, err = renderText(name+".text", t.text, data)
	if err != nil {
		return "", "", "", err
	}
	html, err = renderHTML(name+".html", t.html, data)
	if err != nil {
		return "", "", "", err
	}
	return t.subject, text, html, nil
}

func renderText(name, body string, data map[string]any) (string, error) {
	tpl, err := texttpl.New(name).Parse(body)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("exec %q: %w", name, err)
	}
	return buf.String(), nil
}

func renderHTML(name, body string, data map[string]any) (string, error) {
	tpl, err := htmpl.New(name).Parse(body)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("exec %q: %w", name, err)
	}
	return buf.String(), nil
}
