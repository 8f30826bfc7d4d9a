package controllers

import (
	"html/template"
	"net/http"

	"gitea.com/go-chi/session"
	"github.com/JayL96/user-management/models"
	"github.com/JayL96/user-management/services"
	"github.com/JayL96/user-management/templates"
	"github.com/JayL96/user-management/workflows"
)

// renderTemplate creates a template set and renders it with the provided data
func renderTemplate(w http.ResponseWriter, templateName string, pageTemplate string, data interface{}) error {
	return renderTemplateWithStatus(w, http.StatusOK, templateName, pageTemplate, data)
}

// renderTemplateWithStatus creates a template set and renders it with the provided data and status code
func renderTemplateWithStatus(w http.ResponseWriter, statusCode int, templateName string, pageTemplate string, data interface{}) error {
	tmpl := template.New(templateName)
	tmpl.Funcs(template.FuncMap{
		"add":            func(a, b int) int { return a + b },
		"sub":            func(a, b int) int { return a - b },
		"formatDate":     models.FormatDate,
		"formatDateTime": models.FormatDateTime,
	})

	// Parse layout and page template from the embedded set
	_, err := tmpl.ParseFS(templates.FS, "layout.html", pageTemplate)
	if err != nil {
		http.Error(w, "Failed to parse template: "+err.Error(), http.StatusInternalServerError)
		return err
	}

	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}

	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
		return err
	}

	return nil
}

// setFlash stores a one-shot success message in the session
func setFlash(r *http.Request, message string) {
	if sess := session.GetSession(r); sess != nil {
		sess.Set("flash_success", message)
	}
}

// popFlash retrieves and clears the flash message, if any
func popFlash(r *http.Request) string {
	sess := session.GetSession(r)
	if sess == nil {
		return ""
	}
	msg, _ := sess.Get("flash_success").(string)
	if msg != "" {
		sess.Delete("flash_success")
	}
	return msg
}

// Controllers holds all controller instances
type Controllers struct {
	Auth  *AuthController
	Users *UsersController
	Logs  *LogsController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services, userWorkflows *workflows.UserWorkflows) *Controllers {
	return &Controllers{
		Auth:  NewAuthController(),
		Users: NewUsersController(services, userWorkflows),
		Logs:  NewLogsController(services),
	}
}
