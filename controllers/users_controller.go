package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/JayL96/user-management/models"
	"github.com/JayL96/user-management/services"
	"github.com/JayL96/user-management/workflows"
	"github.com/go-chi/chi/v5"
)

// UsersController handles user management requests
type UsersController struct {
	services  *services.Services
	workflows *workflows.UserWorkflows
}

// NewUsersController creates a new users controller
func NewUsersController(services *services.Services, userWorkflows *workflows.UserWorkflows) *UsersController {
	return &UsersController{
		services:  services,
		workflows: userWorkflows,
	}
}

// userPageData is the template payload shared by the user pages
type userPageData struct {
	Title       string
	CurrentPage string
	Errors      []string
	Success     string
	Filter      string
	Users       []models.User
	User        *models.User
	Form        *models.UserForm
	Logs        []models.LogEntry
}

// List handles GET /users. The filter selector recognizes "active" and
// "inactive" case-insensitively; anything else, including absence, lists
// everyone.
func (c *UsersController) List(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")

	var users []models.User
	var err error
	switch strings.ToLower(filter) {
	case "active":
		users, err = c.services.Users.FilterByActive(r.Context(), true)
	case "inactive":
		users, err = c.services.Users.FilterByActive(r.Context(), false)
	default:
		users, err = c.services.Users.GetAll(r.Context())
	}
	if err != nil {
		http.Error(w, "Failed to load users: "+err.Error(), http.StatusInternalServerError)
		return
	}

	renderTemplate(w, "users", "users.html", userPageData{
		Title:       "User Management",
		CurrentPage: "users",
		Success:     popFlash(r),
		Filter:      strings.ToLower(filter),
		Users:       users,
	})
}

// Create handles GET /users/create
func (c *UsersController) Create(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, "user_create", "user_form.html", userPageData{
		Title:       "Create User",
		CurrentPage: "users",
		Form:        &models.UserForm{IsActive: true},
	})
}

// CreateSubmit handles POST /users/create
func (c *UsersController) CreateSubmit(w http.ResponseWriter, r *http.Request) {
	form, ok := parseUserForm(w, r)
	if !ok {
		return
	}

	user, msgs, err := c.workflows.CreateUserAndLog(r.Context(), form)
	if err != nil {
		http.Error(w, "Failed to create user: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if len(msgs) > 0 {
		renderTemplateWithStatus(w, http.StatusBadRequest, "user_create_error", "user_form.html", userPageData{
			Title:       "Create User",
			CurrentPage: "users",
			Errors:      msgs,
			Form:        form,
		})
		return
	}

	setFlash(r, fmt.Sprintf("User %s created successfully!", user.FullName()))
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

// View handles GET /users/view/{id}. A successful fetch records a Viewed
// audit entry and shows the user's recent trail.
func (c *UsersController) View(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	user, logs, err := c.workflows.ViewUserAndLog(r.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to load user: "+err.Error(), http.StatusInternalServerError)
		return
	}

	renderTemplate(w, "user_view", "user_view.html", userPageData{
		Title:       "User Details",
		CurrentPage: "users",
		User:        user,
		Logs:        logs,
	})
}

// Edit handles GET /users/edit/{id}
func (c *UsersController) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	user, err := c.services.Users.GetByID(r.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to load user: "+err.Error(), http.StatusInternalServerError)
		return
	}

	renderTemplate(w, "user_edit", "user_edit.html", userPageData{
		Title:       "Edit User",
		CurrentPage: "users",
		User:        user,
		Form:        models.FormFromUser(user),
	})
}

// EditSubmit handles POST /users/edit/{id}
func (c *UsersController) EditSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	form, ok := parseUserForm(w, r)
	if !ok {
		return
	}

	msgs, err := c.workflows.UpdateUserAndLog(r.Context(), id, form)
	if err != nil {
		http.Error(w, "Failed to update user: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if len(msgs) > 0 {
		renderTemplateWithStatus(w, http.StatusBadRequest, "user_edit_error", "user_edit.html", userPageData{
			Title:       "Edit User",
			CurrentPage: "users",
			Errors:      msgs,
			User:        &models.User{ID: id},
			Form:        form,
		})
		return
	}

	setFlash(r, "User updated successfully!")
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

// Delete handles GET /users/delete/{id}, the confirmation page
func (c *UsersController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	user, err := c.services.Users.GetByID(r.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to load user: "+err.Error(), http.StatusInternalServerError)
		return
	}

	renderTemplate(w, "user_delete", "user_delete.html", userPageData{
		Title:       "Delete User",
		CurrentPage: "users",
		User:        user,
	})
}

// DeleteSubmit handles POST /users/delete/{id}. The deletion no-ops silently
// when the user is already gone; the Deleted audit entry is written either
// way.
func (c *UsersController) DeleteSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	if err := c.workflows.DeleteUserAndLog(r.Context(), id); err != nil {
		http.Error(w, "Failed to delete user: "+err.Error(), http.StatusInternalServerError)
		return
	}

	setFlash(r, "User deleted successfully!")
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

// userID extracts and parses the {id} route parameter
func userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// parseUserForm reads the submitted user fields. The active checkbox posts
// alongside a hidden field, so the last value wins when it is checked.
func parseUserForm(w http.ResponseWriter, r *http.Request) (*models.UserForm, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}

	activeValues := r.Form["is_active"]
	isActive := len(activeValues) > 0 && activeValues[len(activeValues)-1] == "on"

	return &models.UserForm{
		Forename:    r.FormValue("forename"),
		Surname:     r.FormValue("surname"),
		Email:       r.FormValue("email"),
		DateOfBirth: r.FormValue("date_of_birth"),
		IsActive:    isActive,
	}, true
}
