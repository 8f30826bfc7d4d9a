package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/JayL96/user-management/models"
	"github.com/JayL96/user-management/services"
	"github.com/go-chi/chi/v5"
)

// DefaultLogPageSize is used when the request carries no usable pageSize
const DefaultLogPageSize = 20

// LogsController handles audit log requests. The log is read-only from the
// web: entries are only ever written by the user workflows.
type LogsController struct {
	services *services.Services
}

// NewLogsController creates a new logs controller
func NewLogsController(services *services.Services) *LogsController {
	return &LogsController{services: services}
}

// LogsListViewModel shapes the paged audit log listing
type LogsListViewModel struct {
	Items []models.LogEntry

	// filters
	Action     *models.LogAction
	ActionName string
	Search     string

	// paging
	Page     int
	PageSize int
	Total    int
}

// TotalPages is ceil(Total/PageSize), never less than 1 so the pager always
// has a current page to stand on
func (m *LogsListViewModel) TotalPages() int {
	if m.Total <= 0 {
		return 1
	}
	return (m.Total + m.PageSize - 1) / m.PageSize
}

func (m *LogsListViewModel) HasPrev() bool {
	return m.Page > 1
}

func (m *LogsListViewModel) HasNext() bool {
	return m.Page < m.TotalPages()
}

// Index handles GET /logs?page&pageSize&action&search
func (c *LogsController) Index(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page := positiveIntParam(query.Get("page"), 1)
	pageSize := positiveIntParam(query.Get("pageSize"), DefaultLogPageSize)
	search := query.Get("search")

	var action *models.LogAction
	var actionName string
	if a, ok := models.ParseLogAction(query.Get("action")); ok {
		action = &a
		actionName = a.String()
	}

	items, err := c.services.Logs.ListPaged(r.Context(), page, pageSize, action, search)
	if err != nil {
		http.Error(w, "Failed to load audit log: "+err.Error(), http.StatusInternalServerError)
		return
	}

	total, err := c.services.Logs.Count(r.Context(), action, search)
	if err != nil {
		http.Error(w, "Failed to count audit log: "+err.Error(), http.StatusInternalServerError)
		return
	}

	model := &LogsListViewModel{
		Items:      items,
		Action:     action,
		ActionName: actionName,
		Search:     search,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
	}

	templateData := struct {
		Title       string
		CurrentPage string
		Model       *LogsListViewModel
	}{
		Title:       "Audit Log",
		CurrentPage: "logs",
		Model:       model,
	}

	renderTemplate(w, "logs", "logs.html", templateData)
}

// Details handles GET /logs/{id}
func (c *LogsController) Details(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid log entry ID", http.StatusBadRequest)
		return
	}

	entry, err := c.services.Logs.GetByID(r.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		http.Error(w, "Log entry not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to load log entry: "+err.Error(), http.StatusInternalServerError)
		return
	}

	templateData := struct {
		Title       string
		CurrentPage string
		Entry       *models.LogEntry
	}{
		Title:       "Log Entry",
		CurrentPage: "logs",
		Entry:       entry,
	}

	renderTemplate(w, "log_view", "log_view.html", templateData)
}

// positiveIntParam parses a positive integer query value, falling back to a
// default for anything missing, malformed, or non-positive
func positiveIntParam(value string, fallback int) int {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
