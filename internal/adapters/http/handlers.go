package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/core/internal/adapters/gateway"
	"github.com/todoapp/core/internal/domain/entities"
	"github.com/todoapp/core/internal/ports"
)

// Every handler answers 200 with the gateway envelope. Failures are reported
// inside the envelope, never as an HTTP status.

// TaskHandler handles task-related requests
type TaskHandler struct {
	gateway *gateway.Gateway
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(gw *gateway.Gateway) *TaskHandler {
	return &TaskHandler{gateway: gw}
}

// ListTasks returns every task, or a filtered view when filter, q or sorted is given
// @Summary List tasks
// @Tags tasks
// @Produce json
// @Param filter query string false "all, pending, completed, today or overdue"
// @Param q query string false "Text to search in title or description"
// @Param sorted query bool false "Pending first, then priority, then newest"
// @Success 200 {object} gateway.Response[[]entities.Task]
// @Router /api/v1/tasks [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	ctx := c.Request().Context()
	params := c.QueryParams()
	if !params.Has("filter") && !params.Has("q") && !params.Has("sorted") {
		return c.JSON(http.StatusOK, h.gateway.GetTasks(ctx))
	}

	var query ports.TaskQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &query); err != nil {
		return c.JSON(http.StatusOK, gateway.Reject[[]entities.Task](h.gateway, "query_tasks", gateway.MsgQueryTasks, err))
	}
	return c.JSON(http.StatusOK, h.gateway.QueryTasks(ctx, query))
}

// CreateTask handles task creation
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body ports.CreateTaskRequest true "Task data"
// @Success 200 {object} gateway.Response[entities.Task]
// @Router /api/v1/tasks [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req ports.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, gateway.Reject[entities.Task](h.gateway, "create_task", gateway.MsgCreateTask, err))
	}
	return c.JSON(http.StatusOK, h.gateway.CreateTask(c.Request().Context(), req))
}

// UpdateTask handles partial task updates
// @Summary Update a task
// @Description An unknown id succeeds with null data
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body ports.UpdateTaskRequest true "Fields to change"
// @Success 200 {object} gateway.Response[entities.Task]
// @Router /api/v1/tasks/{id} [patch]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	var req ports.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, gateway.Reject[entities.Task](h.gateway, "update_task", gateway.MsgUpdateTask, err))
	}
	return c.JSON(http.StatusOK, h.gateway.UpdateTask(c.Request().Context(), c.Param("id"), req))
}

// DeleteTask handles task deletion
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} gateway.Response[bool]
// @Router /api/v1/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	return c.JSON(http.StatusOK, h.gateway.DeleteTask(c.Request().Context(), c.Param("id")))
}

// GetStats returns the task statistics
// @Summary Task statistics
// @Tags tasks
// @Produce json
// @Success 200 {object} gateway.Response[entities.TaskStats]
// @Router /api/v1/tasks/stats [get]
func (h *TaskHandler) GetStats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.gateway.GetTaskStats(c.Request().Context()))
}

// SettingsHandler handles the settings document
type SettingsHandler struct {
	gateway *gateway.Gateway
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(gw *gateway.Gateway) *SettingsHandler {
	return &SettingsHandler{gateway: gw}
}

// GetSettings returns the current settings
// @Summary Current settings
// @Tags settings
// @Produce json
// @Success 200 {object} gateway.Response[entities.Settings]
// @Router /api/v1/settings [get]
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	return c.JSON(http.StatusOK, h.gateway.GetSettings(c.Request().Context()))
}

// UpdateSettings replaces the settings. Fields missing from the body keep
// their default values.
// @Summary Replace the settings
// @Tags settings
// @Accept json
// @Produce json
// @Param request body entities.Settings true "Settings"
// @Success 200 {object} gateway.Response[entities.Settings]
// @Router /api/v1/settings [put]
func (h *SettingsHandler) UpdateSettings(c echo.Context) error {
	settings := entities.DefaultSettings()
	if err := c.Bind(&settings); err != nil {
		return c.JSON(http.StatusOK, gateway.Reject[entities.Settings](h.gateway, "update_settings", gateway.MsgSaveSettings, err))
	}
	return c.JSON(http.StatusOK, h.gateway.UpdateSettings(c.Request().Context(), settings))
}
