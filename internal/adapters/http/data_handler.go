package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/core/internal/adapters/gateway"
	"github.com/todoapp/core/internal/ports"
)

// DataHandler handles whole-collection operations
type DataHandler struct {
	gateway *gateway.Gateway
}

// NewDataHandler creates a new data handler
func NewDataHandler(gw *gateway.Gateway) *DataHandler {
	return &DataHandler{gateway: gw}
}

// Export returns all tasks as a JSON string
// @Summary Export tasks
// @Tags data
// @Produce json
// @Success 200 {object} gateway.Response[string]
// @Router /api/v1/data/export [get]
func (h *DataHandler) Export(c echo.Context) error {
	return c.JSON(http.StatusOK, h.gateway.ExportData(c.Request().Context()))
}

// Import replaces the task collection
// @Summary Import tasks
// @Tags data
// @Accept json
// @Produce json
// @Param request body ports.ImportRequest true "Exported document"
// @Success 200 {object} gateway.Response[bool]
// @Router /api/v1/data/import [post]
func (h *DataHandler) Import(c echo.Context) error {
	var req ports.ImportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, gateway.Reject[bool](h.gateway, "import_data", gateway.MsgParseData, err))
	}
	return c.JSON(http.StatusOK, h.gateway.ImportData(c.Request().Context(), req.Data))
}

// Clear empties the task collection
// @Summary Delete every task
// @Tags data
// @Produce json
// @Success 200 {object} gateway.Response[bool]
// @Router /api/v1/data [delete]
func (h *DataHandler) Clear(c echo.Context) error {
	return c.JSON(http.StatusOK, h.gateway.ClearAllData(c.Request().Context()))
}

// DataDir returns the data directory path
// @Summary Data directory
// @Tags data
// @Produce json
// @Success 200 {object} gateway.Response[string]
// @Router /api/v1/data/dir [get]
func (h *DataHandler) DataDir(c echo.Context) error {
	return c.JSON(http.StatusOK, h.gateway.GetDataDirPath(c.Request().Context()))
}

// OpenFile opens an attachment with the system default application
// @Summary Open an attachment
// @Tags files
// @Accept json
// @Produce json
// @Param request body ports.OpenFileRequest true "Attachment to open"
// @Success 200 {object} gateway.Response[bool]
// @Router /api/v1/files/open [post]
func (h *DataHandler) OpenFile(c echo.Context) error {
	var req ports.OpenFileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, gateway.Reject[bool](h.gateway, "open_file_with_system", gateway.MsgOpenFile, err))
	}
	return c.JSON(http.StatusOK, h.gateway.OpenFileWithSystem(c.Request().Context(), req))
}
