package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/MalditoKM/Asistent-Restaurant/internal/apierror"
	"github.com/MalditoKM/Asistent-Restaurant/internal/dto"
	"github.com/MalditoKM/Asistent-Restaurant/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReportsHandler struct {
	svc        service.ReportService
	storageDir string
}

func NewReportsHandler(svc service.ReportService, storageDir string) *ReportsHandler {
	return &ReportsHandler{svc: svc, storageDir: storageDir}
}

// EnqueueSales queues an async xlsx export of the caller's sales and returns
// the file name to poll for.
func (h *ReportsHandler) EnqueueSales(c *gin.Context) {
	var req dto.SalesReportRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.EnqueueSalesReport(c.Request.Context(), requestScope(c), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusAccepted, resp)
}

// Download streams a finished report. 404 while the worker is still writing.
// The tenant id embedded in the file name must fall inside the caller's
// resolved scope; out-of-scope names get the same 404 as missing files.
func (h *ReportsHandler) Download(c *gin.Context) {
	name := filepath.Base(c.Param("file"))
	owner, ok := reportOwner(name)
	if !ok {
		c.JSON(http.StatusBadRequest, apierror.New("invalid report file name"))
		return
	}
	scope := requestScope(c)
	if owner == nil {
		if !scope.All() {
			c.JSON(http.StatusNotFound, apierror.New("report not ready"))
			return
		}
	} else if !scope.Contains(*owner) {
		c.JSON(http.StatusNotFound, apierror.New("report not ready"))
		return
	}
	path := filepath.Join(h.storageDir, name)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, apierror.New("report not ready"))
		return
	}
	c.FileAttachment(path, name)
}

// reportOwner parses the restaurant segment out of a sales export name as
// produced by worker.FileNameFor. nil owner means an all-tenants export.
func reportOwner(name string) (*uuid.UUID, bool) {
	if !strings.HasPrefix(name, "sales-") || !strings.HasSuffix(name, ".xlsx") {
		return nil, false
	}
	core := strings.TrimSuffix(strings.TrimPrefix(name, "sales-"), ".xlsx")
	i := strings.LastIndex(core, "-")
	if i < 1 {
		return nil, false
	}
	scope := core[:i]
	if scope == "all" {
		return nil, true
	}
	id, err := uuid.Parse(scope)
	if err != nil {
		return nil, false
	}
	return &id, true
}
