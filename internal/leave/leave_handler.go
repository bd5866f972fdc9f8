package leave

import (
	"net/http"
	"strconv"
	"strings"

	"go-leave/internal/document"
	"go-leave/internal/domain"
	"go-leave/internal/middleware"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const documentField = "document"

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func actorFromContext(c *gin.Context) Actor {
	return Actor{
		EmployeeID: c.GetString(middleware.ContextEmployeeID),
		Role:       domain.Role(c.GetString(middleware.ContextRole)),
	}
}

// Create accepts either a JSON body or a multipart form carrying an optional
// supporting document in the "document" field.
func (h *Handler) Create(c *gin.Context) {
	actor := actorFromContext(c)
	h.logger.Debug("http create leave", zap.String("actor_id", actor.EmployeeID))

	var (
		req CreateLeaveRequest
		doc *document.Upload
	)
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBind(&req); err != nil {
			h.logger.Warn("http create leave validation failed", zap.Error(err))
			h.writeServiceError(c, apperror.MapValidationError(err))
			return
		}
		fileHeader, err := c.FormFile(documentField)
		if err != nil && err != http.ErrMissingFile {
			h.writeServiceError(c, apperror.InvalidField(documentField))
			return
		}
		if fileHeader != nil {
			file, err := fileHeader.Open()
			if err != nil {
				h.writeServiceError(c, apperror.InvalidField(documentField))
				return
			}
			defer file.Close()
			doc = &document.Upload{
				Filename: fileHeader.Filename,
				Size:     fileHeader.Size,
				Content:  file,
			}
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create leave validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.CreateLeaveRequest(c.Request.Context(), actor, req, doc)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	h.logger.Debug("http get all leaves", zap.Int("page", page), zap.Int("page_size", pageSize))

	resp, total, err := h.service.GetAllLeavesSorted(c.Request.Context(), page, pageSize)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) GetPending(c *gin.Context) {
	h.logger.Debug("http get pending leaves")
	resp, err := h.service.GetPendingLeaves(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetMine(c *gin.Context) {
	h.getEmployeeLeaves(c, actorFromContext(c).EmployeeID)
}

func (h *Handler) GetByEmployee(c *gin.Context) {
	h.getEmployeeLeaves(c, c.Param("id"))
}

func (h *Handler) getEmployeeLeaves(c *gin.Context, employeeID string) {
	h.logger.Debug("http get employee leaves", zap.String("employee_id", employeeID))
	resp, err := h.service.GetEmployeeLeaves(c.Request.Context(), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetMyBalances(c *gin.Context) {
	h.getBalances(c, actorFromContext(c).EmployeeID)
}

func (h *Handler) GetEmployeeBalances(c *gin.Context) {
	h.getBalances(c, c.Param("id"))
}

func (h *Handler) getBalances(c *gin.Context, employeeID string) {
	h.logger.Debug("http get leave balances", zap.String("employee_id", employeeID))
	resp, err := h.service.GetLeaveBalances(c.Request.Context(), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	id := c.Param("id")
	h.logger.Debug("http get leave by id", zap.String("leave_id", id))

	resp, err := h.service.GetLeaveByID(c.Request.Context(), actorFromContext(c), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")
	h.logger.Debug("http update leave status", zap.String("leave_id", id))

	var req UpdateLeaveStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update leave status validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.UpdateLeaveStatus(c.Request.Context(), actorFromContext(c), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Cancel(c *gin.Context) {
	id := c.Param("id")
	h.logger.Debug("http cancel leave", zap.String("leave_id", id))

	resp, err := h.service.CancelLeaveRequest(c.Request.Context(), actorFromContext(c), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
