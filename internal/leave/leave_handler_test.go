package leave_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-leave/internal/document"
	"go-leave/internal/domain"
	"go-leave/internal/leave"
	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	createFn     func(ctx context.Context, actor leave.Actor, req leave.CreateLeaveRequest, doc *document.Upload) (leave.LeaveResponse, error)
	updateFn     func(ctx context.Context, actor leave.Actor, id string, req leave.UpdateLeaveStatusRequest) (leave.LeaveResponse, error)
	cancelFn     func(ctx context.Context, actor leave.Actor, id string) (leave.LeaveResponse, error)
	byEmployeeFn func(ctx context.Context, employeeID string) ([]leave.LeaveResponse, error)
	pendingFn    func(ctx context.Context) ([]leave.LeaveResponse, error)
	byIDFn       func(ctx context.Context, actor leave.Actor, id string) (leave.LeaveResponse, error)
	allFn        func(ctx context.Context, page, pageSize int) ([]leave.LeaveResponse, int64, error)
	balancesFn   func(ctx context.Context, employeeID string) ([]leave.LeaveBalanceResponse, error)
}

func (f *fakeService) CreateLeaveRequest(ctx context.Context, actor leave.Actor, req leave.CreateLeaveRequest, doc *document.Upload) (leave.LeaveResponse, error) {
	return f.createFn(ctx, actor, req, doc)
}

func (f *fakeService) UpdateLeaveStatus(ctx context.Context, actor leave.Actor, id string, req leave.UpdateLeaveStatusRequest) (leave.LeaveResponse, error) {
	return f.updateFn(ctx, actor, id, req)
}

func (f *fakeService) CancelLeaveRequest(ctx context.Context, actor leave.Actor, id string) (leave.LeaveResponse, error) {
	return f.cancelFn(ctx, actor, id)
}

func (f *fakeService) GetEmployeeLeaves(ctx context.Context, employeeID string) ([]leave.LeaveResponse, error) {
	return f.byEmployeeFn(ctx, employeeID)
}

func (f *fakeService) GetPendingLeaves(ctx context.Context) ([]leave.LeaveResponse, error) {
	return f.pendingFn(ctx)
}

func (f *fakeService) GetLeaveByID(ctx context.Context, actor leave.Actor, id string) (leave.LeaveResponse, error) {
	return f.byIDFn(ctx, actor, id)
}

func (f *fakeService) GetAllLeavesSorted(ctx context.Context, page, pageSize int) ([]leave.LeaveResponse, int64, error) {
	return f.allFn(ctx, page, pageSize)
}

func (f *fakeService) GetLeaveBalances(ctx context.Context, employeeID string) ([]leave.LeaveBalanceResponse, error) {
	return f.balancesFn(ctx, employeeID)
}

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  map[string]any  `json:"meta"`
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

const (
	testEmployeeID = "7f1f4c2e-8a52-4c64-9f2a-0d4c1f6f0a11"
	testLeaveID    = "0b7c9f6e-3d1a-4f38-9e0b-5c2d8a4b7e21"
)

func newTestRouter(svc leave.Service, role domain.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := leave.NewHandler(svc)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextEmployeeID, testEmployeeID)
		c.Set(middleware.ContextRole, string(role))
		c.Next()
	})
	r.POST("/leaves", h.Create)
	r.GET("/leaves", h.GetAll)
	r.GET("/leaves/pending", h.GetPending)
	r.GET("/leaves/me", h.GetMine)
	r.GET("/leaves/balances", h.GetMyBalances)
	r.GET("/leaves/:id", h.GetByID)
	r.PUT("/leaves/:id/status", h.UpdateStatus)
	r.POST("/leaves/:id/cancel", h.Cancel)
	r.GET("/employees/:id/leaves", h.GetByEmployee)
	r.GET("/employees/:id/balances", h.GetEmployeeBalances)
	return r
}

func TestHandler_Create(t *testing.T) {
	t.Run("success - json body", func(t *testing.T) {
		var gotActor leave.Actor
		router := newTestRouter(&fakeService{
			createFn: func(ctx context.Context, actor leave.Actor, req leave.CreateLeaveRequest, doc *document.Upload) (leave.LeaveResponse, error) {
				gotActor = actor
				assert.Nil(t, doc)
				assert.Equal(t, "PTO", req.LeaveType)
				return leave.LeaveResponse{ID: testLeaveID, Status: "PENDING", NumberOfDays: 3}, nil
			},
		}, domain.RoleEmployee)

		body := `{"leave_type":"PTO","start_date":"2024-03-20","end_date":"2024-03-22","reason":"family trip"}`
		req := httptest.NewRequest(http.MethodPost, "/leaves", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w)
		assert.True(t, env.Ok)
		var data leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, 3, data.NumberOfDays)
		assert.Equal(t, testEmployeeID, gotActor.EmployeeID)
		assert.Equal(t, domain.RoleEmployee, gotActor.Role)
	})

	t.Run("success - multipart with document", func(t *testing.T) {
		router := newTestRouter(&fakeService{
			createFn: func(ctx context.Context, actor leave.Actor, req leave.CreateLeaveRequest, doc *document.Upload) (leave.LeaveResponse, error) {
				assert.Equal(t, "SICK", req.LeaveType)
				assert.Equal(t, "HALF_DAY", req.LeaveDuration)
				if assert.NotNil(t, doc) {
					assert.Equal(t, "note.pdf", doc.Filename)
					content, err := io.ReadAll(doc.Content)
					assert.NoError(t, err)
					assert.Equal(t, "%PDF-1.4", string(content))
				}
				return leave.LeaveResponse{ID: testLeaveID, Status: "PENDING"}, nil
			},
		}, domain.RoleEmployee)

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		_ = mw.WriteField("leave_type", "SICK")
		_ = mw.WriteField("start_date", "2024-03-20")
		_ = mw.WriteField("end_date", "2024-03-20")
		_ = mw.WriteField("leave_duration", "HALF_DAY")
		_ = mw.WriteField("reason", "flu")
		part, err := mw.CreateFormFile("document", "note.pdf")
		assert.NoError(t, err)
		_, _ = part.Write([]byte("%PDF-1.4"))
		assert.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/leaves", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("negative - missing required fields", func(t *testing.T) {
		router := newTestRouter(&fakeService{}, domain.RoleEmployee)

		req := httptest.NewRequest(http.MethodPost, "/leaves", bytes.NewBufferString(`{"leave_type":"PTO"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w)
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})

	t.Run("negative - service validation error keeps reason", func(t *testing.T) {
		router := newTestRouter(&fakeService{
			createFn: func(ctx context.Context, actor leave.Actor, req leave.CreateLeaveRequest, doc *document.Upload) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrExceedsBalance
			},
		}, domain.RoleEmployee)

		body := `{"leave_type":"PTO","start_date":"2024-03-20","end_date":"2024-03-22","reason":"trip"}`
		req := httptest.NewRequest(http.MethodPost, "/leaves", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
		assert.Equal(t, "ExceedsAnnualLimit", env.Error.Details["reason"])
	})
}

func TestHandler_UpdateStatus(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router := newTestRouter(&fakeService{
			updateFn: func(ctx context.Context, actor leave.Actor, id string, req leave.UpdateLeaveStatusRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, testLeaveID, id)
				assert.Equal(t, domain.RoleHRManager, actor.Role)
				assert.Equal(t, "REJECTED", req.Status)
				assert.Equal(t, "understaffed", req.RejectionReason)
				reason := req.RejectionReason
				return leave.LeaveResponse{ID: id, Status: req.Status, RejectionReason: &reason}, nil
			},
		}, domain.RoleHRManager)

		body := `{"status":"REJECTED","rejection_reason":"understaffed"}`
		req := httptest.NewRequest(http.MethodPut, "/leaves/"+testLeaveID+"/status", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative - forbidden", func(t *testing.T) {
		router := newTestRouter(&fakeService{
			updateFn: func(ctx context.Context, actor leave.Actor, id string, req leave.UpdateLeaveStatusRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrUnauthorized
			},
		}, domain.RoleEmployee)

		req := httptest.NewRequest(http.MethodPut, "/leaves/"+testLeaveID+"/status", bytes.NewBufferString(`{"status":"APPROVED"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "FORBIDDEN", decodeEnvelope(t, w).Error.Code)
	})

	t.Run("negative - invalid state", func(t *testing.T) {
		router := newTestRouter(&fakeService{
			updateFn: func(ctx context.Context, actor leave.Actor, id string, req leave.UpdateLeaveStatusRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrInvalidStateTransition
			},
		}, domain.RoleAdmin)

		req := httptest.NewRequest(http.MethodPut, "/leaves/"+testLeaveID+"/status", bytes.NewBufferString(`{"status":"APPROVED"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_STATE", decodeEnvelope(t, w).Error.Code)
	})
}

func TestHandler_Cancel(t *testing.T) {
	router := newTestRouter(&fakeService{
		cancelFn: func(ctx context.Context, actor leave.Actor, id string) (leave.LeaveResponse, error) {
			assert.Equal(t, testEmployeeID, actor.EmployeeID)
			return leave.LeaveResponse{ID: id, Status: "CANCELLED"}, nil
		},
	}, domain.RoleEmployee)

	req := httptest.NewRequest(http.MethodPost, "/leaves/"+testLeaveID+"/cancel", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_Queries(t *testing.T) {
	svc := &fakeService{
		byEmployeeFn: func(ctx context.Context, employeeID string) ([]leave.LeaveResponse, error) {
			return []leave.LeaveResponse{{ID: testLeaveID, EmployeeID: employeeID}}, nil
		},
		pendingFn: func(ctx context.Context) ([]leave.LeaveResponse, error) {
			return []leave.LeaveResponse{{ID: testLeaveID, Status: "PENDING"}}, nil
		},
		byIDFn: func(ctx context.Context, actor leave.Actor, id string) (leave.LeaveResponse, error) {
			if id != testLeaveID {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveNotFound
			}
			return leave.LeaveResponse{ID: id}, nil
		},
		allFn: func(ctx context.Context, page, pageSize int) ([]leave.LeaveResponse, int64, error) {
			assert.Equal(t, 2, page)
			assert.Equal(t, 10, pageSize)
			return []leave.LeaveResponse{{ID: testLeaveID}}, 11, nil
		},
		balancesFn: func(ctx context.Context, employeeID string) ([]leave.LeaveBalanceResponse, error) {
			return []leave.LeaveBalanceResponse{{
				LeaveType:     "PTO",
				DaysAllowed:   20,
				DaysUsed:      decimal.NewFromInt(3),
				DaysAvailable: decimal.NewFromInt(17),
			}}, nil
		},
	}
	router := newTestRouter(svc, domain.RoleHRManager)

	cases := []struct {
		name   string
		path   string
		status int
	}{
		{"success - mine", "/leaves/me", http.StatusOK},
		{"success - pending", "/leaves/pending", http.StatusOK},
		{"success - by id", "/leaves/" + testLeaveID, http.StatusOK},
		{"negative - by id not found", "/leaves/0b7c9f6e-3d1a-4f38-9e0b-000000000000", http.StatusNotFound},
		{"success - by employee", "/employees/" + testEmployeeID + "/leaves", http.StatusOK},
		{"success - my balances", "/leaves/balances", http.StatusOK},
		{"success - employee balances", "/employees/" + testEmployeeID + "/balances", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
			assert.Equal(t, tc.status, w.Code)
		})
	}

	t.Run("success - all with pagination meta", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/leaves?page=2&page_size=10", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w)
		assert.Equal(t, float64(11), env.Meta["total"])
		assert.Equal(t, float64(2), env.Meta["totalPages"])
	})
}
