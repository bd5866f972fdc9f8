package leave

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go-leave/internal/document"
	"go-leave/internal/domain"
	"go-leave/internal/employee"
	"go-leave/internal/events"
	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/leavepolicy"
	"go-leave/internal/leavetype"
	"go-leave/internal/shared/contextutil"
	"go-leave/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Actor is the authenticated caller of a lifecycle operation.
type Actor struct {
	EmployeeID string
	Role       domain.Role
}

// Authorizer answers role/resource/action questions; rbac.Service satisfies it.
type Authorizer interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

type Service interface {
	CreateLeaveRequest(ctx context.Context, actor Actor, req CreateLeaveRequest, doc *document.Upload) (LeaveResponse, error)
	UpdateLeaveStatus(ctx context.Context, actor Actor, id string, req UpdateLeaveStatusRequest) (LeaveResponse, error)
	CancelLeaveRequest(ctx context.Context, actor Actor, id string) (LeaveResponse, error)
	GetEmployeeLeaves(ctx context.Context, employeeID string) ([]LeaveResponse, error)
	GetPendingLeaves(ctx context.Context) ([]LeaveResponse, error)
	GetLeaveByID(ctx context.Context, actor Actor, id string) (LeaveResponse, error)
	GetAllLeavesSorted(ctx context.Context, page, pageSize int) ([]LeaveResponse, int64, error)
	GetLeaveBalances(ctx context.Context, employeeID string) ([]LeaveBalanceResponse, error)
}

type Dependencies struct {
	DB         *sql.DB
	Leaves     Repository
	Employees  employee.Repository
	LeaveTypes leavetype.Repository
	Policies   leavepolicy.Repository
	Counter    counter.Repository
	Documents  document.Storage
	Publisher  EventPublisher
	Authorizer Authorizer
	Now        func() time.Time
}

type service struct {
	db         *sql.DB
	repo       Repository
	employees  employee.Repository
	leaveTypes leavetype.Repository
	policies   leavepolicy.Repository
	counter    counter.Repository
	documents  document.Storage
	publisher  EventPublisher
	authorizer Authorizer
	now        func() time.Time
	logger     *zap.Logger
}

func NewService(deps Dependencies, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	publisher := deps.Publisher
	if publisher == nil {
		publisher = NewNoopEventPublisher()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		db:         deps.DB,
		repo:       deps.Leaves,
		employees:  deps.Employees,
		leaveTypes: deps.LeaveTypes,
		policies:   deps.Policies,
		counter:    deps.Counter,
		documents:  deps.Documents,
		publisher:  publisher,
		authorizer: deps.Authorizer,
		now:        now,
		logger:     l,
	}
}

func (s *service) CreateLeaveRequest(ctx context.Context, actor Actor, req CreateLeaveRequest, doc *document.Upload) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave requested",
		zap.String("request_id", rid),
		zap.String("actor_id", actor.EmployeeID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if endDate.Before(startDate) {
		s.logger.Warn("create leave invalid range",
			zap.String("request_id", rid),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidRange
	}
	leaveType, err := domain.ParseLeaveType(req.LeaveType)
	if err != nil {
		return LeaveResponse{}, err
	}
	duration, err := parseDuration(req.LeaveDuration)
	if err != nil {
		return LeaveResponse{}, err
	}
	holdDays, err := parseHoldDays(req.HoldDays)
	if err != nil {
		return LeaveResponse{}, err
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return LeaveResponse{}, leaveerrors.ErrReasonRequired
	}

	employeeID := actor.EmployeeID
	if req.EmployeeID != "" && req.EmployeeID != actor.EmployeeID {
		if !s.authorized(actor, "approve") {
			s.logger.Warn("create leave on behalf denied",
				zap.String("request_id", rid),
				zap.String("actor_id", actor.EmployeeID),
				zap.String("employee_id", req.EmployeeID),
			)
			return LeaveResponse{}, leaveerrors.ErrUnauthorized
		}
		employeeID = req.EmployeeID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}

	now := s.now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	etx := s.employees.WithTx(tx)

	empl, err := etx.FindByIDForUpdate(ctx, employeeID)
	if err != nil {
		return LeaveResponse{}, mapEmployeeError(err)
	}

	cfg, err := s.leaveTypes.WithTx(tx).FindByLeaveType(ctx, leaveType)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("create leave load type config failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	policy, err := s.policies.WithTx(tx).FindActiveByLeaveType(ctx, leaveType)
	if err != nil {
		s.logger.Error("create leave load policy failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	used, err := qtx.SumUsedDays(ctx, employeeID, leaveType, startDate.Year())
	if err != nil {
		s.logger.Error("create leave sum used days failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	days, err := Validate(ValidationInput{
		LeaveType:   leaveType,
		StartDate:   startDate,
		EndDate:     endDate,
		Duration:    duration,
		HoldDays:    holdDays,
		HasDocument: doc != nil,
		Config:      cfg,
		Policy:      policy,
		UsedDays:    used,
		Balance:     empl.AnnualLeaveBalance,
		Today:       now,
	})
	if err != nil {
		s.logger.Warn("create leave validation failed",
			zap.String("request_id", rid),
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, employeeID, startDate, endDate, "")
	if err != nil {
		return LeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("create leave overlaps existing leave",
			zap.String("request_id", rid),
			zap.String("employee_id", employeeID),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	seq, err := s.counter.GetNextValue(ctx, counter.LeaveReference)
	if err != nil {
		s.logger.Error("create leave reference number failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	l := &Leave{
		ID:              uuid.New(),
		ReferenceNo:     counter.FormatLeaveReference(now.Year(), seq),
		EmployeeID:      employeeUUID,
		LeaveType:       string(leaveType),
		StartDate:       startDate,
		EndDate:         endDate,
		NumberOfDays:    days,
		HoldDays:        holdDays,
		LeaveDuration:   duration,
		Reason:          reason,
		Status:          StatusPending,
		ApplicationDate: now,
		Version:         1,
	}

	committed := false
	if doc != nil {
		if s.documents == nil {
			s.logger.Error("create leave document storage not configured", zap.String("request_id", rid))
			return LeaveResponse{}, leaveerrors.ErrDocumentStorage
		}
		path, err := s.documents.Store(ctx, *doc, employeeID)
		if err != nil {
			mapped := mapStorageError(err)
			if isAppError(err) {
				s.logger.Warn("create leave document rejected", zap.String("request_id", rid), zap.Error(err))
			} else {
				s.logger.Error("create leave document store failed", zap.String("request_id", rid), zap.Error(err))
			}
			return LeaveResponse{}, mapped
		}
		l.SupportingDocumentPath = &path
		defer func() {
			if committed {
				return
			}
			if err := s.documents.Remove(context.WithoutCancel(ctx), path); err != nil {
				s.logger.Error("create leave document cleanup failed",
					zap.String("path", path),
					zap.Error(err),
				)
			}
		}()
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed",
			zap.String("request_id", rid),
			zap.String("leave_id", l.ID.String()),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if delta := BalanceDelta("", StatusPending, *l); delta != 0 {
		if err := etx.UpdateBalance(ctx, empl, empl.AnnualLeaveBalance+delta); err != nil {
			s.logger.Error("create leave balance update failed",
				zap.String("request_id", rid),
				zap.String("employee_id", employeeID),
				zap.Error(err),
			)
			return LeaveResponse{}, mapEmployeeError(err)
		}
	}

	s.publish(ctx, tx, events.LeaveCreated, *l, empl, actor)

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	committed = true

	s.logger.Info("create leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.String("reference_no", l.ReferenceNo),
		zap.Int("number_of_days", l.NumberOfDays),
		zap.Int("balance", empl.AnnualLeaveBalance),
	)
	return mapToResponse(*l), nil
}

func (s *service) UpdateLeaveStatus(ctx context.Context, actor Actor, id string, req UpdateLeaveStatusRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update leave status requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("actor_id", actor.EmployeeID),
		zap.String("target_status", req.Status),
	)

	target, err := ParseStatus(req.Status)
	if err != nil {
		return LeaveResponse{}, err
	}

	var rejectionReason *string
	switch target {
	case StatusCancelled:
		return s.CancelLeaveRequest(ctx, actor, id)
	case StatusRejected:
		reason := strings.TrimSpace(req.RejectionReason)
		if reason == "" {
			s.logger.Warn("update leave status missing rejection reason",
				zap.String("request_id", rid),
				zap.String("leave_id", id),
			)
			return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
		}
		rejectionReason = &reason
	case StatusPending:
		return LeaveResponse{}, leaveerrors.ErrInvalidStateTransition
	}

	action := "approve"
	if target == StatusRejected {
		action = "reject"
	}
	if !s.authorized(actor, action) {
		s.logger.Warn("update leave status denied",
			zap.String("request_id", rid),
			zap.String("leave_id", id),
			zap.String("actor_id", actor.EmployeeID),
			zap.String("role", string(actor.Role)),
		)
		return LeaveResponse{}, leaveerrors.ErrUnauthorized
	}
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	actorUUID, err := uuid.Parse(actor.EmployeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update leave status begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	l, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}

	from := l.Status
	if !CanTransition(from, target) {
		s.logger.Warn("update leave status invalid transition",
			zap.String("request_id", rid),
			zap.String("leave_id", id),
			zap.String("from_status", string(from)),
			zap.String("to_status", string(target)),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStateTransition
	}

	if from == StatusRejected && target == StatusApproved {
		if err := s.checkReapproval(ctx, tx, l); err != nil {
			s.logger.Warn("update leave status re-approval rejected",
				zap.String("request_id", rid),
				zap.String("leave_id", id),
				zap.Error(err),
			)
			return LeaveResponse{}, err
		}
	}

	now := s.now().UTC()
	l.Status = target
	l.RejectionReason = rejectionReason
	l.DecidedBy = &actorUUID
	l.DecidedAt = &now

	empl, err := s.applyTransition(ctx, tx, l, from, target)
	if err != nil {
		return LeaveResponse{}, err
	}

	eventType := events.LeaveApproved
	if target == StatusRejected {
		eventType = events.LeaveRejected
	}
	s.publish(ctx, tx, eventType, *l, empl, actor)

	if err := tx.Commit(); err != nil {
		s.logger.Error("update leave status commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("update leave status success",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("from_status", string(from)),
		zap.String("status", string(l.Status)),
	)
	return mapToResponse(*l), nil
}

func (s *service) CancelLeaveRequest(ctx context.Context, actor Actor, id string) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("cancel leave requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("actor_id", actor.EmployeeID),
	)

	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	actorUUID, err := uuid.Parse(actor.EmployeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("cancel leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	l, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}

	from := l.Status
	if !CanTransition(from, StatusCancelled) {
		s.logger.Warn("cancel leave invalid transition",
			zap.String("request_id", rid),
			zap.String("leave_id", id),
			zap.String("from_status", string(from)),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStateTransition
	}
	if l.EmployeeID != actorUUID {
		s.logger.Warn("cancel leave denied",
			zap.String("request_id", rid),
			zap.String("leave_id", id),
			zap.String("actor_id", actor.EmployeeID),
		)
		return LeaveResponse{}, leaveerrors.ErrUnauthorized
	}

	now := s.now().UTC()
	l.Status = StatusCancelled
	l.DecidedBy = &actorUUID
	l.DecidedAt = &now

	empl, err := s.applyTransition(ctx, tx, l, from, StatusCancelled)
	if err != nil {
		return LeaveResponse{}, err
	}

	s.publish(ctx, tx, events.LeaveCancelled, *l, empl, actor)

	if err := tx.Commit(); err != nil {
		s.logger.Error("cancel leave commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("cancel leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
	)
	return mapToResponse(*l), nil
}

// checkReapproval re-runs the annual limit and overlap rules for a rejected
// leave about to become active again. A rejected leave is invisible to both
// while it sits rejected, so other leaves may have taken its room.
func (s *service) checkReapproval(ctx context.Context, tx *sql.Tx, l *Leave) error {
	employeeID := l.EmployeeID.String()
	if _, err := s.employees.WithTx(tx).FindByIDForUpdate(ctx, employeeID); err != nil {
		return mapEmployeeError(err)
	}

	leaveType := domain.LeaveType(l.LeaveType)
	cfg, err := s.leaveTypes.WithTx(tx).FindByLeaveType(ctx, leaveType)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("re-approval load type config failed", zap.String("leave_id", l.ID.String()), zap.Error(err))
		return err
	}

	qtx := s.repo.WithTx(tx)
	if cfg != nil {
		used, err := qtx.SumUsedDays(ctx, employeeID, leaveType, l.StartDate.Year())
		if err != nil {
			s.logger.Error("re-approval sum used days failed", zap.String("leave_id", l.ID.String()), zap.Error(err))
			return err
		}
		limit := decimal.NewFromInt(int64(cfg.AnnualLimit))
		if used.Add(l.ChargedDays()).GreaterThan(limit) {
			return leaveerrors.ErrExceedsAnnualLimit
		}
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, employeeID, l.StartDate, l.EndDate, l.ID.String())
	if err != nil {
		return err
	}
	if overlap {
		return leaveerrors.ErrLeaveOverlap
	}
	return nil
}

// applyTransition persists the already mutated leave and the matching
// balance change. The balance is checked before any write and the leave is
// written before the balance, so a lost version race never touches the balance.
func (s *service) applyTransition(ctx context.Context, tx *sql.Tx, l *Leave, from, to Status) (*employee.Employee, error) {
	etx := s.employees.WithTx(tx)
	empl, err := etx.FindByIDForUpdate(ctx, l.EmployeeID.String())
	if err != nil {
		return nil, mapEmployeeError(err)
	}

	delta := BalanceDelta(from, to, *l)
	newBalance := empl.AnnualLeaveBalance + delta
	if newBalance < 0 {
		s.logger.Warn("leave transition exceeds balance",
			zap.String("leave_id", l.ID.String()),
			zap.Int("balance", empl.AnnualLeaveBalance),
			zap.Int("delta", delta),
		)
		return nil, leaveerrors.ErrExceedsBalance
	}

	if err := s.repo.WithTx(tx).UpdateStatus(ctx, l); err != nil {
		mapped := mapRepositoryError(err)
		if mapped == err {
			s.logger.Error("leave status persist failed", zap.String("leave_id", l.ID.String()), zap.Error(err))
		} else {
			s.logger.Warn("leave status persist rejected", zap.String("leave_id", l.ID.String()), zap.Error(mapped))
		}
		return nil, mapped
	}

	if delta == 0 {
		return empl, nil
	}
	if err := etx.UpdateBalance(ctx, empl, newBalance); err != nil {
		s.logger.Error("leave balance update failed",
			zap.String("leave_id", l.ID.String()),
			zap.String("employee_id", empl.ID.String()),
			zap.Error(err),
		)
		return nil, mapEmployeeError(err)
	}
	return empl, nil
}

func (s *service) GetEmployeeLeaves(ctx context.Context, employeeID string) ([]LeaveResponse, error) {
	s.logger.Debug("get employee leaves requested", zap.String("employee_id", employeeID))
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}
	if _, err := s.employees.FindByID(ctx, employeeID); err != nil {
		return nil, mapEmployeeError(err)
	}
	leaves, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("get employee leaves failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetPendingLeaves(ctx context.Context) ([]LeaveResponse, error) {
	s.logger.Debug("get pending leaves requested")
	leaves, err := s.repo.FindByStatus(ctx, StatusPending)
	if err != nil {
		s.logger.Error("get pending leaves failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetLeaveByID(ctx context.Context, actor Actor, id string) (LeaveResponse, error) {
	s.logger.Debug("get leave by id requested", zap.String("leave_id", id))
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if l.EmployeeID.String() != actor.EmployeeID && !s.authorized(actor, "read_all") {
		s.logger.Warn("get leave by id denied",
			zap.String("leave_id", id),
			zap.String("actor_id", actor.EmployeeID),
		)
		return LeaveResponse{}, leaveerrors.ErrUnauthorized
	}
	return mapToResponse(*l), nil
}

func (s *service) GetAllLeavesSorted(ctx context.Context, page, pageSize int) ([]LeaveResponse, int64, error) {
	s.logger.Debug("get all leaves requested", zap.Int("page", page), zap.Int("page_size", pageSize))
	leaves, total, err := s.repo.FindAllSorted(ctx, page, pageSize)
	if err != nil {
		s.logger.Error("get all leaves failed", zap.Error(err))
		return nil, 0, err
	}
	return mapToListResponse(leaves), total, nil
}

func (s *service) GetLeaveBalances(ctx context.Context, employeeID string) ([]LeaveBalanceResponse, error) {
	s.logger.Debug("get leave balances requested", zap.String("employee_id", employeeID))
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}
	if _, err := s.employees.FindByID(ctx, employeeID); err != nil {
		return nil, mapEmployeeError(err)
	}

	configs, err := s.leaveTypes.FindActive(ctx)
	if err != nil {
		s.logger.Error("get leave balances load configs failed", zap.Error(err))
		return nil, err
	}
	carryForward := make(map[string]int, len(configs))
	for _, cfg := range configs {
		policy, err := s.policies.FindActiveByLeaveType(ctx, domain.LeaveType(cfg.LeaveType))
		if err != nil {
			s.logger.Error("get leave balances load policy failed",
				zap.String("leave_type", cfg.LeaveType),
				zap.Error(err),
			)
			return nil, err
		}
		if policy != nil {
			carryForward[cfg.LeaveType] = policy.CarryForwardDays
		}
	}

	leaves, err := s.repo.FindActiveByEmployeeInYear(ctx, employeeID, s.now().UTC().Year())
	if err != nil {
		s.logger.Error("get leave balances load leaves failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, err
	}

	balances := SummarizeBalances(configs, carryForward, leaves)
	resp := make([]LeaveBalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = LeaveBalanceResponse{
			LeaveType:        b.LeaveType,
			DaysAllowed:      b.DaysAllowed,
			DaysUsed:         b.DaysUsed,
			DaysAvailable:    b.DaysAvailable,
			CarryForwardDays: b.CarryForwardDays,
			LeaveDateRanges:  b.LeaveDateRanges,
		}
	}
	return resp, nil
}

// authorized asks the authorizer when one is wired and otherwise falls back
// to the built-in approver roles.
func (s *service) authorized(actor Actor, action string) bool {
	if s.authorizer == nil {
		return actor.Role.IsApprover()
	}
	allowed, err := s.authorizer.Enforce(domain.EnforceRequest{
		Role:     string(actor.Role),
		Resource: "leave",
		Action:   action,
	})
	if err != nil {
		s.logger.Error("leave authorization check failed",
			zap.String("role", string(actor.Role)),
			zap.String("action", action),
			zap.Error(err),
		)
		return false
	}
	return allowed
}

// publish writes the lifecycle event in the transition's transaction, so it
// commits or rolls back with it. A failed write is logged and does not abort
// the transition.
func (s *service) publish(ctx context.Context, tx *sql.Tx, eventType string, l Leave, empl *employee.Employee, actor Actor) {
	event := events.LeaveLifecycleEvent{
		EventType:    eventType,
		RequestID:    contextutil.GetRequestID(ctx),
		LeaveID:      l.ID.String(),
		ReferenceNo:  l.ReferenceNo,
		EmployeeID:   l.EmployeeID.String(),
		LeaveType:    l.LeaveType,
		StartDate:    l.StartDate.Format(dateLayout),
		EndDate:      l.EndDate.Format(dateLayout),
		NumberOfDays: l.NumberOfDays,
		Status:       string(l.Status),
		ActorID:      actor.EmployeeID,
		OccurredAt:   s.now().UTC(),
	}
	if empl != nil {
		event.EmployeeEmail = empl.Email
		event.EmployeeName = empl.FullName()
	}
	if l.RejectionReason != nil {
		event.RejectionReason = *l.RejectionReason
	}
	if err := s.publisher.WithTx(tx).PublishLeaveEvent(ctx, event); err != nil {
		s.logger.Error("publish leave event failed",
			zap.String("leave_id", event.LeaveID),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func parseDuration(v string) (Duration, error) {
	switch Duration(strings.ToUpper(strings.TrimSpace(v))) {
	case "", DurationFullDay:
		return DurationFullDay, nil
	case DurationHalfDay:
		return DurationHalfDay, nil
	}
	return "", leaveerrors.ErrInvalidDuration
}

var maxHoldDays = decimal.NewFromInt(1000)

func parseHoldDays(v string) (decimal.Decimal, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, leaveerrors.ErrInvalidHoldDays
	}
	// hold_days is numeric(5,2).
	if !d.Equal(d.Round(2)) || d.Abs().GreaterThanOrEqual(maxHoldDays) {
		return decimal.Zero, leaveerrors.ErrInvalidHoldDays
	}
	return d, nil
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:                     l.ID.String(),
		ReferenceNo:            l.ReferenceNo,
		EmployeeID:             l.EmployeeID.String(),
		LeaveType:              l.LeaveType,
		StartDate:              l.StartDate.Format(dateLayout),
		EndDate:                l.EndDate.Format(dateLayout),
		NumberOfDays:           l.NumberOfDays,
		HoldDays:               l.HoldDays,
		LeaveDuration:          string(l.LeaveDuration),
		Reason:                 l.Reason,
		Status:                 string(l.Status),
		RejectionReason:        l.RejectionReason,
		ApplicationDate:        l.ApplicationDate.Format(time.RFC3339),
		SupportingDocumentPath: l.SupportingDocumentPath,
	}
	if l.DecidedBy != nil {
		v := l.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if l.DecidedAt != nil {
		v := l.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
