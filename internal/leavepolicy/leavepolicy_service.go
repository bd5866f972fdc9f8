package leavepolicy

import (
	"context"
	"errors"
	"strings"

	"go-leave/internal/domain"
	leavepolicyerrors "go-leave/internal/leavepolicy/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leavepolicy_service.go -destination=mock/leavepolicy_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req LeavePolicyRequest) (LeavePolicyResponse, error)
	GetAll(ctx context.Context) ([]LeavePolicyResponse, error)
	GetByID(ctx context.Context, id string) (LeavePolicyResponse, error)
	Update(ctx context.Context, id string, req LeavePolicyRequest) (LeavePolicyResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavepolicy.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavepolicy.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req LeavePolicyRequest) (LeavePolicyResponse, error) {
	s.logger.Debug("create leave policy requested", zap.String("name", req.Name))

	p := &LeavePolicy{ID: uuid.New(), RequiresApproval: true, Active: true}
	if err := applyRequest(p, req); err != nil {
		s.logger.Warn("create leave policy invalid input", zap.Error(err))
		return LeavePolicyResponse{}, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("create leave policy persist failed", zap.Error(err))
		return LeavePolicyResponse{}, err
	}

	s.logger.Info("create leave policy success",
		zap.String("policy_id", p.ID.String()),
		zap.String("leave_type", p.LeaveType),
	)
	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeavePolicyResponse, error) {
	policies, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all leave policies failed", zap.Error(err))
		return nil, err
	}
	res := make([]LeavePolicyResponse, len(policies))
	for i, p := range policies {
		res[i] = mapToResponse(p)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeavePolicyResponse, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return LeavePolicyResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, id string, req LeavePolicyRequest) (LeavePolicyResponse, error) {
	s.logger.Debug("update leave policy requested", zap.String("policy_id", id))

	p, err := s.find(ctx, id)
	if err != nil {
		return LeavePolicyResponse{}, err
	}
	if err := applyRequest(p, req); err != nil {
		s.logger.Warn("update leave policy invalid input", zap.Error(err))
		return LeavePolicyResponse{}, err
	}

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("update leave policy persist failed", zap.Error(err))
		return LeavePolicyResponse{}, err
	}

	s.logger.Info("update leave policy success", zap.String("policy_id", id))
	return mapToResponse(*p), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return leavepolicyerrors.ErrInvalidPolicyID
	}
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete leave policy failed", zap.Error(err))
		return err
	}
	if affected == 0 {
		return leavepolicyerrors.ErrPolicyNotFound
	}
	s.logger.Info("delete leave policy success", zap.String("policy_id", id))
	return nil
}

func (s *service) find(ctx context.Context, id string) (*LeavePolicy, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, leavepolicyerrors.ErrInvalidPolicyID
	}
	p, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, leavepolicyerrors.ErrPolicyNotFound
	}
	if err != nil {
		s.logger.Error("find leave policy failed", zap.String("policy_id", id), zap.Error(err))
		return nil, err
	}
	return p, nil
}

// applyRequest copies validated request fields onto p. Optional flags keep
// their current value when omitted.
func applyRequest(p *LeavePolicy, req LeavePolicyRequest) error {
	leaveType, err := domain.ParseLeaveType(req.LeaveType)
	if err != nil {
		return err
	}
	if req.CarryForwardDays < 0 || req.MaxConsecutiveDays < 0 || req.MinNoticeDays < 0 {
		return leavepolicyerrors.ErrInvalidPolicyLimits
	}

	daysPerMonth := decimal.Zero
	if raw := strings.TrimSpace(req.DaysPerMonth); raw != "" {
		daysPerMonth, err = decimal.NewFromString(raw)
		if err != nil || daysPerMonth.IsNegative() {
			return leavepolicyerrors.ErrInvalidDaysPerMonth
		}
	}

	p.Name = strings.TrimSpace(req.Name)
	p.Description = req.Description
	p.LeaveType = string(leaveType)
	p.DaysPerMonth = daysPerMonth
	p.CarryForwardDays = req.CarryForwardDays
	p.MaxConsecutiveDays = req.MaxConsecutiveDays
	p.MinNoticeDays = req.MinNoticeDays
	if req.RequiresApproval != nil {
		p.RequiresApproval = *req.RequiresApproval
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
	return nil
}

func mapToResponse(p LeavePolicy) LeavePolicyResponse {
	return LeavePolicyResponse{
		ID:                 p.ID.String(),
		Name:               p.Name,
		Description:        p.Description,
		LeaveType:          p.LeaveType,
		DaysPerMonth:       p.DaysPerMonth.StringFixed(2),
		CarryForwardDays:   p.CarryForwardDays,
		MaxConsecutiveDays: p.MaxConsecutiveDays,
		MinNoticeDays:      p.MinNoticeDays,
		RequiresApproval:   p.RequiresApproval,
		Active:             p.Active,
	}
}
