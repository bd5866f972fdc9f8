package employee

import (
	"context"
	"database/sql"
	"strings"

	"go-leave/internal/domain"
	employeeerrors "go-leave/internal/employee/errors"
	"go-leave/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, page, pageSize int) ([]EmployeeResponse, int64, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
	)

	role := domain.RoleEmployee
	if strings.TrimSpace(req.Role) != "" {
		parsed, err := domain.ParseRole(req.Role)
		if err != nil {
			s.logger.Warn("create employee invalid role", zap.String("role", req.Role))
			return EmployeeResponse{}, err
		}
		role = parsed
	}

	empl := &Employee{
		ID:                 uuid.New(),
		Email:              strings.ToLower(strings.TrimSpace(req.Email)),
		FirstName:          strings.TrimSpace(req.FirstName),
		LastName:           strings.TrimSpace(req.LastName),
		Department:         strings.TrimSpace(req.Department),
		Position:           strings.TrimSpace(req.Position),
		Role:               string(role),
		AnnualLeaveBalance: DefaultAnnualLeaveBalance,
		Version:            1,
	}

	if err := s.repo.Create(ctx, empl); err != nil {
		mapped := mapRepositoryError(err)
		if mapped == err {
			s.logger.Error("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		} else {
			s.logger.Warn("create employee rejected", zap.String("request_id", rid), zap.Error(mapped))
		}
		return EmployeeResponse{}, mapped
	}

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)
	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context, page, pageSize int) ([]EmployeeResponse, int64, error) {
	s.logger.Debug("get all employees requested", zap.Int("page", page), zap.Int("page_size", pageSize))

	emps, total, err := s.repo.FindAll(ctx, page, pageSize)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, 0, mapRepositoryError(err)
	}

	return mapToListResponse(emps), total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested", zap.String("employee_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		mapped := mapRepositoryError(err)
		if mapped == err {
			s.logger.Error("get employee by id failed", zap.Error(err))
		}
		return EmployeeResponse{}, mapped
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested", zap.String("employee_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		s.logger.Warn("update employee invalid role", zap.String("role", req.Role))
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		s.logger.Warn("update employee fetch existing failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	empl.Email = strings.ToLower(strings.TrimSpace(req.Email))
	empl.FirstName = strings.TrimSpace(req.FirstName)
	empl.LastName = strings.TrimSpace(req.LastName)
	empl.Department = strings.TrimSpace(req.Department)
	empl.Position = strings.TrimSpace(req.Position)
	empl.Role = string(role)

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("update employee success", zap.String("employee_id", id))
	return mapToResponse(*empl), nil
}

// Delete removes the employee together with every leave they own in one transaction.
func (s *service) Delete(ctx context.Context, id string) error {
	s.logger.Debug("delete employee requested", zap.String("employee_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByIDForUpdate(ctx, id); err != nil {
		s.logger.Warn("delete employee lookup failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	removedLeaves, err := qtx.DeleteLeavesByEmployee(ctx, id)
	if err != nil {
		s.logger.Error("delete employee leaves failed", zap.Error(err))
		return err
	}

	affected, err := qtx.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	if affected == 0 {
		return employeeerrors.ErrEmployeeNotFound
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete employee success",
		zap.String("employee_id", id),
		zap.Int64("removed_leaves", removedLeaves),
	)
	return nil
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                 empl.ID.String(),
		Email:              empl.Email,
		FirstName:          empl.FirstName,
		LastName:           empl.LastName,
		Department:         empl.Department,
		Position:           empl.Position,
		Role:               empl.Role,
		AnnualLeaveBalance: empl.AnnualLeaveBalance,
	}
}

func mapToListResponse(emps []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(emps))
	for i, e := range emps {
		res[i] = mapToResponse(e)
	}
	return res
}
