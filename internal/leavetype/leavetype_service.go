package leavetype

import (
	"context"
	"encoding/json"
	"time"

	"go-leave/internal/domain"
	leavetypeerrors "go-leave/internal/leavetype/errors"
	"go-leave/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	ActiveConfigsCacheKey = "leave_types:active"
	activeConfigsCacheTTL = time.Hour
)

//go:generate mockgen -source=leavetype_service.go -destination=mock/leavetype_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeaveTypeConfigRequest) (LeaveTypeConfigResponse, error)
	GetAll(ctx context.Context) ([]LeaveTypeConfigResponse, error)
	GetActive(ctx context.Context) ([]LeaveTypeConfigResponse, error)
	GetByID(ctx context.Context, id string) (LeaveTypeConfigResponse, error)
	Update(ctx context.Context, id string, req UpdateLeaveTypeConfigRequest) (LeaveTypeConfigResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateLeaveTypeConfigRequest) (LeaveTypeConfigResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave type config requested",
		zap.String("request_id", rid),
		zap.String("leave_type", req.LeaveType),
	)

	leaveType, err := domain.ParseLeaveType(req.LeaveType)
	if err != nil {
		s.logger.Warn("create leave type config invalid type", zap.String("leave_type", req.LeaveType))
		return LeaveTypeConfigResponse{}, err
	}
	if req.AnnualLimit < 0 {
		return LeaveTypeConfigResponse{}, leavetypeerrors.ErrInvalidAnnualLimit
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	cfg := &LeaveTypeConfig{
		ID:               uuid.New(),
		LeaveType:        string(leaveType),
		AnnualLimit:      req.AnnualLimit,
		RequiresDocument: req.RequiresDocument,
		Description:      req.Description,
		IsActive:         isActive,
	}

	if err := s.repo.Create(ctx, cfg); err != nil {
		mapped := mapRepositoryError(err)
		if mapped == err {
			s.logger.Error("create leave type config persist failed", zap.Error(err))
		} else {
			s.logger.Warn("create leave type config rejected", zap.String("leave_type", cfg.LeaveType), zap.Error(mapped))
		}
		return LeaveTypeConfigResponse{}, mapped
	}

	s.invalidateCache(ctx)
	s.logger.Info("create leave type config success",
		zap.String("request_id", rid),
		zap.String("config_id", cfg.ID.String()),
		zap.String("leave_type", cfg.LeaveType),
	)
	return mapToResponse(*cfg), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveTypeConfigResponse, error) {
	s.logger.Debug("get all leave type configs requested")
	cfgs, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all leave type configs failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(cfgs), nil
}

// GetActive serves the active configurations from Redis, collapsing
// concurrent cache misses into one database read.
func (s *service) GetActive(ctx context.Context) ([]LeaveTypeConfigResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, ActiveConfigsCacheKey).Result(); err == nil {
			var resp []LeaveTypeConfigResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(ActiveConfigsCacheKey, func() (interface{}, error) {
		cfgs, err := s.repo.FindActive(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(cfgs)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, ActiveConfigsCacheKey, jsonData, activeConfigsCacheTTL).Err(); err != nil {
					s.logger.Warn("failed to cache active leave type configs", zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		s.logger.Error("get active leave type configs failed", zap.Error(err))
		return nil, err
	}

	return v.([]LeaveTypeConfigResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveTypeConfigResponse, error) {
	s.logger.Debug("get leave type config by id requested", zap.String("config_id", id))
	if _, err := uuid.Parse(id); err != nil {
		return LeaveTypeConfigResponse{}, leavetypeerrors.ErrInvalidConfigID
	}

	cfg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveTypeConfigResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*cfg), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateLeaveTypeConfigRequest) (LeaveTypeConfigResponse, error) {
	s.logger.Debug("update leave type config requested", zap.String("config_id", id))
	if _, err := uuid.Parse(id); err != nil {
		return LeaveTypeConfigResponse{}, leavetypeerrors.ErrInvalidConfigID
	}
	if req.AnnualLimit < 0 {
		return LeaveTypeConfigResponse{}, leavetypeerrors.ErrInvalidAnnualLimit
	}

	cfg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveTypeConfigResponse{}, mapRepositoryError(err)
	}

	cfg.AnnualLimit = req.AnnualLimit
	cfg.Description = req.Description
	if req.RequiresDocument != nil {
		cfg.RequiresDocument = *req.RequiresDocument
	}
	if req.IsActive != nil {
		cfg.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, cfg); err != nil {
		s.logger.Error("update leave type config persist failed", zap.Error(err))
		return LeaveTypeConfigResponse{}, mapRepositoryError(err)
	}

	s.invalidateCache(ctx)
	s.logger.Info("update leave type config success", zap.String("config_id", id))
	return mapToResponse(*cfg), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	s.logger.Debug("delete leave type config requested", zap.String("config_id", id))
	if _, err := uuid.Parse(id); err != nil {
		return leavetypeerrors.ErrInvalidConfigID
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete leave type config failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	if affected == 0 {
		return leavetypeerrors.ErrConfigNotFound
	}

	s.invalidateCache(ctx)
	s.logger.Info("delete leave type config success", zap.String("config_id", id))
	return nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, ActiveConfigsCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate leave type cache",
			zap.Error(err),
			zap.String("key", ActiveConfigsCacheKey),
		)
	}
}

func mapToResponse(cfg LeaveTypeConfig) LeaveTypeConfigResponse {
	return LeaveTypeConfigResponse{
		ID:               cfg.ID.String(),
		LeaveType:        cfg.LeaveType,
		AnnualLimit:      cfg.AnnualLimit,
		RequiresDocument: cfg.RequiresDocument,
		Description:      cfg.Description,
		IsActive:         cfg.IsActive,
	}
}

func mapToListResponse(cfgs []LeaveTypeConfig) []LeaveTypeConfigResponse {
	res := make([]LeaveTypeConfigResponse, len(cfgs))
	for i, c := range cfgs {
		res[i] = mapToResponse(c)
	}
	return res
}
