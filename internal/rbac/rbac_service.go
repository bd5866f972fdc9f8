package rbac

import (
	"context"
	"strings"
	"sync"

	"go-leave/internal/domain"
	rbacerrors "go-leave/internal/rbac/errors"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Reload(ctx context.Context) error
	Enforce(req domain.EnforceRequest) (bool, error)
	ListPolicies(ctx context.Context) ([]PolicyResponse, error)
	AddPolicy(ctx context.Context, req CreatePolicyRequest) (PolicyResponse, error)
	RemovePolicy(ctx context.Context, id string) error
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		logger:   l,
	}
}

func (s *service) Reload(ctx context.Context) error {
	rows, err := s.repo.ListRolePermissions(ctx)
	if err != nil {
		s.logger.Error("failed to load role permissions", zap.Error(err))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.enforcer.ClearPolicy()

	for _, h := range roleHierarchy {
		if _, err := s.enforcer.AddGroupingPolicy(string(h[0]), string(h[1])); err != nil {
			return err
		}
	}
	for _, r := range defaultRules {
		if _, err := s.enforcer.AddPolicy(string(r.Role), r.Resource, r.Action); err != nil {
			return err
		}
	}
	for _, rp := range rows {
		if _, err := s.enforcer.AddPolicy(rp.Role, rp.Resource, rp.Action); err != nil {
			return err
		}
	}

	s.logger.Info("rbac policy loaded",
		zap.Int("default_rules", len(defaultRules)),
		zap.Int("stored_rules", len(rows)),
	)
	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(req.Role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", req.Role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", req.Role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) ListPolicies(ctx context.Context) ([]PolicyResponse, error) {
	rows, err := s.repo.ListRolePermissions(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]PolicyResponse, 0, len(defaultRules)+len(rows))
	for _, r := range defaultRules {
		out = append(out, PolicyResponse{Role: string(r.Role), Resource: r.Resource, Action: r.Action, BuiltIn: true})
	}
	for _, rp := range rows {
		out = append(out, PolicyResponse{ID: rp.ID, Role: rp.Role, Resource: rp.Resource, Action: rp.Action})
	}
	return out, nil
}

func (s *service) AddPolicy(ctx context.Context, req CreatePolicyRequest) (PolicyResponse, error) {
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return PolicyResponse{}, err
	}
	resource := strings.TrimSpace(req.Resource)
	action := strings.TrimSpace(req.Action)
	if resource == "" || action == "" {
		return PolicyResponse{}, rbacerrors.ErrInvalidPolicy
	}

	rp := &RolePermission{Role: string(role), Resource: resource, Action: action}
	if err := s.repo.CreateRolePermission(ctx, rp); err != nil {
		s.logger.Error("failed to store role permission", zap.Error(err))
		return PolicyResponse{}, err
	}

	if err := s.Reload(ctx); err != nil {
		return PolicyResponse{}, err
	}

	s.logger.Info("role permission added",
		zap.String("role", rp.Role),
		zap.String("resource", rp.Resource),
		zap.String("action", rp.Action),
	)
	return PolicyResponse{ID: rp.ID, Role: rp.Role, Resource: rp.Resource, Action: rp.Action}, nil
}

func (s *service) RemovePolicy(ctx context.Context, id string) error {
	affected, err := s.repo.DeleteRolePermission(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete role permission", zap.String("id", id), zap.Error(err))
		return err
	}
	if affected == 0 {
		return rbacerrors.ErrPolicyNotFound
	}
	return s.Reload(ctx)
}
