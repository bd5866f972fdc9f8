package leave_test

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"go-leave/internal/domain"
	"go-leave/internal/employee"
	"go-leave/internal/events"
	"go-leave/internal/leave"
	"go-leave/internal/leavepolicy"
	"go-leave/internal/leavetype"
	"go-leave/internal/shared/database"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// memStore backs the in-memory repositories. Versioned writes behave like the
// SQL ones: a stale version fails with database.ErrVersionConflict.
type memStore struct {
	mu        sync.Mutex
	leaves    map[uuid.UUID]leave.Leave
	employees map[uuid.UUID]employee.Employee
	configs   map[string]leavetype.LeaveTypeConfig
	policies  []leavepolicy.LeavePolicy
	seq       int64
}

func newMemStore() *memStore {
	return &memStore{
		leaves:    make(map[uuid.UUID]leave.Leave),
		employees: make(map[uuid.UUID]employee.Employee),
		configs:   make(map[string]leavetype.LeaveTypeConfig),
	}
}

func (s *memStore) addEmployee(role domain.Role, balance int) employee.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := employee.Employee{
		ID:                 uuid.New(),
		Email:              uuid.NewString()[:8] + "@example.com",
		FirstName:          "Test",
		LastName:           string(role),
		Role:               string(role),
		AnnualLeaveBalance: balance,
		Version:            1,
	}
	s.employees[e.ID] = e
	return e
}

func (s *memStore) addConfig(lt domain.LeaveType, limit int, requiresDocument bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs[string(lt)] = leavetype.LeaveTypeConfig{
		ID:               uuid.New(),
		LeaveType:        string(lt),
		AnnualLimit:      limit,
		RequiresDocument: requiresDocument,
		IsActive:         true,
	}
}

func (s *memStore) addPolicy(p leavepolicy.LeavePolicy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = uuid.New()
	s.policies = append(s.policies, p)
}

func (s *memStore) balance(id uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.employees[id].AnnualLeaveBalance
}

func (s *memStore) getLeave(id string) leave.Leave {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.leaves[uuid.MustParse(id)]
}

type memLeaveRepo struct{ s *memStore }

func (r memLeaveRepo) WithTx(*sql.Tx) leave.Repository { return r }

func (r memLeaveRepo) Create(_ context.Context, l *leave.Leave) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.leaves[l.ID] = *l
	return nil
}

func (r memLeaveRepo) FindByID(_ context.Context, id string) (*leave.Leave, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.leaves[uuid.MustParse(id)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &l, nil
}

func (r memLeaveRepo) FindByIDForUpdate(ctx context.Context, id string) (*leave.Leave, error) {
	return r.FindByID(ctx, id)
}

func (r memLeaveRepo) filter(keep func(leave.Leave) bool) []leave.Leave {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]leave.Leave, 0)
	for _, l := range r.s.leaves {
		if keep(l) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ApplicationDate.After(out[j].ApplicationDate) })
	return out
}

func (r memLeaveRepo) FindByEmployee(_ context.Context, employeeID string) ([]leave.Leave, error) {
	return r.filter(func(l leave.Leave) bool { return l.EmployeeID.String() == employeeID }), nil
}

func (r memLeaveRepo) FindByStatus(_ context.Context, status leave.Status) ([]leave.Leave, error) {
	return r.filter(func(l leave.Leave) bool { return l.Status == status }), nil
}

func (r memLeaveRepo) FindAllSorted(_ context.Context, page, pageSize int) ([]leave.Leave, int64, error) {
	all := r.filter(func(leave.Leave) bool { return true })
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Status == leave.StatusPending && all[j].Status != leave.StatusPending
	})
	from := (page - 1) * pageSize
	if from > len(all) {
		from = len(all)
	}
	to := from + pageSize
	if to > len(all) {
		to = len(all)
	}
	return all[from:to], int64(len(all)), nil
}

func (r memLeaveRepo) FindActiveByEmployeeInYear(_ context.Context, employeeID string, year int) ([]leave.Leave, error) {
	return r.filter(func(l leave.Leave) bool {
		return l.EmployeeID.String() == employeeID && l.StartDate.Year() == year && l.Status.Active()
	}), nil
}

func (r memLeaveRepo) SumUsedDays(ctx context.Context, employeeID string, leaveType domain.LeaveType, year int) (decimal.Decimal, error) {
	leaves, _ := r.FindActiveByEmployeeInYear(ctx, employeeID, year)
	total := decimal.Zero
	for _, l := range leaves {
		if l.LeaveType == string(leaveType) {
			total = total.Add(l.ChargedDays())
		}
	}
	return total, nil
}

func (r memLeaveRepo) HasOverlappingPeriod(_ context.Context, employeeID string, startDate, endDate time.Time, excludeID string) (bool, error) {
	found := r.filter(func(l leave.Leave) bool {
		return l.EmployeeID.String() == employeeID &&
			l.ID.String() != excludeID &&
			l.Status.Active() &&
			!(l.EndDate.Before(startDate) || l.StartDate.After(endDate))
	})
	return len(found) > 0, nil
}

func (r memLeaveRepo) UpdateStatus(_ context.Context, l *leave.Leave) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.leaves[l.ID]
	if !ok || current.Version != l.Version {
		return database.ErrVersionConflict
	}
	l.Version++
	r.s.leaves[l.ID] = *l
	return nil
}

type memEmployeeRepo struct{ s *memStore }

func (r memEmployeeRepo) WithTx(*sql.Tx) employee.Repository { return r }

func (r memEmployeeRepo) Create(_ context.Context, e *employee.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.employees[e.ID] = *e
	return nil
}

func (r memEmployeeRepo) FindAll(context.Context, int, int) ([]employee.Employee, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]employee.Employee, 0, len(r.s.employees))
	for _, e := range r.s.employees {
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func (r memEmployeeRepo) FindByID(_ context.Context, id string) (*employee.Employee, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.employees[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &e, nil
}

func (r memEmployeeRepo) FindByIDForUpdate(ctx context.Context, id string) (*employee.Employee, error) {
	return r.FindByID(ctx, id)
}

func (r memEmployeeRepo) FindByRoles(_ context.Context, roles []domain.Role) ([]employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]employee.Employee, 0)
	for _, e := range r.s.employees {
		for _, role := range roles {
			if e.Role == string(role) {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

func (r memEmployeeRepo) Update(_ context.Context, e *employee.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.employees[e.ID]
	if !ok || current.Version != e.Version {
		return database.ErrVersionConflict
	}
	e.Version++
	r.s.employees[e.ID] = *e
	return nil
}

func (r memEmployeeRepo) UpdateBalance(_ context.Context, e *employee.Employee, newBalance int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.employees[e.ID]
	if !ok || current.Version != e.Version {
		return database.ErrVersionConflict
	}
	current.AnnualLeaveBalance = newBalance
	current.Version++
	r.s.employees[e.ID] = current
	e.AnnualLeaveBalance = newBalance
	e.Version = current.Version
	return nil
}

func (r memEmployeeRepo) DeleteLeavesByEmployee(_ context.Context, id string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for lid, l := range r.s.leaves {
		if l.EmployeeID.String() == id {
			delete(r.s.leaves, lid)
			n++
		}
	}
	return n, nil
}

func (r memEmployeeRepo) Delete(_ context.Context, id string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	parsed := uuid.MustParse(id)
	if _, ok := r.s.employees[parsed]; !ok {
		return 0, nil
	}
	delete(r.s.employees, parsed)
	return 1, nil
}

type memLeaveTypeRepo struct{ s *memStore }

func (r memLeaveTypeRepo) WithTx(*sql.Tx) leavetype.Repository { return r }

func (r memLeaveTypeRepo) Create(_ context.Context, cfg *leavetype.LeaveTypeConfig) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.configs[cfg.LeaveType] = *cfg
	return nil
}

func (r memLeaveTypeRepo) FindAll(context.Context) ([]leavetype.LeaveTypeConfig, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]leavetype.LeaveTypeConfig, 0, len(r.s.configs))
	for _, cfg := range r.s.configs {
		out = append(out, cfg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LeaveType < out[j].LeaveType })
	return out, nil
}

func (r memLeaveTypeRepo) FindActive(ctx context.Context) ([]leavetype.LeaveTypeConfig, error) {
	all, _ := r.FindAll(ctx)
	out := make([]leavetype.LeaveTypeConfig, 0, len(all))
	for _, cfg := range all {
		if cfg.IsActive {
			out = append(out, cfg)
		}
	}
	return out, nil
}

func (r memLeaveTypeRepo) FindByID(_ context.Context, id string) (*leavetype.LeaveTypeConfig, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, cfg := range r.s.configs {
		if cfg.ID.String() == id {
			return &cfg, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r memLeaveTypeRepo) FindByLeaveType(_ context.Context, lt domain.LeaveType) (*leavetype.LeaveTypeConfig, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cfg, ok := r.s.configs[string(lt)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &cfg, nil
}

func (r memLeaveTypeRepo) Update(ctx context.Context, cfg *leavetype.LeaveTypeConfig) error {
	return r.Create(ctx, cfg)
}

func (r memLeaveTypeRepo) Delete(_ context.Context, id string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for key, cfg := range r.s.configs {
		if cfg.ID.String() == id {
			delete(r.s.configs, key)
			return 1, nil
		}
	}
	return 0, nil
}

type memPolicyRepo struct{ s *memStore }

func (r memPolicyRepo) WithTx(*sql.Tx) leavepolicy.Repository { return r }

func (r memPolicyRepo) Create(_ context.Context, p *leavepolicy.LeavePolicy) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.policies = append(r.s.policies, *p)
	return nil
}

func (r memPolicyRepo) FindAll(context.Context) ([]leavepolicy.LeavePolicy, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]leavepolicy.LeavePolicy(nil), r.s.policies...), nil
}

func (r memPolicyRepo) FindByID(_ context.Context, id string) (*leavepolicy.LeavePolicy, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.policies {
		if p.ID.String() == id {
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r memPolicyRepo) FindActiveByLeaveType(_ context.Context, lt domain.LeaveType) (*leavepolicy.LeavePolicy, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.policies {
		if p.Active && p.LeaveType == string(lt) {
			return &p, nil
		}
	}
	return nil, nil
}

func (r memPolicyRepo) Update(_ context.Context, p *leavepolicy.LeavePolicy) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.policies {
		if r.s.policies[i].ID == p.ID {
			r.s.policies[i] = *p
		}
	}
	return nil
}

func (r memPolicyRepo) Delete(_ context.Context, id string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, p := range r.s.policies {
		if p.ID.String() == id {
			r.s.policies = append(r.s.policies[:i], r.s.policies[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type memCounter struct{ s *memStore }

func (c memCounter) GetNextValue(context.Context, string) (int64, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	c.s.seq++
	return c.s.seq, nil
}

type recordingPublisher struct {
	mu       sync.Mutex
	events   []events.LeaveLifecycleEvent
	untraced int
	err      error
}

func (p *recordingPublisher) WithTx(tx *sql.Tx) leave.EventPublisher {
	return &txPublisher{parent: p, tx: tx}
}

func (p *recordingPublisher) PublishLeaveEvent(_ context.Context, event events.LeaveLifecycleEvent) error {
	return p.record(event, false)
}

func (p *recordingPublisher) record(event events.LeaveLifecycleEvent, inTx bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	if !inTx {
		p.untraced++
	}
	return p.err
}

// outsideTx counts events that were not written inside a transaction.
func (p *recordingPublisher) outsideTx() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.untraced
}

type txPublisher struct {
	parent *recordingPublisher
	tx     *sql.Tx
}

func (p *txPublisher) WithTx(tx *sql.Tx) leave.EventPublisher {
	return &txPublisher{parent: p.parent, tx: tx}
}

func (p *txPublisher) PublishLeaveEvent(_ context.Context, event events.LeaveLifecycleEvent) error {
	return p.parent.record(event, p.tx != nil)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType
	}
	return out
}
