package notification

import (
	"context"
	"fmt"
	"strings"

	"go-leave/internal/domain"
	"go-leave/internal/employee"
	"go-leave/internal/events"

	"go.uber.org/zap"
)

// ApproverDirectory lists the people who decide on leave requests.
// employee.Repository satisfies it.
type ApproverDirectory interface {
	FindByRoles(ctx context.Context, roles []domain.Role) ([]employee.Employee, error)
}

type message struct {
	to      string
	subject string
	body    string
}

// LeaveNotifier turns leave lifecycle events into emails.
type LeaveNotifier struct {
	dispatcher Dispatcher
	approvers  ApproverDirectory
	logger     *zap.Logger
}

func NewLeaveNotifier(dispatcher Dispatcher, approvers ApproverDirectory, logger ...*zap.Logger) *LeaveNotifier {
	l := zap.L().Named("notification.leave")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.leave")
	}
	return &LeaveNotifier{dispatcher: dispatcher, approvers: approvers, logger: l}
}

// HandleLeaveEvent sends every email the event calls for. Only a failed
// approver lookup is returned; individual send failures are logged by the
// dispatcher and counted here.
func (n *LeaveNotifier) HandleLeaveEvent(ctx context.Context, event events.LeaveLifecycleEvent) error {
	messages, err := n.messagesFor(ctx, event)
	if err != nil {
		n.logger.Error("build leave notifications failed",
			zap.String("leave_id", event.LeaveID),
			zap.String("event_type", event.EventType),
			zap.Error(err),
		)
		return err
	}
	if len(messages) == 0 {
		n.logger.Debug("no notifications for leave event",
			zap.String("leave_id", event.LeaveID),
			zap.String("event_type", event.EventType),
		)
		return nil
	}

	failed := 0
	for _, m := range messages {
		if err := n.dispatcher.SendNotification(ctx, m.to, m.subject, m.body); err != nil {
			failed++
		}
	}
	n.logger.Info("leave notifications dispatched",
		zap.String("leave_id", event.LeaveID),
		zap.String("event_type", event.EventType),
		zap.Int("sent", len(messages)-failed),
		zap.Int("failed", failed),
	)
	return nil
}

func (n *LeaveNotifier) messagesFor(ctx context.Context, event events.LeaveLifecycleEvent) ([]message, error) {
	switch event.EventType {
	case events.LeaveCreated:
		approvers, err := n.approvers.FindByRoles(ctx, []domain.Role{domain.RoleAdmin, domain.RoleHRManager})
		if err != nil {
			return nil, err
		}
		out := []message{{
			to:      event.EmployeeEmail,
			subject: fmt.Sprintf("Leave request %s submitted", event.ReferenceNo),
			body: fmt.Sprintf("Hi %s,\n\nYour %s request from %s to %s (%d day(s)) was submitted and is waiting for approval.\n",
				event.EmployeeName, event.LeaveType, event.StartDate, event.EndDate, event.NumberOfDays),
		}}
		seen := map[string]struct{}{strings.ToLower(event.EmployeeEmail): {}}
		for _, a := range approvers {
			key := strings.ToLower(a.Email)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, message{
				to:      a.Email,
				subject: fmt.Sprintf("New leave request %s from %s", event.ReferenceNo, event.EmployeeName),
				body: fmt.Sprintf("Hi %s,\n\n%s requested %s from %s to %s (%d day(s)).\n",
					a.FullName(), event.EmployeeName, event.LeaveType, event.StartDate, event.EndDate, event.NumberOfDays),
			})
		}
		return out, nil

	case events.LeaveApproved:
		return []message{{
			to:      event.EmployeeEmail,
			subject: fmt.Sprintf("Leave request %s approved", event.ReferenceNo),
			body: fmt.Sprintf("Hi %s,\n\nYour %s request from %s to %s was approved.\n",
				event.EmployeeName, event.LeaveType, event.StartDate, event.EndDate),
		}}, nil

	case events.LeaveRejected:
		return []message{{
			to:      event.EmployeeEmail,
			subject: fmt.Sprintf("Leave request %s rejected", event.ReferenceNo),
			body: fmt.Sprintf("Hi %s,\n\nYour %s request from %s to %s was rejected.\nReason: %s\n",
				event.EmployeeName, event.LeaveType, event.StartDate, event.EndDate, event.RejectionReason),
		}}, nil
	}
	return nil, nil
}
