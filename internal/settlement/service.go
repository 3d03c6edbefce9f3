package settlement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/monez-app/monez/internal/notification"
)

// MembershipChecker reports whether a user belongs to a group. It lets the
// service authorize access to group settlements without depending on the
// group package.
type MembershipChecker interface {
	IsMember(ctx context.Context, groupID, userID string) (bool, error)
}

// MembershipFunc adapts a function to the MembershipChecker interface.
type MembershipFunc func(ctx context.Context, groupID, userID string) (bool, error)

// IsMember calls f.
func (f MembershipFunc) IsMember(ctx context.Context, groupID, userID string) (bool, error) {
	return f(ctx, groupID, userID)
}

// Service records settlements against a group and tracks their completion.
type Service struct {
	repo       Repository
	notifier   notification.Notifier
	membership MembershipChecker
}

// NewService constructs a settlement recording service. membership may be nil,
// in which case only the settlement's parties and creator can access it.
func NewService(repo Repository, notifier notification.Notifier, membership MembershipChecker) *Service {
	return &Service{repo: repo, notifier: notifier, membership: membership}
}

// RecordInput captures the data needed to record a settlement.
type RecordInput struct {
	GroupID    string
	FromUserID string
	ToUserID   string
	Amount     float64
	Currency   string
	Note       string
	CreatedBy  string
}

// Record validates and persists a pending settlement.
func (s *Service) Record(ctx context.Context, input RecordInput) (Record, error) {
	if err := Validate(Settlement{
		From:     input.FromUserID,
		To:       input.ToUserID,
		Amount:   input.Amount,
		Currency: input.Currency,
	}); err != nil {
		return Record{}, err
	}

	record := Record{
		ID:         uuid.New().String(),
		GroupID:    input.GroupID,
		FromUserID: input.FromUserID,
		ToUserID:   input.ToUserID,
		Amount:     input.Amount,
		Currency:   input.Currency,
		Note:       input.Note,
		Status:     StatusPending,
		CreatedBy:  input.CreatedBy,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return Record{}, err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindSettlementRecorded,
			Destination: record.ToUserID,
			Body:        fmt.Sprintf("%s recorded a settlement of %.2f %s to you", record.FromUserID, record.Amount, record.Currency),
		})
	}

	return record, nil
}

// authorize hides records from users who are neither a party to the
// settlement nor a member of its group. Unauthorized access reads as not
// found so record ids cannot be probed.
func (s *Service) authorize(ctx context.Context, record Record, userID string) error {
	if userID == record.FromUserID || userID == record.ToUserID || userID == record.CreatedBy {
		return nil
	}
	if s.membership != nil && record.GroupID != "" {
		ok, err := s.membership.IsMember(ctx, record.GroupID, userID)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return ErrRecordNotFound
}

// Complete confirms payment for a pending settlement on behalf of userID.
func (s *Service) Complete(ctx context.Context, userID, id string) (Record, error) {
	record, err := s.Get(ctx, userID, id)
	if err != nil {
		return Record{}, err
	}

	settledAt := time.Now().UTC()
	if err := s.repo.MarkCompleted(ctx, record.ID, settledAt); err != nil {
		return Record{}, err
	}

	record, err = s.repo.Get(ctx, record.ID)
	if err != nil {
		return Record{}, err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindSettlementCompleted,
			Destination: record.FromUserID,
			Body:        fmt.Sprintf("Your settlement of %.2f %s was confirmed", record.Amount, record.Currency),
		})
	}

	return record, nil
}

// Get fetches one settlement record visible to userID.
func (s *Service) Get(ctx context.Context, userID, id string) (Record, error) {
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return Record{}, err
	}
	if err := s.authorize(ctx, record, userID); err != nil {
		return Record{}, err
	}
	return record, nil
}

// ListByGroup returns all settlements recorded for a group.
func (s *Service) ListByGroup(ctx context.Context, groupID string) ([]Record, error) {
	return s.repo.ListByGroup(ctx, groupID)
}
