package devicetoken

import (
	"context"
	"strings"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/devicetoken"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/push"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase"
)

const (
	domainTag = "DEVICE_TOKEN"
	pushTag   = "PUSH"
)

type RegisterInput struct {
	Token    string
	Platform string
	DeviceID *string
	ShopID   *uint
}

type UpdateInput struct {
	Platform *string
	DeviceID *string
	IsActive *bool
}

// SendInput targets one user or the whole selected shop.
type SendInput struct {
	ShopID uint
	UserID *uint
	Title  string
	Body   string
	Data   map[string]string
}

type SendResult struct {
	MessageID string `json:"message_id,omitempty"`
	Success   int    `json:"success"`
	Failure   int    `json:"failure"`
}

type MemberFinder interface {
	GetMembership(ctx context.Context, shopID, userID uint) (*models.ShopUser, error)
}

type Service struct {
	repo    domain.Repository
	members MemberFinder
	sender  push.Sender
	log     *zap.Logger
}

func NewService(repo domain.Repository, members MemberFinder, sender push.Sender, log *zap.Logger) *Service {
	return &Service{repo: repo, members: members, sender: sender, log: log}
}

// Register inserts the token or moves an existing one to the caller. A shop id binds
// the device to that shop's broadcasts and requires membership.
func (s *Service) Register(ctx context.Context, actor usecase.Actor, in RegisterInput) (*models.DevicePushToken, error) {
	if in.ShopID != nil {
		if _, err := s.members.GetMembership(ctx, *in.ShopID, actor.UserID); err != nil {
			if usecase.IsNotFound(err) {
				return nil, httperr.NotFound(domainTag, "Shop not found for this user.")
			}
			return nil, usecase.StoreError(domainTag, err)
		}
	}

	userID := actor.UserID
	t := &models.DevicePushToken{
		UserID:   &userID,
		ShopID:   in.ShopID,
		DeviceID: in.DeviceID,
		Token:    strings.TrimSpace(in.Token),
		Platform: strings.ToLower(strings.TrimSpace(in.Platform)),
		IsActive: true,
	}
	if err := s.repo.Upsert(ctx, t); err != nil {
		return nil, usecase.StoreError(domainTag, err)
	}
	return t, nil
}

func (s *Service) Mine(ctx context.Context, actor usecase.Actor) ([]models.DevicePushToken, error) {
	tokens, err := s.repo.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, usecase.StoreError(domainTag, err)
	}
	return tokens, nil
}

func (s *Service) owned(ctx context.Context, actor usecase.Actor, id uint) (*models.DevicePushToken, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, usecase.StoreError(domainTag, err)
	}
	if t.UserID == nil || !actor.CanActOn(*t.UserID) {
		return nil, httperr.Forbidden(domainTag, "This device token belongs to another user.")
	}
	return t, nil
}

func (s *Service) Update(ctx context.Context, actor usecase.Actor, id uint, in UpdateInput) (*models.DevicePushToken, error) {
	t, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if in.Platform != nil {
		t.Platform = strings.ToLower(strings.TrimSpace(*in.Platform))
	}
	if in.DeviceID != nil {
		t.DeviceID = in.DeviceID
	}
	if in.IsActive != nil {
		t.IsActive = *in.IsActive
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, usecase.StoreError(domainTag, err)
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, actor usecase.Actor, id uint) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	return usecase.StoreError(domainTag, s.repo.Delete(ctx, id))
}

// Send delivers to every active token of the target. A single token yields a message
// id, several yield success and failure counts.
func (s *Service) Send(ctx context.Context, in SendInput) (*SendResult, error) {
	var userID, shopID *uint
	if in.UserID != nil {
		if _, err := s.members.GetMembership(ctx, in.ShopID, *in.UserID); err != nil {
			if usecase.IsNotFound(err) {
				return nil, httperr.NotFound(pushTag, "User is not a member of this shop.")
			}
			return nil, usecase.StoreError(pushTag, err)
		}
		userID = in.UserID
	} else {
		id := in.ShopID
		shopID = &id
	}

	tokens, err := s.repo.ActiveTokens(ctx, userID, shopID)
	if err != nil {
		return nil, usecase.StoreError(pushTag, err)
	}
	if len(tokens) == 0 {
		return nil, httperr.NotFound(pushTag, "No active device tokens for the target.")
	}

	msg := push.Message{Title: in.Title, Body: in.Body, Data: in.Data}

	if len(tokens) == 1 {
		id, err := s.sender.Send(ctx, tokens[0], msg)
		if err != nil {
			return nil, deliveryFailed(err)
		}
		return &SendResult{MessageID: id, Success: 1}, nil
	}

	ok, failed, err := s.sender.SendMulticast(ctx, tokens, msg)
	if err != nil {
		return nil, deliveryFailed(err)
	}
	s.log.Info("push multicast", zap.Int("success", ok), zap.Int("failure", failed))
	return &SendResult{Success: ok, Failure: failed}, nil
}

func deliveryFailed(err error) error {
	return httperr.Internal(pushTag, err).WithCode("DELIVERY_FAILED")
}
