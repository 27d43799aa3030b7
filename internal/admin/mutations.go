package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wulf-order-services/internal/queue"

	"go.uber.org/zap"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

var (
	ErrEntityNotFound  = errors.New("entity not found")
	ErrAddNotSupported = errors.New("tab does not support adding rows")
	ErrInvalidEntity   = errors.New("invalid entity payload")
)

// MutationResult reports a requested change. Persisted is always false: the
// dataset is sample data and requests are only logged and forwarded.
type MutationResult struct {
	Tab       Tab    `json:"tab"`
	Action    Action `json:"action"`
	ID        string `json:"id,omitempty"`
	Persisted bool   `json:"persisted"`
	Message   string `json:"message"`
}

type mutationPayload struct {
	Tab    Tab    `json:"tab"`
	Action Action `json:"action"`
	ID     string `json:"id,omitempty"`
	Entity Entity `json:"entity,omitempty"`
}

type Service struct {
	dataset   Dataset
	submitter queue.Submitter
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(dataset Dataset, submitter queue.Submitter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{dataset: dataset, submitter: submitter, logger: logger, now: time.Now}
}

func (s *Service) Dataset() Dataset { return s.dataset }

func (s *Service) Filter(tab Tab, term, category string) ([]Entity, error) {
	return s.dataset.Filter(tab, term, category)
}

func (s *Service) Summary() Summary { return s.dataset.Summary() }

// DecodeEntity unmarshals raw into the row type of tab. Unknown fields are
// rejected.
func DecodeEntity(tab Tab, raw []byte) (Entity, error) {
	var target Entity
	switch tab {
	case TabStaff:
		target = &Staff{}
	case TabSessions:
		target = &GuestSession{}
	case TabTables:
		target = &RestaurantTable{}
	case TabMenu:
		target = &MenuItem{}
	case TabStock:
		target = &StockItem{}
	case TabTransactions:
		target = &Transaction{}
	case TabReservations:
		target = &Reservation{}
	case TabStockTransactions:
		target = &StockTransaction{}
	default:
		return nil, ErrUnknownTab
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntity, err)
	}

	switch v := target.(type) {
	case *Staff:
		return *v, nil
	case *GuestSession:
		return *v, nil
	case *RestaurantTable:
		return *v, nil
	case *MenuItem:
		return *v, nil
	case *StockItem:
		return *v, nil
	case *Transaction:
		return *v, nil
	case *Reservation:
		return *v, nil
	case *StockTransaction:
		return *v, nil
	}
	return nil, ErrUnknownTab
}

func (s *Service) Create(ctx context.Context, clientID string, entity Entity) (MutationResult, error) {
	info, err := LookupTab(string(entity.Tab()))
	if err != nil {
		return MutationResult{}, err
	}
	if !info.CanAdd {
		return MutationResult{}, ErrAddNotSupported
	}
	return s.record(ctx, clientID, mutationPayload{Tab: info.Key, Action: ActionCreate, ID: entity.EntityID(), Entity: entity}), nil
}

func (s *Service) Update(ctx context.Context, clientID, id string, entity Entity) (MutationResult, error) {
	tab := entity.Tab()
	if _, ok, err := s.dataset.Find(tab, id); err != nil {
		return MutationResult{}, err
	} else if !ok {
		return MutationResult{}, ErrEntityNotFound
	}
	return s.record(ctx, clientID, mutationPayload{Tab: tab, Action: ActionUpdate, ID: id, Entity: entity}), nil
}

func (s *Service) Delete(ctx context.Context, clientID string, tab Tab, id string) (MutationResult, error) {
	if _, ok, err := s.dataset.Find(tab, id); err != nil {
		return MutationResult{}, err
	} else if !ok {
		return MutationResult{}, ErrEntityNotFound
	}
	return s.record(ctx, clientID, mutationPayload{Tab: tab, Action: ActionDelete, ID: id}), nil
}

func (s *Service) record(ctx context.Context, clientID string, payload mutationPayload) MutationResult {
	s.logger.Info("admin mutation requested",
		zap.String("tab", string(payload.Tab)),
		zap.String("action", string(payload.Action)),
		zap.String("id", payload.ID),
		zap.String("clientId", clientID),
	)

	if s.submitter != nil {
		env := queue.Envelope{
			Kind:      queue.KindAdminMutation,
			ID:        fmt.Sprintf("%s:%s:%s", payload.Tab, payload.Action, payload.ID),
			ClientID:  clientID,
			Payload:   payload,
			CreatedAt: s.now().UTC(),
		}
		if err := s.submitter.Submit(ctx, env); err != nil {
			s.logger.Warn("admin mutation submit failed", zap.String("tab", string(payload.Tab)), zap.Error(err))
		}
	}

	return MutationResult{
		Tab:       payload.Tab,
		Action:    payload.Action,
		ID:        payload.ID,
		Persisted: false,
		Message:   fmt.Sprintf("%s %s logged, nothing was saved", payload.Tab, payload.Action),
	}
}
