package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/frahmantamala/inventory-tracker/internal"
	"github.com/frahmantamala/inventory-tracker/internal/auth"
	inventoryDatamodel "github.com/frahmantamala/inventory-tracker/internal/core/datamodel/inventory"
	"github.com/frahmantamala/inventory-tracker/internal/core/events"
	"github.com/frahmantamala/inventory-tracker/internal/core/item"
	coreUser "github.com/frahmantamala/inventory-tracker/internal/core/user"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/frahmantamala/inventory-tracker/internal/inventory"

// RepositoryAPI persists item rows. GetByID returns nil, nil when the item
// does not exist. Listings are ordered by insertion.
type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*inventoryDatamodel.InventoryItem, error)
	GetByDepartment(ctx context.Context, department string) ([]*inventoryDatamodel.InventoryItem, error)
	GetByID(ctx context.Context, itemID string) (*inventoryDatamodel.InventoryItem, error)
	Create(ctx context.Context, row *inventoryDatamodel.InventoryItem) error
	Update(ctx context.Context, row *inventoryDatamodel.InventoryItem) error
	Delete(ctx context.Context, itemID string) error
}

type Option func(*Store)

// WithClock replaces the time source used to stamp LastUpdated.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithEventPublisher(p events.Publisher) Option {
	return func(s *Store) { s.events = p }
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Store) { s.tracer = t }
}

// Store is the single authority over inventory items. Every command and read
// holds one mutex, so callers always observe the latest committed state.
type Store struct {
	mu     sync.Mutex
	repo   RepositoryAPI
	events events.Publisher
	logger *slog.Logger
	tracer trace.Tracer
	now    func() time.Time
}

func NewStore(repo RepositoryAPI, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		repo:   repo,
		logger: logger,
		tracer: otel.Tracer(tracerName),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// stamp returns a timestamp strictly after prev.
func (s *Store) stamp(prev time.Time) time.Time {
	ts := s.now().UTC().Truncate(time.Microsecond)
	if !ts.After(prev) {
		ts = prev.Add(time.Microsecond)
	}
	return ts
}

func (s *Store) startSpan(ctx context.Context, name string, requester *coreUser.User) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{}
	if requester != nil {
		attrs = append(attrs,
			attribute.String("requester.id", requester.ID),
			attribute.String("requester.department", string(requester.Department)),
			attribute.Bool("requester.is_admin", requester.IsAdmin),
		)
	}
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddItem creates an item owned by dto.Department on behalf of requester.
func (s *Store) AddItem(ctx context.Context, dto CreateItemDTO, requester *coreUser.User) (it *item.InventoryItem, err error) {
	ctx, span := s.startSpan(ctx, "inventory.AddItem", requester)
	defer func() { endSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := auth.Authorize(requester, coreUser.PermissionAdd, dto.Department); err != nil {
		s.logger.WarnContext(ctx, "add item rejected", "user_id", userID(requester), "department", dto.Department, "error", err)
		return nil, err
	}
	if dto.Quantity < 0 {
		return nil, internal.ErrNegativeQuantity
	}

	row := &inventoryDatamodel.InventoryItem{
		ItemID:      uuid.NewString(),
		Name:        dto.Name,
		Description: dto.Description,
		Department:  string(dto.Department),
		Quantity:    dto.Quantity,
		Category:    dto.Category,
		Location:    dto.Location,
		Status:      string(item.DeriveStatus(dto.Quantity)),
		LastUpdated: s.stamp(time.Time{}),
		AddedBy:     requester.ID,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, internal.NewInternalError("failed to create item", err)
	}

	span.SetAttributes(attribute.String("item.id", row.ItemID))
	s.logger.InfoContext(ctx, "item added", "item_id", row.ItemID, "department", row.Department, "quantity", row.Quantity, "user_id", requester.ID)

	created := FromDataModel(row)
	s.publish(ctx, events.NewItemCreatedEvent(created.ID, created.Name, string(created.Department), created.Quantity, string(created.Status), requester.ID, created.LastUpdated))
	return created, nil
}

// UpdateItem applies patch to the item with id. Only the fields present in
// patch change; status and LastUpdated are always recomputed.
func (s *Store) UpdateItem(ctx context.Context, id string, patch UpdateItemDTO, requester *coreUser.User) (it *item.InventoryItem, err error) {
	ctx, span := s.startSpan(ctx, "inventory.UpdateItem", requester)
	span.SetAttributes(attribute.String("item.id", id))
	defer func() { endSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load item", err)
	}
	if row == nil {
		return nil, internal.ErrItemNotFound
	}

	if err := auth.Authorize(requester, coreUser.PermissionEdit, coreUser.Department(row.Department)); err != nil {
		s.logger.WarnContext(ctx, "update item rejected", "item_id", id, "user_id", userID(requester), "error", err)
		return nil, err
	}
	if patch.Department != nil && !auth.InScope(requester, *patch.Department) {
		return nil, internal.ErrOutOfScope
	}
	if patch.Quantity != nil && *patch.Quantity < 0 {
		return nil, internal.ErrNegativeQuantity
	}

	previousStatus := row.Status
	if patch.Name != nil {
		row.Name = *patch.Name
	}
	if patch.Description != nil {
		row.Description = *patch.Description
	}
	if patch.Department != nil {
		row.Department = string(*patch.Department)
	}
	if patch.Quantity != nil {
		row.Quantity = *patch.Quantity
	}
	if patch.Category != nil {
		row.Category = *patch.Category
	}
	if patch.Location != nil {
		row.Location = *patch.Location
	}
	row.Status = string(item.DeriveStatus(row.Quantity))
	row.LastUpdated = s.stamp(row.LastUpdated.UTC())

	if err := s.repo.Update(ctx, row); err != nil {
		return nil, internal.NewInternalError("failed to update item", err)
	}

	updated := FromDataModel(row)
	s.logger.InfoContext(ctx, "item updated", "item_id", id, "quantity", updated.Quantity, "status", updated.Status, "user_id", requester.ID)

	s.publish(ctx, events.NewItemUpdatedEvent(updated.ID, updated.Name, string(updated.Department), updated.Quantity, string(updated.Status), requester.ID, updated.LastUpdated))
	if previousStatus != row.Status {
		s.publish(ctx, events.NewStockStatusChangedEvent(updated.ID, updated.Name, string(updated.Department), updated.Quantity, previousStatus, row.Status, requester.ID, updated.LastUpdated))
	}
	return updated, nil
}

func (s *Store) DeleteItem(ctx context.Context, id string, requester *coreUser.User) (err error) {
	ctx, span := s.startSpan(ctx, "inventory.DeleteItem", requester)
	span.SetAttributes(attribute.String("item.id", id))
	defer func() { endSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return internal.NewInternalError("failed to load item", err)
	}
	if row == nil {
		return internal.ErrItemNotFound
	}

	if err := auth.Authorize(requester, coreUser.PermissionDelete, coreUser.Department(row.Department)); err != nil {
		s.logger.WarnContext(ctx, "delete item rejected", "item_id", id, "user_id", userID(requester), "error", err)
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return internal.NewInternalError("failed to delete item", err)
	}

	s.logger.InfoContext(ctx, "item deleted", "item_id", id, "user_id", requester.ID)
	s.publish(ctx, events.NewItemDeletedEvent(row.ItemID, row.Name, row.Department, row.Quantity, row.Status, requester.ID, s.now().UTC()))
	return nil
}

// AllItems returns every item in insertion order without any scope check.
func (s *Store) AllItems(ctx context.Context) ([]*item.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, internal.NewInternalError("failed to list items", err)
	}
	return fromDataModels(rows), nil
}

func (s *Store) ItemsByDepartment(ctx context.Context, department coreUser.Department) ([]*item.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.repo.GetByDepartment(ctx, string(department))
	if err != nil {
		return nil, internal.NewInternalError("failed to list department items", err)
	}
	return fromDataModels(rows), nil
}

// ItemByID returns internal.ErrItemNotFound when no item has id.
func (s *Store) ItemByID(ctx context.Context, id string) (*item.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load item", err)
	}
	if row == nil {
		return nil, internal.ErrItemNotFound
	}
	return FromDataModel(row), nil
}

// DepartmentSummary counts items by status for one department, or for all
// of them when scope is item.ScopeAll. It is computed from current state.
func (s *Store) DepartmentSummary(ctx context.Context, scope string) (item.DepartmentSummary, error) {
	var (
		items []*item.InventoryItem
		err   error
	)
	switch {
	case scope == item.ScopeAll:
		items, err = s.AllItems(ctx)
	case coreUser.Department(scope).IsValid():
		items, err = s.ItemsByDepartment(ctx, coreUser.Department(scope))
	default:
		return item.DepartmentSummary{}, internal.ErrInvalidDepartment.WithMessage(fmt.Sprintf("unknown department %q", scope))
	}
	if err != nil {
		return item.DepartmentSummary{}, err
	}
	return item.Summarize(scope, items), nil
}

// VisibleItems is the requester's scoped view of the current collection.
func (s *Store) VisibleItems(ctx context.Context, requester *coreUser.User) ([]*item.InventoryItem, error) {
	all, err := s.AllItems(ctx)
	if err != nil {
		return nil, err
	}
	return auth.VisibleItems(requester, all), nil
}

// publish runs subscribers after the change is committed. Subscriber
// failures are logged and never undo the command.
func (s *Store) publish(ctx context.Context, ev events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishSync(ctx, ev); err != nil {
		s.logger.ErrorContext(ctx, "event subscriber failed", "event_type", ev.EventType(), "error", err)
	}
}

func userID(u *coreUser.User) string {
	if u == nil {
		return ""
	}
	return u.ID
}
