package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeItemCreated        = "inventory.item.created"
	EventTypeItemUpdated        = "inventory.item.updated"
	EventTypeItemDeleted        = "inventory.item.deleted"
	EventTypeStockStatusChanged = "inventory.stock.status_changed"
)

// ItemEvent describes a committed change to one inventory item.
type ItemEvent struct {
	BaseEvent
	ItemID     string `json:"item_id"`
	ItemName   string `json:"item_name"`
	Department string `json:"department"`
	Quantity   int    `json:"quantity"`
	Status     string `json:"status"`
	ActorID    string `json:"actor_id"`
}

func newItemEvent(eventType, itemID, name, department string, quantity int, status, actorID string, at time.Time) *ItemEvent {
	return &ItemEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.NewString(),
			Type:      eventType,
			Timestamp: at,
			Data: map[string]interface{}{
				"item_id":    itemID,
				"item_name":  name,
				"department": department,
				"quantity":   quantity,
				"status":     status,
				"actor_id":   actorID,
			},
		},
		ItemID:     itemID,
		ItemName:   name,
		Department: department,
		Quantity:   quantity,
		Status:     status,
		ActorID:    actorID,
	}
}

func NewItemCreatedEvent(itemID, name, department string, quantity int, status, actorID string, at time.Time) *ItemEvent {
	return newItemEvent(EventTypeItemCreated, itemID, name, department, quantity, status, actorID, at)
}

func NewItemUpdatedEvent(itemID, name, department string, quantity int, status, actorID string, at time.Time) *ItemEvent {
	return newItemEvent(EventTypeItemUpdated, itemID, name, department, quantity, status, actorID, at)
}

func NewItemDeletedEvent(itemID, name, department string, quantity int, status, actorID string, at time.Time) *ItemEvent {
	return newItemEvent(EventTypeItemDeleted, itemID, name, department, quantity, status, actorID, at)
}

type StockStatusChangedEvent struct {
	*ItemEvent
	PreviousStatus string `json:"previous_status"`
}

func NewStockStatusChangedEvent(itemID, name, department string, quantity int, previous, current, actorID string, at time.Time) *StockStatusChangedEvent {
	ev := newItemEvent(EventTypeStockStatusChanged, itemID, name, department, quantity, current, actorID, at)
	ev.Data["previous_status"] = previous
	return &StockStatusChangedEvent{ItemEvent: ev, PreviousStatus: previous}
}
