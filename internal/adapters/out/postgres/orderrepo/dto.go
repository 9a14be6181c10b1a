// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. An order is stored across three tables: orders, its
// immutable item snapshots in order_items, and the append-only
// order_status_history.
package orderrepo

import (
	"time"

	"eventrent/internal/core/domain/model/asset"
	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Calculated volume and weight are denormalized
// for reporting; they are recomputed from items on restore.
type OrderDTO struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID           uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedBy           uuid.UUID  `gorm:"type:uuid;not null"`
	Contact             ContactDTO `gorm:"embedded;embeddedPrefix:contact_"`
	Venue               VenueDTO   `gorm:"embedded;embeddedPrefix:venue_"`
	EventStartDate      time.Time  `gorm:"type:date;not null"`
	EventEndDate        time.Time  `gorm:"type:date;not null"`
	SpecialInstructions string     `gorm:"type:text"`

	CalculatedVolume decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	CalculatedWeight decimal.Decimal `gorm:"type:numeric(12,3);not null"`

	PricingTierID      *uuid.UUID       `gorm:"type:uuid"`
	A2BasePrice        *decimal.Decimal `gorm:"type:numeric(12,2)"`
	A2AdjustedPrice    *decimal.Decimal `gorm:"type:numeric(12,2)"`
	A2AdjustmentReason string           `gorm:"type:text"`
	A2AdjustedBy       *uuid.UUID       `gorm:"type:uuid"`
	PmgMarginPercent   *decimal.Decimal `gorm:"type:numeric(5,2)"`
	PmgMarginAmount    *decimal.Decimal `gorm:"type:numeric(12,2)"`
	FinalTotalPrice    *decimal.Decimal `gorm:"type:numeric(12,2)"`

	Status          int        `gorm:"type:smallint;not null;index"`
	FinancialStatus int        `gorm:"type:smallint;not null"`
	QuotedAt        *time.Time `gorm:"type:timestamptz;index"`
	CreatedAt       time.Time  `gorm:"type:timestamptz;not null;autoCreateTime:false"`
	UpdatedAt       time.Time  `gorm:"type:timestamptz;not null;autoUpdateTime:false"`

	Items   []OrderItemDTO     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History []StatusHistoryDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ContactDTO is embedded in OrderDTO with the contact_ prefix.
type ContactDTO struct {
	Name  string `gorm:"type:varchar(255);not null"`
	Email string `gorm:"type:varchar(255);not null"`
	Phone string `gorm:"type:varchar(50)"`
}

// VenueDTO is embedded in OrderDTO with the venue_ prefix.
type VenueDTO struct {
	Name    string `gorm:"type:varchar(255);not null"`
	Country string `gorm:"type:varchar(100);not null"`
	City    string `gorm:"type:varchar(100);not null"`
	Address string `gorm:"type:text"`
}

// OrderItemDTO is the asset snapshot taken at submission.
type OrderItemDTO struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position           int             `gorm:"type:int;not null"`
	AssetID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	AssetName          string          `gorm:"type:varchar(255);not null"`
	Quantity           int             `gorm:"type:int;not null;check:quantity > 0"`
	VolumePerUnit      decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	WeightPerUnit      decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	Condition          int             `gorm:"type:smallint;not null"`
	RefurbDaysEstimate *int            `gorm:"type:int"`
}

// TableName returns "order_items".
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// StatusHistoryDTO is one audit line. Position keeps entries recorded in the
// same instant in the order they happened.
type StatusHistoryDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Position  int       `gorm:"type:int;not null"`
	Status    int       `gorm:"type:smallint;not null"`
	Notes     string    `gorm:"type:text"`
	UpdatedBy uuid.UUID `gorm:"type:uuid;not null"`
	Timestamp time.Time `gorm:"type:timestamptz;not null"`
}

// TableName returns "order_status_history".
func (StatusHistoryDTO) TableName() string {
	return "order_status_history"
}

func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, OrderItemDTO{
			ID:                 item.ID().Bytes(),
			OrderID:            orderID,
			Position:           i,
			AssetID:            item.AssetID().Bytes(),
			AssetName:          item.AssetName(),
			Quantity:           item.Quantity(),
			VolumePerUnit:      item.VolumePerUnit(),
			WeightPerUnit:      item.WeightPerUnit(),
			Condition:          int(item.Condition()),
			RefurbDaysEstimate: item.RefurbDaysEstimate(),
		})
	}

	var tierID, adjustedBy *uuid.UUID
	if id := o.PricingTierID(); id != nil {
		raw := id.Bytes()
		tierID = &raw
	}
	if id := o.A2AdjustedBy(); id != nil {
		raw := id.Bytes()
		adjustedBy = &raw
	}

	return OrderDTO{
		ID:        orderID,
		CompanyID: o.CompanyID().Bytes(),
		CreatedBy: o.CreatedBy().Bytes(),
		Contact: ContactDTO{
			Name:  o.Contact().Name(),
			Email: o.Contact().Email(),
			Phone: o.Contact().Phone(),
		},
		Venue: VenueDTO{
			Name:    o.Venue().Name(),
			Country: o.Venue().Location().Country(),
			City:    o.Venue().Location().City(),
			Address: o.Venue().Address(),
		},
		EventStartDate:      o.Event().From().Time(),
		EventEndDate:        o.Event().Until().Time(),
		SpecialInstructions: o.SpecialInstructions(),
		CalculatedVolume:    o.CalculatedVolume(),
		CalculatedWeight:    o.CalculatedWeight(),
		PricingTierID:       tierID,
		A2BasePrice:         o.A2BasePrice(),
		A2AdjustedPrice:     o.A2AdjustedPrice(),
		A2AdjustmentReason:  o.A2AdjustmentReason(),
		A2AdjustedBy:        adjustedBy,
		PmgMarginPercent:    o.PmgMarginPercent(),
		PmgMarginAmount:     o.PmgMarginAmount(),
		FinalTotalPrice:     o.FinalTotalPrice(),
		Status:              int(o.Status()),
		FinancialStatus:     int(o.FinancialStatus()),
		QuotedAt:            o.QuotedAt(),
		CreatedAt:           o.CreatedAt(),
		UpdatedAt:           o.UpdatedAt(),
		Items:               items,
		History:             historyFromDomain(o),
	}
}

func historyFromDomain(o *order.Order) []StatusHistoryDTO {
	history := make([]StatusHistoryDTO, 0, len(o.History()))
	for i, h := range o.History() {
		history = append(history, StatusHistoryDTO{
			ID:        h.ID().Bytes(),
			OrderID:   o.ID().Bytes(),
			Position:  i,
			Status:    int(h.Status()),
			Notes:     h.Notes(),
			UpdatedBy: h.UpdatedBy().Bytes(),
			Timestamp: h.Timestamp(),
		})
	}
	return history
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	companyID, err := kernel.UUIDFromBytes(dto.CompanyID[:])
	if err != nil {
		return nil, err
	}
	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	contact, err := order.NewContact(dto.Contact.Name, dto.Contact.Email, dto.Contact.Phone)
	if err != nil {
		return nil, err
	}
	loc, err := kernel.NewLocation(dto.Venue.Country, dto.Venue.City)
	if err != nil {
		return nil, err
	}
	venue, err := order.NewVenue(dto.Venue.Name, loc, dto.Venue.Address)
	if err != nil {
		return nil, err
	}
	event, err := kernel.NewDateRange(kernel.DateOf(dto.EventStartDate), kernel.DateOf(dto.EventEndDate))
	if err != nil {
		return nil, err
	}

	tierID, err := optionalUUID(dto.PricingTierID)
	if err != nil {
		return nil, err
	}
	adjustedBy, err := optionalUUID(dto.A2AdjustedBy)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	history := make([]order.HistoryEntry, 0, len(dto.History))
	for _, historyDTO := range dto.History {
		entry, historyErr := historyToDomain(historyDTO)
		if historyErr != nil {
			return nil, historyErr
		}
		history = append(history, entry)
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                  id,
		CompanyID:           companyID,
		CreatedBy:           createdBy,
		Contact:             contact,
		Venue:               venue,
		Event:               event,
		SpecialInstructions: dto.SpecialInstructions,
		Items:               items,
		PricingTierID:       tierID,
		A2BasePrice:         dto.A2BasePrice,
		A2AdjustedPrice:     dto.A2AdjustedPrice,
		A2AdjustmentReason:  dto.A2AdjustmentReason,
		A2AdjustedBy:        adjustedBy,
		PmgMarginPercent:    dto.PmgMarginPercent,
		PmgMarginAmount:     dto.PmgMarginAmount,
		FinalTotalPrice:     dto.FinalTotalPrice,
		Status:              order.Status(dto.Status),
		FinancialStatus:     order.FinancialStatus(dto.FinancialStatus),
		QuotedAt:            dto.QuotedAt,
		CreatedAt:           dto.CreatedAt,
		UpdatedAt:           dto.UpdatedAt,
		History:             history,
	})
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil //nolint:nilnil // absent column
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func itemToDomain(dto OrderItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	assetID, err := kernel.UUIDFromBytes(dto.AssetID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreItem(
		id,
		assetID,
		dto.AssetName,
		dto.Quantity,
		dto.VolumePerUnit,
		dto.WeightPerUnit,
		asset.Condition(dto.Condition),
		dto.RefurbDaysEstimate,
	)
}

func historyToDomain(dto StatusHistoryDTO) (order.HistoryEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.HistoryEntry{}, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.HistoryEntry{}, err
	}
	updatedBy, err := kernel.UUIDFromBytes(dto.UpdatedBy[:])
	if err != nil {
		return order.HistoryEntry{}, err
	}

	return order.RestoreHistoryEntry(id, orderID, order.Status(dto.Status), dto.Notes, updatedBy, dto.Timestamp), nil
}
