package entities

import (
	"slices"
	"time"
)

type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "PENDING"
	DeliveryEnRoute   DeliveryStatus = "EN_ROUTE"
	DeliveryDelivered DeliveryStatus = "DELIVERED"
	DeliveryFailed    DeliveryStatus = "FAILED"
)

func (s DeliveryStatus) Valid() bool {
	return slices.Contains([]DeliveryStatus{DeliveryPending, DeliveryEnRoute, DeliveryDelivered, DeliveryFailed}, s)
}

// Delivery is at most one per order.
type Delivery struct {
	OrderID       int64
	DriverID      *int64
	Status        DeliveryStatus
	DepartureTime *time.Time
	ExpectedTime  *time.Time
	DeliveredTime *time.Time
	Observation   *string
}

type DeliveryPatch struct {
	DriverID      Optional[int64]
	Status        Optional[DeliveryStatus]
	DepartureTime Optional[time.Time]
	ExpectedTime  Optional[time.Time]
	Observation   Optional[string]
}

func (p DeliveryPatch) Validate() error {
	if p.Status.IsNull() {
		return Errorf(ErrValidation, "delivery status cannot be null")
	}
	if s := p.Status.Value; s != nil {
		if !s.Valid() {
			return Errorf(ErrValidation, "unknown delivery status %q", *s)
		}
		if *s == DeliveryDelivered {
			return Errorf(ErrValidation, "delivery is marked delivered only by confirming it")
		}
	}
	if p.DriverID.Value != nil && *p.DriverID.Value <= 0 {
		return Errorf(ErrValidation, "driver id must be positive")
	}
	return nil
}

// Merge applies supplied fields only.
func (p DeliveryPatch) Merge(d Delivery) Delivery {
	p.DriverID.Apply(&d.DriverID)
	if p.Status.Value != nil {
		d.Status = *p.Status.Value
	}
	p.DepartureTime.Apply(&d.DepartureTime)
	p.ExpectedTime.Apply(&d.ExpectedTime)
	p.Observation.Apply(&d.Observation)
	return d
}
