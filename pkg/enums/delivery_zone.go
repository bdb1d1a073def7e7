package enums

import "fmt"

// DeliveryZone selects the flat cash-on-delivery surcharge for an order.
type DeliveryZone string

const (
	DeliveryZoneInsideCity  DeliveryZone = "inside_city"
	DeliveryZoneOutsideCity DeliveryZone = "outside_city"
)

var validDeliveryZones = []DeliveryZone{
	DeliveryZoneInsideCity,
	DeliveryZoneOutsideCity,
}

// IsValid reports whether the value matches the canonical delivery zone enum.
func (z DeliveryZone) IsValid() bool {
	for _, candidate := range validDeliveryZones {
		if candidate == z {
			return true
		}
	}
	return false
}

// ParseDeliveryZone converts the raw string to DeliveryZone.
func ParseDeliveryZone(value string) (DeliveryZone, error) {
	for _, candidate := range validDeliveryZones {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid delivery zone %q", value)
}
