package enums

import "fmt"

// AnalyticsEventType is the canonical event name pushed to the collector.
type AnalyticsEventType string

const (
	AnalyticsEventViewItem      AnalyticsEventType = "view_item"
	AnalyticsEventAddToCart     AnalyticsEventType = "add_to_cart"
	AnalyticsEventBeginCheckout AnalyticsEventType = "begin_checkout"
	AnalyticsEventPurchase      AnalyticsEventType = "purchase"
)

var validAnalyticsEventTypes = []AnalyticsEventType{
	AnalyticsEventViewItem,
	AnalyticsEventAddToCart,
	AnalyticsEventBeginCheckout,
	AnalyticsEventPurchase,
}

// IsValid reports whether the value matches the canonical analytics event enum.
func (a AnalyticsEventType) IsValid() bool {
	for _, candidate := range validAnalyticsEventTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAnalyticsEventType converts the raw string to AnalyticsEventType.
func ParseAnalyticsEventType(value string) (AnalyticsEventType, error) {
	for _, candidate := range validAnalyticsEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid analytics event type %q", value)
}
