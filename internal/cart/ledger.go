package cart

// LineItem is the snapshot of one product entry in the cart. Prices are
// whole currency units (BDT), never fractional.
type LineItem struct {
	ProductID   string `json:"product_id" validate:"required"`
	ProductName string `json:"product_name" validate:"required"`
	UnitPrice   int    `json:"unit_price" validate:"gte=0"`
	Quantity    int    `json:"quantity" validate:"gte=1"`
	ImageRef    string `json:"image_ref"`
	ColorLabel  string `json:"color_label"`
}

// Ledger is the ordered in-memory cart. Insertion order is preserved for
// display and duplicate products stay as separate entries; the storefront
// never merges by product id.
type Ledger struct {
	items []LineItem
}

// NewLedger builds a ledger from the given items, normalizing quantities
// below 1 up to 1.
func NewLedger(items ...LineItem) *Ledger {
	l := &Ledger{}
	for _, item := range items {
		l.Add(item)
	}
	return l
}

// Add appends the item unconditionally.
func (l *Ledger) Add(item LineItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	l.items = append(l.items, item)
}

// Remove deletes the entry at index; out-of-range indices are ignored.
func (l *Ledger) Remove(index int) {
	if index < 0 || index >= len(l.items) {
		return
	}
	l.items = append(l.items[:index], l.items[index+1:]...)
}

// SetQuantity replaces the quantity at index, clamping to a minimum of 1;
// out-of-range indices are ignored.
func (l *Ledger) SetQuantity(index, qty int) {
	if index < 0 || index >= len(l.items) {
		return
	}
	if qty < 1 {
		qty = 1
	}
	l.items[index].Quantity = qty
}

// Total returns the sum of unit price times quantity across all entries.
func (l *Ledger) Total() int {
	var total int
	for _, item := range l.items {
		total += item.UnitPrice * item.Quantity
	}
	return total
}

// Len reports the number of entries.
func (l *Ledger) Len() int {
	return len(l.items)
}

// IsEmpty reports whether the ledger has no entries.
func (l *Ledger) IsEmpty() bool {
	return len(l.items) == 0
}

// Items returns a copy of the entries in insertion order.
func (l *Ledger) Items() []LineItem {
	out := make([]LineItem, len(l.items))
	copy(out, l.items)
	return out
}

// Clear drops every entry, returning the ledger to empty.
func (l *Ledger) Clear() {
	l.items = nil
}
