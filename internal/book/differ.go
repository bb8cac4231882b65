package book

import "main/internal/model"

// Snapshot is one full fetch of the resting order book, keyed by order id.
type Snapshot struct {
	orders []model.Order
	ids    map[int64]struct{}
}

// NewSnapshot indexes a fetched book by order id, keeping fetch order.
func NewSnapshot(orders []model.Order) Snapshot {
	ids := make(map[int64]struct{}, len(orders))
	for _, order := range orders {
		ids[order.OrderID] = struct{}{}
	}
	return Snapshot{orders: orders, ids: ids}
}

func (s Snapshot) Len() int {
	return len(s.orders)
}

func (s Snapshot) contains(orderID int64) bool {
	_, ok := s.ids[orderID]
	return ok
}

// Differ holds the most recent snapshot and reports order novelty against
// it. The held snapshot is owned state: one Differ per venue, no sharing.
type Differ struct {
	held Snapshot
}

func NewDiffer() *Differ {
	return &Differ{}
}

// Diff returns the orders present in next but absent from the held
// snapshot, in snapshot order, then adopts next unconditionally. Novelty
// is identity only: content changes to a resting id are not new.
func (d *Differ) Diff(next Snapshot) []model.Order {
	var fresh []model.Order
	for _, order := range next.orders {
		if !d.held.contains(order.OrderID) {
			fresh = append(fresh, order)
		}
	}
	d.held = next
	return fresh
}

// Reset replaces the held snapshot without reporting novelty. Used to
// prime the differ with the book present at startup.
func (d *Differ) Reset(next Snapshot) {
	d.held = next
}
