package recon

import "github.com/marlowpress/dailyfiles/pkg/domain/entities"

// DefaultOrderIDBase is the first identifier handed out by a fresh
// allocator. The value is fixed by the downstream ledger import, which
// reserves everything below it.
const DefaultOrderIDBase = 6300

// OrderIDAllocator hands out persistent order identifiers. The first
// occurrence of an order number allocates the next identifier; repeat
// occurrences reuse it. Identifiers are never reused or decremented within
// one run. The allocator is scoped to a single run so parallel or repeated
// runs do not collide.
type OrderIDAllocator struct {
	next int64
	ids  map[string]int64
}

// NewOrderIDAllocator creates an allocator seeded at base.
func NewOrderIDAllocator(base int64) *OrderIDAllocator {
	return &OrderIDAllocator{
		next: base,
		ids:  make(map[string]int64),
	}
}

// Allocate returns the identifier for orderNum, allocating a new one on
// first sight.
func (a *OrderIDAllocator) Allocate(orderNum string) int64 {
	if id, ok := a.ids[orderNum]; ok {
		return id
	}
	id := a.next
	a.ids[orderNum] = id
	a.next++
	return id
}

// SequenceOrders stamps LineNum and OrderID onto every line, in file order.
// LineNum counts occurrences of the same order number starting at 1;
// OrderID comes from the allocator. This runs before any filtering so that
// later row drops never renumber the surviving lines.
func SequenceOrders(lines []*entities.OrderLine, alloc *OrderIDAllocator) {
	seen := make(map[string]int)
	for _, line := range lines {
		seen[line.OrderNum]++
		line.LineNum = seen[line.OrderNum]
		line.OrderID = alloc.Allocate(line.OrderNum)
	}
}
