package recon

import (
	"testing"

	"github.com/marlowpress/dailyfiles/pkg/domain/entities"
)

func TestOrderIDAllocator_ReusesIdentifierPerOrder(t *testing.T) {
	alloc := NewOrderIDAllocator(DefaultOrderIDBase)

	first := alloc.Allocate("555")
	if first != 6300 {
		t.Errorf("Expected first identifier 6300, got %d", first)
	}
	if again := alloc.Allocate("555"); again != first {
		t.Errorf("Expected repeat allocation to reuse %d, got %d", first, again)
	}
	if next := alloc.Allocate("556"); next != 6301 {
		t.Errorf("Expected second order to get 6301, got %d", next)
	}
	// Interleaved repeats never advance the counter.
	if id := alloc.Allocate("555"); id != 6300 {
		t.Errorf("Expected interleaved repeat to reuse 6300, got %d", id)
	}
	if id := alloc.Allocate("557"); id != 6302 {
		t.Errorf("Expected third order to get 6302, got %d", id)
	}
}

func TestSequenceOrders(t *testing.T) {
	lines := []*entities.OrderLine{
		{OrderNum: "555"},
		{OrderNum: "555"},
		{OrderNum: "700"},
		{OrderNum: "555"},
		{OrderNum: "700"},
	}

	SequenceOrders(lines, NewOrderIDAllocator(DefaultOrderIDBase))

	expected := []struct {
		lineNum int
		orderID int64
	}{
		{1, 6300},
		{2, 6300},
		{1, 6301},
		{3, 6300},
		{2, 6301},
	}
	for i, want := range expected {
		if lines[i].LineNum != want.lineNum {
			t.Errorf("Line %d: expected LineNum %d, got %d", i, want.lineNum, lines[i].LineNum)
		}
		if lines[i].OrderID != want.orderID {
			t.Errorf("Line %d: expected OrderID %d, got %d", i, want.orderID, lines[i].OrderID)
		}
	}
}

func TestSequenceOrders_StableUnderLaterDrops(t *testing.T) {
	// Sequencing happens before filtering, so a dropped first line leaves a
	// gap rather than renumbering the survivors.
	lines := []*entities.OrderLine{
		{OrderNum: "555", Qty: 0},
		{OrderNum: "555", Qty: 3, ISBN: "9780000000001", Price: dec("10"), Ext: dec("30")},
	}
	SequenceOrders(lines, NewOrderIDAllocator(DefaultOrderIDBase))

	survivors := ApplyOrderRules(lines, OrderRules(nil))
	if len(survivors) != 1 {
		t.Fatalf("Expected 1 surviving line, got %d", len(survivors))
	}
	if survivors[0].LineNum != 2 {
		t.Errorf("Expected surviving line to keep LineNum 2, got %d", survivors[0].LineNum)
	}
	if survivors[0].OrderID != 6300 {
		t.Errorf("Expected surviving line to keep OrderID 6300, got %d", survivors[0].OrderID)
	}
}
