package entities

import (
	"testing"
	"time"
)

func TestOrderLine_ParsedOrderDate(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected time.Time
		ok       bool
	}{
		{"iso", "2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"us slash", "03/05/2024", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"us unpadded", "3/5/2024", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"iso slash", "2024/03/05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"two digit year", "03/05/24", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"garbage", "not-a-date", time.Time{}, false},
		{"empty", "", time.Time{}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := &OrderLine{OrderDate: tc.raw}
			got, ok := l.ParsedOrderDate()
			if ok != tc.ok {
				t.Fatalf("Expected ok=%v for %q, got %v", tc.ok, tc.raw, ok)
			}
			if ok && !got.Equal(tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestOrderLine_OrderDateToken(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected string
	}{
		{"iso", "2024-03-05", "030524"},
		{"us slash", "03/05/2024", "030524"},
		{"us unpadded", "3/5/2024", "030524"},
		{"two digit year", "03/05/24", "030524"},
		{"garbage", "not-a-date", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := &OrderLine{OrderDate: tc.raw}
			if got := l.OrderDateToken(); got != tc.expected {
				t.Errorf("Expected token %q for %q, got %q", tc.expected, tc.raw, got)
			}
		})
	}
}

func TestOrderLine_IsReturn(t *testing.T) {
	if (&OrderLine{OrderType: OtypeReturn}).IsReturn() != true {
		t.Error("Expected Return line to report IsReturn")
	}
	if (&OrderLine{OrderType: "O"}).IsReturn() != false {
		t.Error("Expected sale line not to report IsReturn")
	}
}

func TestMovementRecord_InTransferStream(t *testing.T) {
	testCases := []struct {
		from     string
		expected bool
	}{
		{"IPS", true},
		{"ING", true},
		{"DAMAGE", false},
		{"", false},
	}
	for _, tc := range testCases {
		m := &MovementRecord{FromLocation: tc.from}
		if m.InTransferStream() != tc.expected {
			t.Errorf("FromLocation %q: expected %v", tc.from, tc.expected)
		}
	}
}

func TestLockedRecord_Projections(t *testing.T) {
	locked := &LockedRecord{InvoiceCode: InvoiceCodeLocked, AccountSAN: DistributorSAN}
	if !locked.IsLocked() || locked.IsInProcess() {
		t.Error("Expected QH/631760X record to be locked only")
	}

	inProcess := &LockedRecord{InvoiceCode: InvoiceCodeInProcess, AccountSAN: DistributorSAN}
	if !inProcess.IsInProcess() || inProcess.IsLocked() {
		t.Error("Expected OP/631760X record to be in-process only")
	}

	otherAccount := &LockedRecord{InvoiceCode: InvoiceCodeLocked, AccountSAN: "999999X"}
	if otherAccount.IsLocked() {
		t.Error("Expected record for a different account to match neither projection")
	}
}
