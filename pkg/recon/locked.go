package recon

import (
	"strconv"

	"github.com/marlowpress/dailyfiles/pkg/domain/entities"
)

// SplitLocked partitions the locked extract into the locked and in-process
// projections. The two (invoice code, account) filters are disjoint by
// construction; rows matching neither are dropped.
func SplitLocked(recs []*entities.LockedRecord) (locked, inProcess []*entities.LockedRecord) {
	for _, r := range recs {
		switch {
		case r.IsLocked():
			locked = append(locked, r)
		case r.IsInProcess():
			inProcess = append(inProcess, r)
		}
	}
	return locked, inProcess
}

// LockedProjection renders the locked set: the first 8 columns, no header.
func LockedProjection(recs []*entities.LockedRecord) Sheet {
	s := Sheet{Name: "locked"}
	for _, r := range recs {
		s.Rows = append(s.Rows, []string{
			r.Tag, r.FileDate, r.AccountSAN, r.ISBN10,
			r.Filler5, r.ISBN13, r.InvoiceCode, strconv.FormatInt(r.Qty, 10),
		})
	}
	return s
}

// InProcessProjection renders the in-process set: all 13 columns with a
// header row. The filler column names are fixed by the downstream
// consumer.
func InProcessProjection(recs []*entities.LockedRecord) Sheet {
	s := Sheet{
		Name: "in-process",
		Header: []string{
			"F1", "Fdate", "San", "ISBN10", "F5", "ISBN", "Invcode", "QTY",
			"column9", "column10", "column11", "column12", "column13",
		},
	}
	for _, r := range recs {
		s.Rows = append(s.Rows, []string{
			r.Tag, r.FileDate, r.AccountSAN, r.ISBN10, r.Filler5, r.ISBN13,
			r.InvoiceCode, strconv.FormatInt(r.Qty, 10),
			r.Filler9, r.Filler10, r.Filler11, r.Filler12, r.Filler13,
		})
	}
	return s
}
