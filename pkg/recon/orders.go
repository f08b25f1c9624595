package recon

import (
	"context"
	"log/slog"

	"github.com/marlowpress/dailyfiles/pkg/domain/entities"
)

// OrderClassifier runs the full order classification: sequencing, the
// ordered rule table, and nothing else. Partitioning happens afterwards so
// the persisted classified set is complete.
type OrderClassifier struct {
	crossref CrossrefRepository
	log      *slog.Logger
}

// NewOrderClassifier creates a classifier. crossref may be nil when no
// crossreference source is configured.
func NewOrderClassifier(crossref CrossrefRepository, log *slog.Logger) *OrderClassifier {
	return &OrderClassifier{crossref: crossref, log: log}
}

// Classify applies the rule sequence to lines already stamped by
// SequenceOrders and returns the surviving lines. A crossreference lookup
// failure is logged and skipped; every other step is pure and cannot fail.
func (c *OrderClassifier) Classify(ctx context.Context, lines []*entities.OrderLine) []*entities.OrderLine {
	var accounts map[string]string
	if c.crossref != nil {
		m, err := c.crossref.AccountMap(ctx)
		if err != nil {
			c.log.Warn("crossref lookup unavailable, bill-to accounts not remapped", "error", err)
		} else {
			accounts = m
			c.log.Info("crossref table loaded", "accounts", len(m))
		}
	}

	survivors := ApplyOrderRules(lines, OrderRules(accounts))
	c.log.Info("order classification complete",
		"input_lines", len(lines), "surviving_lines", len(survivors))
	return survivors
}
