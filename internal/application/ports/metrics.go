package ports

import "time"

// LedgerMetrics recibe los eventos observables del libro de movimientos.
type LedgerMetrics interface {
	EventCreated(status string, lines int)
	EventTransitioned(from, to string)
	WriteRejected(operation, kind string)
	BalanceQueryObserved(d time.Duration, rows int)
}

// NopMetrics descarta todo; útil en tests y cuando las métricas están deshabilitadas.
type NopMetrics struct{}

func (NopMetrics) EventCreated(string, int)                {}
func (NopMetrics) EventTransitioned(string, string)        {}
func (NopMetrics) WriteRejected(string, string)            {}
func (NopMetrics) BalanceQueryObserved(time.Duration, int) {}
