// Package checkout computes payment totals for a finalized cart and gates
// the confirm action. All arithmetic is delegated to the pricing package;
// this package owns the payment entry state machine and the settlement
// commit.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ploychompoo03/management-market/internal/common"
	"github.com/ploychompoo03/management-market/internal/events"
	"github.com/ploychompoo03/management-market/internal/handoff"
	"github.com/ploychompoo03/management-market/internal/ledger"
	"github.com/ploychompoo03/management-market/internal/pricing"
)

// Method is the payment method chosen by the cashier.
type Method string

// Supported payment methods.
const (
	MethodCash     Method = "cash"
	MethodTransfer Method = "transfer"
)

// State of the payment entry flow for the current payload.
type State string

// Payment entry states. Confirmed is terminal for the payload: the slot is
// discarded and only a fresh finalize can start a new flow.
const (
	StateEntering  State = "entering"
	StateReady     State = "ready_to_confirm"
	StateConfirmed State = "confirmed"
)

// Sentinel errors for the confirm guards.
var (
	ErrEmptyPayload       = errors.New("checkout: no finalized cart")
	ErrMethodRequired     = errors.New("checkout: payment method required")
	ErrUnknownMethod      = errors.New("checkout: unknown payment method")
	ErrInsufficientTender = errors.New("checkout: tendered amount below grand total")
)

// ParseMethod normalizes free-form method input.
func ParseMethod(raw string) (Method, error) {
	switch Method(strings.ToLower(strings.TrimSpace(raw))) {
	case MethodCash:
		return MethodCash, nil
	case MethodTransfer:
		return MethodTransfer, nil
	case "":
		return "", ErrMethodRequired
	default:
		return "", ErrUnknownMethod
	}
}

// Totals are the derived pricing components for a payload.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	VAT      decimal.Decimal `json:"vat"`
	VATRate  decimal.Decimal `json:"vatRate"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals derives subtotal, VAT and grand total from the payload. It is
// pure and safe to call on every keystroke; results for the same payload are
// identical across calls.
func ComputeTotals(p handoff.Payload) Totals {
	items := make([]pricing.Item, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, pricing.Item{Qty: it.Qty, UnitPrice: it.Price})
	}
	sum := pricing.Compute(items, p.VATRate)
	return Totals{Subtotal: sum.Subtotal, VAT: sum.VAT, VATRate: p.VATRate, Total: sum.Total}
}

// Quote is the live view of the payment entry: totals, parsed tender, change
// and the resulting state.
type Quote struct {
	Totals
	Method   Method          `json:"method,omitempty"`
	Tendered decimal.Decimal `json:"tendered"`
	Change   decimal.Decimal `json:"change"`
	State    State           `json:"state"`
}

// Evaluate computes the quote for the payload plus the entered method and
// tender text. It never mutates anything.
func Evaluate(p handoff.Payload, methodRaw, tenderedRaw string) Quote {
	totals := ComputeTotals(p)
	tendered := pricing.ParseAmount(tenderedRaw)
	q := Quote{
		Totals:   totals,
		Tendered: tendered,
		Change:   pricing.Change(tendered, totals.Total),
		State:    StateEntering,
	}
	method, err := ParseMethod(methodRaw)
	if err != nil {
		return q
	}
	q.Method = method
	if method == MethodTransfer {
		// tender is irrelevant for transfers
		q.Change = decimal.Zero
	}
	if p.Empty() {
		return q
	}
	if method != MethodCash || pricing.Covers(tendered, totals.Total) {
		q.State = StateReady
	}
	return q
}

// StockLevel reports the remaining stock of a sold item after commit.
type StockLevel struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Qty       int    `json:"qty"`
	StockLeft int    `json:"stockLeft"`
}

// Committer applies the settlement side effects in one step: stock
// decrement and ledger append. It is the extension point for whatever else a
// shop wants to happen at confirmation.
type Committer interface {
	Commit(ctx context.Context, sale ledger.Sale) (ledger.Sale, []StockLevel, error)
}

// Result is returned to the register after a confirmed payment.
type Result struct {
	Sale   ledger.Sale     `json:"sale"`
	Change decimal.Decimal `json:"change"`
	State  State           `json:"state"`
}

// Service runs the payment flow against the hand-off channel.
type Service struct {
	Channel   *handoff.Channel
	Committer Committer
	Events    *events.Bus
	Now       func() time.Time

	mu sync.Mutex
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// View returns the quote for the current payload and entry values.
func (s *Service) View(methodRaw, tenderedRaw string) Quote {
	return Evaluate(s.Channel.Consume(), methodRaw, tenderedRaw)
}

// Confirm re-validates the ready guard atomically, commits the settlement and
// discards the payload. Nothing is committed when any guard fails.
func (s *Service) Confirm(ctx context.Context, methodRaw, tenderedRaw string) (Result, error) {
	if s.Committer == nil {
		return Result{}, errors.New("checkout: committer not configured")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	payload := s.Channel.Consume()
	if payload.Empty() {
		return Result{}, ErrEmptyPayload
	}
	method, err := ParseMethod(methodRaw)
	if err != nil {
		return Result{}, err
	}
	quote := Evaluate(payload, methodRaw, tenderedRaw)
	if quote.State != StateReady {
		return Result{}, ErrInsufficientTender
	}

	sale := ledger.Sale{
		ID:       uuid.NewString(),
		At:       s.now(),
		Subtotal: quote.Subtotal,
		VATRate:  quote.VATRate,
		VAT:      quote.VAT,
		Total:    quote.Total,
		Method:   string(method),
	}
	if cashier, ok := common.UserID(ctx); ok {
		sale.Cashier = cashier
	}
	if method == MethodCash {
		sale.Tendered = quote.Tendered
		sale.Change = quote.Change
	}
	for _, it := range payload.Items {
		sale.Items = append(sale.Items, ledger.SaleItem{ID: it.ID, Name: it.Name, Price: it.Price, Qty: it.Qty})
	}

	sale, levels, err := s.Committer.Commit(ctx, sale)
	if err != nil {
		return Result{}, fmt.Errorf("checkout: commit settlement: %w", err)
	}
	if err := s.Channel.Discard(); err != nil {
		return Result{}, fmt.Errorf("checkout: discard payload: %w", err)
	}
	if s.Events != nil {
		_, _ = s.Events.Emit(ctx, events.TopicSaleCompleted, map[string]any{
			"saleId":  sale.ID,
			"invoice": sale.Invoice,
			"total":   sale.Total,
			"method":  sale.Method,
			"items":   levels,
		})
	}
	return Result{Sale: sale, Change: sale.Change, State: StateConfirmed}, nil
}
