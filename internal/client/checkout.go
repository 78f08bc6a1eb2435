package client

import (
	"context"
	"errors"

	"school-store/internal/domain/dto"
)

// Outcome classifies one purchase attempt over the whole cart.
type Outcome int

const (
	// OutcomePrecondition: empty cart or total over balance; no network call
	// was made.
	OutcomePrecondition Outcome = iota
	// OutcomeSuccess: every line purchased, cart cleared.
	OutcomeSuccess
	// OutcomePartial: some lines purchased and removed, the failed ones kept
	// in the cart for retry.
	OutcomePartial
	// OutcomeFailure: no line purchased, cart untouched.
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomePartial:
		return "partial"
	case OutcomeFailure:
		return "failure"
	default:
		return "precondition"
	}
}

// State is where a purchase attempt currently stands. Only one attempt may be
// in flight at a time.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
)

var ErrPurchaseInFlight = errors.New("a purchase is already in flight")

type LineFailure struct {
	Line    CartLine
	Message string
}

type PurchaseResult struct {
	Outcome Outcome
	// Reason is set for OutcomePrecondition.
	Reason string
	// Purchased holds the backend's record for every committed line.
	Purchased []dto.PurchaseDTO
	// Failed lists the lines still in the cart, with per-line messages.
	Failed []LineFailure
}

// Committer drains the cart against the backend. Lines are submitted one by
// one, in order, so every failure is attributable to exactly one line; there
// is no batch endpoint and no rollback of already-committed lines. Callers
// decide whether to resubmit what remains.
type Committer struct {
	api     *Client
	session *Session
	cart    *Cart
	state   State
}

func NewCommitter(api *Client, session *Session, cart *Cart) *Committer {
	return &Committer{
		api:     api,
		session: session,
		cart:    cart,
	}
}

func (pc *Committer) State() State {
	return pc.state
}

// Purchase runs one attempt over the current cart. On any committed line the
// session balance is re-fetched from the backend, never subtracted locally;
// a refresh failure is returned as the error alongside the final result.
func (pc *Committer) Purchase(ctx context.Context) (PurchaseResult, error) {
	if pc.state != StateIdle {
		return PurchaseResult{}, ErrPurchaseInFlight
	}

	pc.state = StateValidating
	defer func() { pc.state = StateIdle }()

	lines := pc.cart.Lines()

	if len(lines) == 0 {
		return PurchaseResult{Outcome: OutcomePrecondition, Reason: "cart is empty"}, nil
	}
	if total := pc.cart.Total(); total > pc.session.Balance() {
		return PurchaseResult{Outcome: OutcomePrecondition, Reason: "insufficient points"}, nil
	}

	pc.state = StateSubmitting

	var result PurchaseResult
	for _, line := range lines {
		resp, err := pc.api.Purchase(ctx, dto.PurchaseRequest{
			ItemID:   line.ItemID,
			Size:     line.Size,
			Quantity: 1,
		})
		if err != nil {
			result.Failed = append(result.Failed, LineFailure{
				Line:    line,
				Message: failureMessage(err),
			})
			continue
		}

		result.Purchased = append(result.Purchased, resp.Purchase)
		pc.cart.Remove(line.ID)
	}

	switch {
	case len(result.Failed) == 0:
		result.Outcome = OutcomeSuccess
		pc.cart.Clear()
	case len(result.Purchased) == 0:
		result.Outcome = OutcomeFailure
	default:
		result.Outcome = OutcomePartial
	}

	if len(result.Purchased) > 0 {
		if err := pc.session.Refresh(ctx); err != nil {
			return result, err
		}
	}

	return result, nil
}

func failureMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
