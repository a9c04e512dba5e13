package statemachine

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/dukkan-app/dukkan-api/internal/models"
)

// CreditFSM wraps a credit record with its state machine
type CreditFSM struct {
	credit *models.Credit
	fsm    *fsm.FSM
}

// NewCreditFSM creates a new credit state machine
func NewCreditFSM(credit *models.Credit) *CreditFSM {
	cfsm := &CreditFSM{
		credit: credit,
	}

	cfsm.fsm = fsm.NewFSM(
		credit.Status,
		fsm.Events{
			// pending/partial → partial (a payment that leaves a balance)
			{Name: "partial_payment", Src: []string{models.CreditStatusPending, models.CreditStatusPartial}, Dst: models.CreditStatusPartial},

			// pending/partial → paid (a payment that clears the balance)
			{Name: "settle", Src: []string{models.CreditStatusPending, models.CreditStatusPartial}, Dst: models.CreditStatusPaid},

			// paid → partial (an amount edit that reopens the balance)
			{Name: "reopen", Src: []string{models.CreditStatusPaid}, Dst: models.CreditStatusPartial},

			// partial/paid → pending (an edit that zeroes amount_paid)
			{Name: "reset", Src: []string{models.CreditStatusPartial, models.CreditStatusPaid}, Dst: models.CreditStatusPending},
		},
		fsm.Callbacks{},
	)

	return cfsm
}

// ApplyPayment transitions the credit after amount_paid has been
// updated. The target state is derived from the balance, never passed in.
func (c *CreditFSM) ApplyPayment(ctx context.Context) error {
	if !c.credit.MayRepay() && c.credit.Status == models.CreditStatusPaid {
		return fmt.Errorf("credit cannot accept a payment in current state: %s", c.credit.Status)
	}

	event := "partial_payment"
	if c.credit.ComputeStatus() == models.CreditStatusPaid {
		event = "settle"
	}

	// A payment that leaves a partial credit partial is a no-op transition;
	// the library reports that as NoTransitionError, not a failure.
	if err := c.fsm.Event(ctx, event); err != nil {
		var noTransition fsm.NoTransitionError
		if !errors.As(err, &noTransition) {
			return fmt.Errorf("failed to apply payment: %w", err)
		}
	}

	c.credit.Status = c.fsm.Current()
	return nil
}

// Reconcile realigns the stored status with the derived one after an
// amount or amount_paid edit, in either direction.
func (c *CreditFSM) Reconcile(ctx context.Context) error {
	target := c.credit.ComputeStatus()
	if target == c.credit.Status {
		return nil
	}

	var event string
	switch {
	case target == models.CreditStatusPaid:
		event = "settle"
	case target == models.CreditStatusPending:
		event = "reset"
	case c.credit.Status == models.CreditStatusPaid:
		event = "reopen"
	default:
		event = "partial_payment"
	}

	if err := c.fsm.Event(ctx, event); err != nil {
		return fmt.Errorf("failed to reconcile credit status: %w", err)
	}

	c.credit.Status = c.fsm.Current()
	return nil
}

// Current returns the current state
func (c *CreditFSM) Current() string {
	return c.fsm.Current()
}

// Can checks if a transition is possible
func (c *CreditFSM) Can(event string) bool {
	return c.fsm.Can(event)
}
