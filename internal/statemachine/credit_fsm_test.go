package statemachine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dukkan-app/dukkan-api/internal/models"
)

func TestApplyPayment_PendingToPartial(t *testing.T) {
	credit := &models.Credit{Amount: 1000, AmountPaid: 400, Status: models.CreditStatusPending}

	err := NewCreditFSM(credit).ApplyPayment(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, models.CreditStatusPartial, credit.Status)
}

func TestApplyPayment_PendingToPaid(t *testing.T) {
	credit := &models.Credit{Amount: 1000, AmountPaid: 1000, Status: models.CreditStatusPending}

	err := NewCreditFSM(credit).ApplyPayment(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, models.CreditStatusPaid, credit.Status)
}

func TestApplyPayment_PartialStaysPartial(t *testing.T) {
	// A second installment that still leaves a balance must not fail
	credit := &models.Credit{Amount: 1000, AmountPaid: 200, Status: models.CreditStatusPartial}

	err := NewCreditFSM(credit).ApplyPayment(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, models.CreditStatusPartial, credit.Status)
}

func TestApplyPayment_PartialToPaid(t *testing.T) {
	credit := &models.Credit{Amount: 1000, AmountPaid: 1000, Status: models.CreditStatusPartial}

	err := NewCreditFSM(credit).ApplyPayment(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, models.CreditStatusPaid, credit.Status)
}

func TestApplyPayment_RejectsPaidCredit(t *testing.T) {
	credit := &models.Credit{Amount: 1000, AmountPaid: 1000, Status: models.CreditStatusPaid}

	err := NewCreditFSM(credit).ApplyPayment(context.Background())
	assert.Error(t, err)
	assert.Equal(t, models.CreditStatusPaid, credit.Status)
}

func TestReconcile_NoChange(t *testing.T) {
	credit := &models.Credit{Amount: 1000, AmountPaid: 400, Status: models.CreditStatusPartial}

	err := NewCreditFSM(credit).Reconcile(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, models.CreditStatusPartial, credit.Status)
}

func TestReconcile_ReopensPaidCredit(t *testing.T) {
	// An amount edit on a settled credit leaves a balance again
	credit := &models.Credit{Amount: 1500, AmountPaid: 1000, Status: models.CreditStatusPaid}

	err := NewCreditFSM(credit).Reconcile(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, models.CreditStatusPartial, credit.Status)
}

func TestReconcile_ResetsToPending(t *testing.T) {
	credit := &models.Credit{Amount: 1000, AmountPaid: 0, Status: models.CreditStatusPaid}

	err := NewCreditFSM(credit).Reconcile(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, models.CreditStatusPending, credit.Status)
}

func TestReconcile_SettlesAfterEdit(t *testing.T) {
	// Lowering the amount to the paid balance settles the credit
	credit := &models.Credit{Amount: 400, AmountPaid: 400, Status: models.CreditStatusPartial}

	err := NewCreditFSM(credit).Reconcile(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, models.CreditStatusPaid, credit.Status)
}

func TestCan(t *testing.T) {
	pending := NewCreditFSM(&models.Credit{Status: models.CreditStatusPending})
	assert.True(t, pending.Can("partial_payment"))
	assert.True(t, pending.Can("settle"))
	assert.False(t, pending.Can("reopen"))

	paid := NewCreditFSM(&models.Credit{Status: models.CreditStatusPaid})
	assert.False(t, paid.Can("settle"))
	assert.True(t, paid.Can("reopen"))
	assert.True(t, paid.Can("reset"))
}
