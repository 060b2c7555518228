package services

import (
	"testing"

	"github.com/Dominicushuy/bets-backend/errors"
	"github.com/Dominicushuy/bets-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitPayment(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentService(db)
	user := createUser(t, db, 0, models.RoleUser)

	request, err := svc.Submit(user.ID, 50000, "proofs/receipt-1.jpg")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, request.Status)
	assert.EqualValues(t, 50000, request.Amount)

	_, err = svc.Submit(user.ID, 0, "proofs/receipt-2.jpg")
	assert.Equal(t, errors.CodeValidation, errors.Code(err))

	_, err = svc.Submit(user.ID, 50000, "  ")
	assert.Equal(t, errors.CodeValidation, errors.Code(err))
}

func TestApprovePayment(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentService(db)
	admin := createUser(t, db, 0, models.RoleAdmin)
	user := createUser(t, db, 10000, models.RoleUser)

	request, err := svc.Submit(user.ID, 50000, "proofs/receipt.jpg")
	require.NoError(t, err)

	approved, err := svc.Approve(admin.ID, request.ID)
	require.NoError(t, err)

	assert.Equal(t, models.PaymentApproved, approved.Status)
	require.NotNil(t, approved.ProcessedBy)
	assert.Equal(t, admin.ID, *approved.ProcessedBy)
	assert.NotNil(t, approved.ProcessedAt)
	assert.EqualValues(t, 60000, reloadUser(t, db, user.ID).Balance)

	// The pending guard makes double approval impossible.
	_, err = svc.Approve(admin.ID, request.ID)
	assert.Equal(t, errors.CodeInvalidState, errors.Code(err))
	assert.EqualValues(t, 60000, reloadUser(t, db, user.ID).Balance)

	_, err = svc.Approve(admin.ID, 9999)
	assert.Equal(t, errors.CodeNotFound, errors.Code(err))
}

func TestRejectPayment(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentService(db)
	admin := createUser(t, db, 0, models.RoleAdmin)
	user := createUser(t, db, 10000, models.RoleUser)

	request, err := svc.Submit(user.ID, 50000, "proofs/receipt.jpg")
	require.NoError(t, err)

	rejected, err := svc.Reject(admin.ID, request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentRejected, rejected.Status)

	// Nothing credited, and the decision is final.
	assert.EqualValues(t, 10000, reloadUser(t, db, user.ID).Balance)
	_, err = svc.Approve(admin.ID, request.ID)
	assert.Equal(t, errors.CodeInvalidState, errors.Code(err))
}

func TestListPayments(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentService(db)
	admin := createUser(t, db, 0, models.RoleAdmin)
	user := createUser(t, db, 0, models.RoleUser)

	r1, err := svc.Submit(user.ID, 10000, "proofs/a.jpg")
	require.NoError(t, err)
	_, err = svc.Submit(user.ID, 20000, "proofs/b.jpg")
	require.NoError(t, err)

	_, err = svc.Approve(admin.ID, r1.ID)
	require.NoError(t, err)

	pending, total, err := svc.List(models.PaymentPending, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, pending, 1)

	mine, err := svc.ListByUser(user.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
