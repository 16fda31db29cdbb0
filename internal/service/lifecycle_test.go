package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	apperrors "cardledger/internal/errors"
	"cardledger/internal/model"
)

func TestLifecycle_StateOf(t *testing.T) {
	assert.Equal(t, StateDeleted, StateOf(nil))
	assert.Equal(t, StateActive, StateOf(&model.Card{IsActive: true}))
	assert.Equal(t, StateInactive, StateOf(&model.Card{IsActive: false}))
}

func TestLifecycle_ToggleAndMutability(t *testing.T) {
	var lc LifecycleController
	card := &model.Card{IsActive: true}

	assert.NoError(t, lc.RequireMutable(card))
	assert.Equal(t, model.TransactionDeactivated, lc.Toggle(card))
	assert.False(t, card.IsActive)
	assert.Equal(t, apperrors.ErrCardInactive, lc.RequireMutable(card))
	assert.Equal(t, model.TransactionActivated, lc.Toggle(card))
	assert.True(t, card.IsActive)
}

func TestLifecycle_ShouldAutoDelete(t *testing.T) {
	var lc LifecycleController

	assert.True(t, lc.ShouldAutoDelete(model.TransactionPayment, decimal.Zero))
	assert.True(t, lc.ShouldAutoDelete(model.TransactionBalanceAdjustment, decimal.Zero))
	assert.True(t, lc.ShouldAutoDelete(model.TransactionPayment, decimal.NewFromInt(-1)))
	assert.False(t, lc.ShouldAutoDelete(model.TransactionPayment, decimal.RequireFromString("0.01")))
	assert.False(t, lc.ShouldAutoDelete(model.TransactionDeactivated, decimal.Zero))
}
