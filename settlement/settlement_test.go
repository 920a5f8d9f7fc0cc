// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package settlement_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/assetmart/marketd/account"
	"github.com/assetmart/marketd/amount"
	"github.com/assetmart/marketd/fault"
	"github.com/assetmart/marketd/messagebus"
	"github.com/assetmart/marketd/pay"
	"github.com/assetmart/marketd/royalty"
	"github.com/assetmart/marketd/sale"
	"github.com/assetmart/marketd/settlement"
)

const (
	buyer    = account.Account("bob")
	seller   = account.Account("alice")
	registry = account.Account("nft.registry-main")
)

func begin(t *testing.T, offered uint64) (uuid.UUID, messagebus.TransferPayoutRequest) {
	listing := &sale.Listing{
		Owner:      seller,
		ApprovalId: 3,
		RegistryId: registry,
		AssetId:    "token-1",
		Price:      amount.FromUint64(500_000),
	}

	attemptId, err := settlement.Begin(buyer, listing, amount.FromUint64(offered))
	assert.NoError(t, err)

	msg := <-messagebus.Chan()
	request, ok := msg.Item.(messagebus.TransferPayoutRequest)
	assert.True(t, ok)
	return attemptId, request
}

func TestBegin(t *testing.T) {
	setup(t)
	defer teardown(t)

	attemptId, request := begin(t, 1_000_000)

	assert.Equal(t, attemptId, request.AttemptId)
	assert.Equal(t, registry, request.RegistryId)
	assert.Equal(t, account.Account(marketAccount), request.Caller)
	assert.Equal(t, buyer, request.Receiver)
	assert.Equal(t, uint64(3), request.ApprovalId)
	assert.Equal(t, "1000000", request.Total.String())
	assert.Equal(t, 10, request.MaxRecipients)

	attempt, err := settlement.Status(attemptId)
	assert.NoError(t, err)
	assert.Equal(t, settlement.StateAwaitingPayoutResolution, attempt.State)
	assert.Equal(t, "500000", attempt.Price.String())
	assert.Equal(t, "1000000", attempt.Offered.String())
}

func TestSettle(t *testing.T) {
	ledger := setup(t)
	defer teardown(t)

	attemptId, _ := begin(t, 1_000_000)

	err := settlement.Resolve(messagebus.PayoutResolution{
		AttemptId: attemptId,
		Payout: royalty.Payout{
			"artist.near":  amount.FromUint64(50_000),
			"charity.near": amount.FromUint64(30_000),
			seller:         amount.FromUint64(920_000),
		},
	})
	assert.NoError(t, err)

	assert.Equal(t, "50000", ledger.Balance("artist.near").String())
	assert.Equal(t, "30000", ledger.Balance("charity.near").String())
	assert.Equal(t, "920000", ledger.Balance(seller).String())
	assert.True(t, ledger.Balance(buyer).IsZero())

	attempt, err := settlement.Status(attemptId)
	assert.NoError(t, err)
	assert.Equal(t, settlement.StateSettled, attempt.State)

	// a settled attempt cannot be resolved again
	err = settlement.Resolve(messagebus.PayoutResolution{AttemptId: attemptId, Failed: true})
	assert.Equal(t, fault.ErrSettlementNotResolvable, err)
	assert.True(t, ledger.Balance(buyer).IsZero())
}

func TestRefundOnFailure(t *testing.T) {
	ledger := setup(t)
	defer teardown(t)

	attemptId, _ := begin(t, 1_000_000)

	err := settlement.Resolve(messagebus.PayoutResolution{
		AttemptId: attemptId,
		Failed:    true,
	})
	assert.NoError(t, err)

	assert.Equal(t, "1000000", ledger.Balance(buyer).String())
	assert.True(t, ledger.Balance(seller).IsZero())

	attempt, err := settlement.Status(attemptId)
	assert.NoError(t, err)
	assert.Equal(t, settlement.StateRefunded, attempt.State)
}

// a payout with too many recipients must refund the buyer in full,
// nobody in the table receives anything
func TestRefundOnOversizedPayout(t *testing.T) {
	ledger := setup(t)
	defer teardown(t)

	attemptId, _ := begin(t, 1_000_000)

	payout := royalty.Payout{}
	for i := 0; i < 11; i += 1 {
		payout[account.Account(fmt.Sprintf("holder-%02d", i))] = amount.FromUint64(1000)
	}

	err := settlement.Resolve(messagebus.PayoutResolution{
		AttemptId: attemptId,
		Payout:    payout,
	})
	assert.NoError(t, err)

	assert.Equal(t, "1000000", ledger.Balance(buyer).String())
	assert.True(t, ledger.Balance("holder-00").IsZero())

	attempt, err := settlement.Status(attemptId)
	assert.NoError(t, err)
	assert.Equal(t, settlement.StateRefunded, attempt.State)
}

func TestRefundOnUnbalancedPayout(t *testing.T) {
	ledger := setup(t)
	defer teardown(t)

	attemptId, _ := begin(t, 1_000_000)

	// two units short of the offer is outside the rounding slack
	err := settlement.Resolve(messagebus.PayoutResolution{
		AttemptId: attemptId,
		Payout: royalty.Payout{
			seller: amount.FromUint64(999_998),
		},
	})
	assert.NoError(t, err)

	assert.Equal(t, "1000000", ledger.Balance(buyer).String())
	assert.True(t, ledger.Balance(seller).IsZero())
}

// one unit short is accepted as rounding slack
func TestSettleWithRoundingSlack(t *testing.T) {
	ledger := setup(t)
	defer teardown(t)

	attemptId, _ := begin(t, 1_000_000)

	err := settlement.Resolve(messagebus.PayoutResolution{
		AttemptId: attemptId,
		Payout: royalty.Payout{
			seller: amount.FromUint64(999_999),
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, "999999", ledger.Balance(seller).String())
	assert.True(t, ledger.Balance(buyer).IsZero())
}

func TestResolveUnknown(t *testing.T) {
	setup(t)
	defer teardown(t)

	err := settlement.Resolve(messagebus.PayoutResolution{
		AttemptId: uuid.New(),
		Failed:    true,
	})
	assert.Equal(t, fault.ErrSettlementNotFound, err)

	_, err = settlement.Status(uuid.New())
	assert.Equal(t, fault.ErrSettlementNotFound, err)
}

// stopping and restarting must leave the package fully usable and the
// repeated shutdown must stay a no-op
func TestRestartCycle(t *testing.T) {
	setup(t)
	defer teardown(t)

	settlement.Finalise()
	settlement.Finalise()

	ledger := pay.NewLedger()
	assert.NoError(t, settlement.Initialise(marketAccount, ledger))

	attemptId, _ := begin(t, 1000)
	attempt, err := settlement.Status(attemptId)
	assert.NoError(t, err)
	assert.Equal(t, settlement.StateAwaitingPayoutResolution, attempt.State)
}
