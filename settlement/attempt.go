// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package settlement

import (
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/assetmart/marketd/account"
	"github.com/assetmart/marketd/amount"
	"github.com/assetmart/marketd/asset"
	"github.com/assetmart/marketd/fault"
	"github.com/assetmart/marketd/messagebus"
	"github.com/assetmart/marketd/royalty"
	"github.com/assetmart/marketd/sale"
)

const payoutMemo = "payout from market"

// State - where one purchase attempt stands
type State int

// saga states; an attempt only ever moves forward and ends in exactly
// one of Settled or Refunded
const (
	StateInitiated State = iota
	StateAwaitingTransfer
	StateAwaitingPayoutResolution
	StateSettled
	StateRefunded
)

func (state State) String() string {
	switch state {
	case StateInitiated:
		return "INITIATED"
	case StateAwaitingTransfer:
		return "AWAITING_TRANSFER"
	case StateAwaitingPayoutResolution:
		return "AWAITING_PAYOUT_RESOLUTION"
	case StateSettled:
		return "SETTLED"
	case StateRefunded:
		return "REFUNDED"
	default:
		return "UNKNOWN"
	}
}

// Attempt - one in-flight or recently finished purchase
//
// Offered is the buyer's full deposit and is what gets split or
// refunded; Price is the listing price at the moment of purchase and
// is kept for the record only
type Attempt struct {
	Id         uuid.UUID
	Buyer      account.Account
	Seller     account.Account
	RegistryId account.Account
	AssetId    asset.ID
	ApprovalId uint64
	Price      amount.Amount
	Offered    amount.Amount
	State      State
}

// Begin - start settling a consumed listing
//
// the listing must already be removed from the sale index by the
// caller; from here the buyer's offer is committed and will be either
// disbursed or refunded, never both
func Begin(buyer account.Account, listing *sale.Listing, offered amount.Amount) (uuid.UUID, error) {
	globalData.Lock()
	defer globalData.Unlock()

	if nil == globalData.payer {
		return uuid.UUID{}, fault.ErrNotInitialised
	}

	attempt := &Attempt{
		Id:         uuid.New(),
		Buyer:      buyer,
		Seller:     listing.Owner,
		RegistryId: listing.RegistryId,
		AssetId:    listing.AssetId,
		ApprovalId: listing.ApprovalId,
		Price:      listing.Price,
		Offered:    offered,
		State:      StateInitiated,
	}

	attempt.State = StateAwaitingTransfer

	messagebus.Send("settlement", messagebus.TransferPayoutRequest{
		AttemptId:     attempt.Id,
		RegistryId:    listing.RegistryId,
		Caller:        globalData.marketAccount,
		Receiver:      buyer,
		AssetId:       listing.AssetId,
		ApprovalId:    listing.ApprovalId,
		Memo:          payoutMemo,
		Total:         offered,
		MaxRecipients: royalty.MaximumPayoutRecipients,
	})

	// the request is scheduled, only the resolution can move it now
	attempt.State = StateAwaitingPayoutResolution
	globalData.attempts.Set(attempt.Id.String(), attempt, gocache.NoExpiration)

	globalData.log.Infof("attempt %s: %s buys %q from %s for %s",
		attempt.Id, buyer, listing.AssetId, listing.Owner, offered)

	return attempt.Id, nil
}

// Resolve - finish an attempt with the registry's answer
//
// exactly once per attempt: a second resolution for the same id is
// rejected. A failed transfer or a payout that does not
// balance against the offer refunds the buyer in full; otherwise every
// recipient is paid their computed share
func Resolve(resolution messagebus.PayoutResolution) error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil == globalData.payer {
		return fault.ErrNotInitialised
	}

	key := resolution.AttemptId.String()
	item, found := globalData.attempts.Get(key)
	if !found {
		return fault.ErrSettlementNotFound
	}
	attempt := item.(*Attempt)
	if StateAwaitingPayoutResolution != attempt.State {
		return fault.ErrSettlementNotResolvable
	}

	if resolution.Failed {
		return refund(attempt, "transfer failed")
	}
	if err := resolution.Payout.Verify(attempt.Offered); nil != err {
		return refund(attempt, err.Error())
	}

	attempt.State = StateSettled
	globalData.attempts.Set(key, attempt, gocache.DefaultExpiration)

	// disbursement is best effort per recipient: the asset has already
	// moved, withholding everyone over one bad account would strand the
	// valid shares
	for recipient, share := range resolution.Payout {
		if err := globalData.payer.Pay(recipient, share); nil != err {
			globalData.log.Warnf("attempt %s: paying %s %s failed: %s",
				attempt.Id, recipient, share, err)
		}
	}

	globalData.log.Infof("attempt %s: settled, %d recipients", attempt.Id, len(resolution.Payout))
	return nil
}

// need to hold the lock before calling this
func refund(attempt *Attempt, reason string) error {
	attempt.State = StateRefunded
	globalData.attempts.Set(attempt.Id.String(), attempt, gocache.DefaultExpiration)

	if err := globalData.payer.Pay(attempt.Buyer, attempt.Offered); nil != err {
		globalData.log.Errorf("attempt %s: refunding %s %s failed: %s",
			attempt.Id, attempt.Buyer, attempt.Offered, err)
		return err
	}

	globalData.log.Infof("attempt %s: refunded %s to %s: %s",
		attempt.Id, attempt.Offered, attempt.Buyer, reason)
	return nil
}

// Status - look up an attempt while it is live or recently finished
func Status(attemptId uuid.UUID) (Attempt, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if nil == globalData.payer {
		return Attempt{}, fault.ErrNotInitialised
	}

	item, found := globalData.attempts.Get(attemptId.String())
	if !found {
		return Attempt{}, fault.ErrSettlementNotFound
	}
	return *item.(*Attempt), nil
}
