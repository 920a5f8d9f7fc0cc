// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"github.com/google/uuid"

	"github.com/assetmart/marketd/account"
	"github.com/assetmart/marketd/amount"
	"github.com/assetmart/marketd/asset"
	"github.com/assetmart/marketd/fault"
	"github.com/assetmart/marketd/sale"
	"github.com/assetmart/marketd/settlement"
	"github.com/assetmart/marketd/storage"
)

// RemoveSale - take an active listing down
//
// only the seller may remove; the approval in the registry stays in
// place, removal here only stops the marketplace selling it
func RemoveSale(caller account.Account, registryId account.Account, assetId asset.ID) error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil == globalData.payer {
		return fault.ErrNotInitialised
	}

	listing, err := sale.Get(registryId, assetId)
	if nil != err {
		return err
	}
	if caller != listing.Owner {
		return fault.ErrUnauthorized
	}

	trx := storage.NewTransaction()
	if _, err := sale.Remove(trx, registryId, assetId); nil != err {
		return err
	}
	if err := trx.Commit(); nil != err {
		return err
	}

	globalData.log.Infof("delisted %q on %s by %s", assetId, registryId, caller)
	return nil
}

// UpdatePrice - change the asking price of an active listing
func UpdatePrice(caller account.Account, registryId account.Account, assetId asset.ID, price amount.Amount) error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil == globalData.payer {
		return fault.ErrNotInitialised
	}

	listing, err := sale.Get(registryId, assetId)
	if nil != err {
		return err
	}
	if caller != listing.Owner {
		return fault.ErrUnauthorized
	}

	listing.Price = price

	trx := storage.NewTransaction()
	sale.Insert(trx, &listing)
	if err := trx.Commit(); nil != err {
		return err
	}

	globalData.log.Infof("repriced %q on %s to %s", assetId, registryId, price)
	return nil
}

// Offer - buy an active listing
//
// the deposit must meet the asking price and the whole of it becomes
// the sale total. The listing is consumed here, synchronously, so no
// second buyer can offer on it; everything after that is the
// settlement saga's job and the returned attempt id tracks it
func Offer(buyer account.Account, registryId account.Account, assetId asset.ID, deposit amount.Amount) (uuid.UUID, error) {
	globalData.Lock()
	defer globalData.Unlock()

	if nil == globalData.payer {
		return uuid.UUID{}, fault.ErrNotInitialised
	}

	listing, err := sale.Get(registryId, assetId)
	if nil != err {
		return uuid.UUID{}, err
	}
	if buyer == listing.Owner {
		return uuid.UUID{}, fault.ErrSelfPurchaseRejected
	}
	if deposit.IsZero() || deposit.LessThan(listing.Price) {
		return uuid.UUID{}, fault.ErrInsufficientOffer
	}

	trx := storage.NewTransaction()
	if _, err := sale.Remove(trx, registryId, assetId); nil != err {
		return uuid.UUID{}, err
	}
	if err := trx.Commit(); nil != err {
		return uuid.UUID{}, err
	}

	globalData.log.Infof("offer on %q by %s for %s", assetId, buyer, deposit)

	return settlement.Begin(buyer, &listing, deposit)
}
