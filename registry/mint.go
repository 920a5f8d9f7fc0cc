// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"github.com/assetmart/marketd/account"
	"github.com/assetmart/marketd/amount"
	"github.com/assetmart/marketd/asset"
	"github.com/assetmart/marketd/fault"
	"github.com/assetmart/marketd/royalty"
	"github.com/assetmart/marketd/storage"
)

// Mint - create a new asset record
//
// the royalty table is fixed here and never changes afterwards; the
// caller's deposit must cover the record's storage, any excess is
// returned
func Mint(
	caller account.Account,
	assetId asset.ID,
	owner account.Account,
	royaltyTable royalty.Table,
	deposit amount.Amount,
) error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil == globalData.payer {
		return fault.ErrNotInitialised
	}
	if err := assetId.Validate(); nil != err {
		return err
	}
	if err := owner.Validate(); nil != err {
		return err
	}
	if err := royaltyTable.Validate(); nil != err {
		return err
	}

	trx := storage.NewTransaction()

	if trx.Has(storage.Pool.Assets, assetId.Bytes()) {
		return fault.ErrAssetAlreadyExists
	}

	record := &asset.Record{
		Owner:           owner,
		Approvals:       make(map[account.Account]uint64),
		NextApprovalSeq: 0,
		Royalty:         royaltyTable,
	}

	packed := record.Pack()
	required, err := storageCost(uint64(len(packed) + len(assetId)))
	if nil != err {
		return err
	}
	if deposit.LessThan(required) {
		return fault.ErrInsufficientRent
	}

	trx.Put(storage.Pool.Assets, assetId.Bytes(), packed)
	trx.Put(storage.Pool.AssetOwnerIndex, ownerIndexKey(owner, assetId), nil)

	if err := trx.Commit(); nil != err {
		return err
	}

	// refund only after the record is durable
	refund, _ := deposit.Sub(required)
	if !refund.IsZero() {
		if err := globalData.payer.Pay(caller, refund); nil != err {
			globalData.log.Warnf("mint refund to %s failed: %s", caller, err)
		}
	}

	globalData.log.Infof("minted %q for %s", assetId, owner)
	return nil
}
