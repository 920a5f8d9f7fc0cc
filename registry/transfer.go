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

// Transfer - move an asset to a new owner
//
// the caller must be the owner or hold a live approval; when an
// enforced sequence is supplied it must match the caller's grant
// exactly. Every approval is cleared by the move - a new owner starts
// a fresh approval epoch - and the storage they occupied is refunded
// to the previous owner.
//
// returns the record as it was immediately before the move so the
// caller can settle royalties against the pre-transfer state
func Transfer(
	caller account.Account,
	assetId asset.ID,
	receiver account.Account,
	enforcedSeq *uint64,
	memo string,
) (*asset.Record, error) {
	globalData.Lock()
	defer globalData.Unlock()

	return transfer(caller, assetId, receiver, enforcedSeq, memo)
}

// need to hold the lock before calling this
func transfer(
	caller account.Account,
	assetId asset.ID,
	receiver account.Account,
	enforcedSeq *uint64,
	memo string,
) (*asset.Record, error) {

	if nil == globalData.payer {
		return nil, fault.ErrNotInitialised
	}
	if err := receiver.Validate(); nil != err {
		return nil, err
	}

	trx := storage.NewTransaction()

	record, err := fetchAsset(trx, assetId)
	if nil != err {
		return nil, err
	}

	if caller != record.Owner {
		seq, ok := record.Approvals[caller]
		if !ok {
			return nil, fault.ErrUnauthorized
		}
		if nil != enforcedSeq && *enforcedSeq != seq {
			return nil, fault.ErrApprovalMismatch
		}
	}

	if receiver == record.Owner {
		return nil, fault.ErrSelfTransferRejected
	}

	previous := record.Snapshot()

	trx.Delete(storage.Pool.AssetOwnerIndex, ownerIndexKey(record.Owner, assetId))
	trx.Put(storage.Pool.AssetOwnerIndex, ownerIndexKey(receiver, assetId), nil)

	record.Owner = receiver
	record.Approvals = make(map[account.Account]uint64)

	storeAsset(trx, assetId, record)
	if err := trx.Commit(); nil != err {
		return nil, err
	}

	// previous owner paid for the approval entries just cleared
	refundStorage(previous.Owner, asset.ApprovalsBytes(previous.Approvals))

	authorizedBy := account.Account("")
	if caller != previous.Owner {
		authorizedBy = caller
	}
	if "" == authorizedBy {
		globalData.log.Infof("transfer %q: %s -> %s memo %q", assetId, previous.Owner, receiver, memo)
	} else {
		globalData.log.Infof("transfer %q: %s -> %s by %s memo %q", assetId, previous.Owner, receiver, authorizedBy, memo)
	}

	return previous, nil
}

// TransferPayout - move the asset and split the sale total
//
// the marketplace side of a purchase: transfer to the buyer under the
// enforced approval sequence, then compute the royalty payout from
// the pre-transfer royalty table and owner
func TransferPayout(
	caller account.Account,
	receiver account.Account,
	assetId asset.ID,
	approvalId uint64,
	memo string,
	total amount.Amount,
	maxRecipients int,
) (royalty.Payout, error) {
	globalData.Lock()
	defer globalData.Unlock()

	previous, err := transfer(caller, assetId, receiver, &approvalId, memo)
	if nil != err {
		return nil, err
	}

	return royalty.Split(previous.Royalty, previous.Owner, total, maxRecipients)
}

// Payout - read-only preview of the split for a hypothetical total
func Payout(assetId asset.ID, total amount.Amount, maxRecipients int) (royalty.Payout, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	buffer := storage.Pool.Assets.Get(assetId.Bytes())
	if nil == buffer {
		return nil, fault.ErrAssetNotFound
	}
	record, err := asset.Unpack(buffer)
	if nil != err {
		return nil, err
	}

	return royalty.Split(record.Royalty, record.Owner, total, maxRecipients)
}
