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
	"github.com/assetmart/marketd/messagebus"
	"github.com/assetmart/marketd/storage"
)

// Approve - grant a third party the right to act on an asset
//
// allocates the next sequence number even when the grantee already
// holds an approval: re-approval replaces the old number and only the
// new one will ever match again. Storage is charged only for a new
// map entry; the excess deposit is returned.
//
// a non-nil message is forwarded to the grantee as a scheduled
// notification whose response this operation never sees
func Approve(
	caller account.Account,
	assetId asset.ID,
	grantee account.Account,
	deposit amount.Amount,
	message []byte,
) (uint64, error) {
	globalData.Lock()
	defer globalData.Unlock()

	if nil == globalData.payer {
		return 0, fault.ErrNotInitialised
	}
	if err := grantee.Validate(); nil != err {
		return 0, err
	}

	trx := storage.NewTransaction()

	record, err := fetchAsset(trx, assetId)
	if nil != err {
		return 0, err
	}
	if caller != record.Owner {
		return 0, fault.ErrUnauthorized
	}

	approvalId := record.NextApprovalSeq
	_, alreadyApproved := record.Approvals[grantee]
	record.Approvals[grantee] = approvalId
	record.NextApprovalSeq += 1

	// marginal storage: zero when overwriting an existing entry
	required := amount.Zero
	if !alreadyApproved {
		required, err = storageCost(asset.ApprovalBytes(grantee))
		if nil != err {
			return 0, err
		}
	}
	if deposit.LessThan(required) {
		return 0, fault.ErrInsufficientRent
	}

	storeAsset(trx, assetId, record)
	if err := trx.Commit(); nil != err {
		return 0, err
	}

	refund, _ := deposit.Sub(required)
	if !refund.IsZero() {
		if err := globalData.payer.Pay(caller, refund); nil != err {
			globalData.log.Warnf("approve refund to %s failed: %s", caller, err)
		}
	}

	globalData.log.Infof("approved %s on %q seq %d", grantee, assetId, approvalId)

	if nil != message {
		messagebus.Send("registry", messagebus.ApprovalNotification{
			RegistryId: globalData.registryAccount,
			Signer:     caller,
			AssetId:    assetId,
			Owner:      record.Owner,
			Grantee:    grantee,
			ApprovalId: approvalId,
			Message:    message,
		})
	}

	return approvalId, nil
}

// Revoke - remove one approval, refunding the freed storage
//
// silently does nothing when the grantee holds no approval
func Revoke(caller account.Account, assetId asset.ID, grantee account.Account) error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil == globalData.payer {
		return fault.ErrNotInitialised
	}

	trx := storage.NewTransaction()

	record, err := fetchAsset(trx, assetId)
	if nil != err {
		return err
	}
	if caller != record.Owner {
		return fault.ErrUnauthorized
	}

	if _, ok := record.Approvals[grantee]; !ok {
		return nil
	}
	delete(record.Approvals, grantee)

	storeAsset(trx, assetId, record)
	if err := trx.Commit(); nil != err {
		return err
	}

	refundStorage(caller, asset.ApprovalBytes(grantee))
	globalData.log.Infof("revoked %s on %q", grantee, assetId)
	return nil
}

// RevokeAll - remove every approval, refunding all freed storage
func RevokeAll(caller account.Account, assetId asset.ID) error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil == globalData.payer {
		return fault.ErrNotInitialised
	}

	trx := storage.NewTransaction()

	record, err := fetchAsset(trx, assetId)
	if nil != err {
		return err
	}
	if caller != record.Owner {
		return fault.ErrUnauthorized
	}

	if 0 == len(record.Approvals) {
		return nil
	}
	freed := asset.ApprovalsBytes(record.Approvals)
	record.Approvals = make(map[account.Account]uint64)

	storeAsset(trx, assetId, record)
	if err := trx.Commit(); nil != err {
		return err
	}

	refundStorage(caller, freed)
	globalData.log.Infof("revoked all on %q", assetId)
	return nil
}

// IsApproved - check a live approval, optionally for an exact sequence
func IsApproved(assetId asset.ID, grantee account.Account, approvalId *uint64) (bool, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	buffer := storage.Pool.Assets.Get(assetId.Bytes())
	if nil == buffer {
		return false, fault.ErrAssetNotFound
	}
	record, err := asset.Unpack(buffer)
	if nil != err {
		return false, err
	}

	seq, ok := record.Approvals[grantee]
	if !ok {
		return false, nil
	}
	if nil != approvalId && *approvalId != seq {
		return false, nil
	}
	return true, nil
}

// pay back the cost of freed record bytes, best effort
func refundStorage(recipient account.Account, bytes uint64) {
	value, err := storageCost(bytes)
	if nil != err || value.IsZero() {
		return
	}
	if err := globalData.payer.Pay(recipient, value); nil != err {
		globalData.log.Warnf("storage refund to %s failed: %s", recipient, err)
	}
}
