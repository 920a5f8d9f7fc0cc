// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package sale - the index of active listings
//
// a listing is keyed by registry ++ 00 ++ asset id and mirrored in
// two secondary indices, by seller and by registry; all three are
// mutated inside one storage transaction so no observer can see them
// disagree
package sale

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/assetmart/marketd/account"
	"github.com/assetmart/marketd/amount"
	"github.com/assetmart/marketd/asset"
	"github.com/assetmart/marketd/fault"
)

// the reserved separator byte; account and asset id validation both
// exclude it, so composite keys cannot be forged by identifier choice
const keyDelimiter = 0x00

// Listing - one active sale
//
// Owner and ApprovalId are snapshots taken when the listing was
// published; a later transfer of the asset invalidates ApprovalId and
// the eventual settlement fails over to a refund
type Listing struct {
	Owner      account.Account `cbor:"1,keyasint"`
	ApprovalId uint64          `cbor:"2,keyasint"`
	RegistryId account.Account `cbor:"3,keyasint"`
	AssetId    asset.ID        `cbor:"4,keyasint"`
	Price      amount.Amount   `cbor:"5,keyasint"`
}

// PrimaryKey - registry ++ 00 ++ asset id
func PrimaryKey(registryId account.Account, assetId asset.ID) []byte {
	key := make([]byte, 0, len(registryId)+1+len(assetId))
	key = append(key, registryId.Bytes()...)
	key = append(key, keyDelimiter)
	return append(key, assetId.Bytes()...)
}

// key in the owner index: owner ++ 00 ++ primary key
func ownerKey(owner account.Account, primary []byte) []byte {
	key := make([]byte, 0, len(owner)+1+len(primary))
	key = append(key, owner.Bytes()...)
	key = append(key, keyDelimiter)
	return append(key, primary...)
}

// pack a listing for storage
func (listing *Listing) pack() []byte {
	buffer, err := cbor.Marshal(listing)
	if nil != err {
		panic("sale: pack failed: " + err.Error())
	}
	return buffer
}

func unpack(buffer []byte) (Listing, error) {
	listing := Listing{}
	if 0 == len(buffer) {
		return listing, fault.ErrSaleNotFound
	}
	err := cbor.Unmarshal(buffer, &listing)
	return listing, err
}
