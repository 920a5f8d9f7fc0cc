// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sale

import (
	"github.com/assetmart/marketd/account"
	"github.com/assetmart/marketd/asset"
	"github.com/assetmart/marketd/fault"
	"github.com/assetmart/marketd/storage"
)

// Insert - publish a listing into the primary map and both indices
func Insert(trx storage.Transaction, listing *Listing) {
	primary := PrimaryKey(listing.RegistryId, listing.AssetId)

	trx.Put(storage.Pool.Sales, primary, listing.pack())
	trx.Put(storage.Pool.SaleOwnerIndex, ownerKey(listing.Owner, primary), nil)
	trx.Put(storage.Pool.SaleRegistryIndex, primary, nil)
}

// Remove - delete a listing from the primary map and both indices
//
// one logical step: either the transaction commits with all three
// removals or none of them happen; returns the removed listing
func Remove(trx storage.Transaction, registryId account.Account, assetId asset.ID) (Listing, error) {

	primary := PrimaryKey(registryId, assetId)

	listing, err := unpack(trx.Get(storage.Pool.Sales, primary))
	if nil != err {
		return Listing{}, err
	}

	trx.Delete(storage.Pool.Sales, primary)
	trx.Delete(storage.Pool.SaleOwnerIndex, ownerKey(listing.Owner, primary))
	trx.Delete(storage.Pool.SaleRegistryIndex, primary)

	return listing, nil
}

// Get - read one listing
func Get(registryId account.Account, assetId asset.ID) (Listing, error) {
	return unpack(storage.Pool.Sales.Get(PrimaryKey(registryId, assetId)))
}

// Exists - check for an active listing
func Exists(registryId account.Account, assetId asset.ID) bool {
	return storage.Pool.Sales.Has(PrimaryKey(registryId, assetId))
}

// ListByOwner - page through one seller's active listings
func ListByOwner(owner account.Account, offset uint64, limit int) ([]Listing, error) {

	prefix := append(owner.Bytes(), keyDelimiter)
	items := storage.Pool.SaleOwnerIndex.Scan(prefix, offset, limit)

	listings := make([]Listing, 0, len(items))
	for _, item := range items {
		primary := item.Key[len(prefix):]
		listing, err := unpack(storage.Pool.Sales.Get(primary))
		if nil != err {
			// an index entry without its listing means the atomic
			// removal invariant was broken
			return nil, fault.ErrSaleNotFound
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

// ListByRegistry - page through all listings for one registry
func ListByRegistry(registryId account.Account, offset uint64, limit int) ([]Listing, error) {

	prefix := append(registryId.Bytes(), keyDelimiter)
	items := storage.Pool.SaleRegistryIndex.Scan(prefix, offset, limit)

	listings := make([]Listing, 0, len(items))
	for _, item := range items {
		listing, err := unpack(storage.Pool.Sales.Get(item.Key))
		if nil != err {
			return nil, fault.ErrSaleNotFound
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

// CountByOwner - number of active listings for one seller
func CountByOwner(owner account.Account) uint64 {
	return storage.Pool.SaleOwnerIndex.Count(append(owner.Bytes(), keyDelimiter))
}

// CountByRegistry - number of active listings for one registry
func CountByRegistry(registryId account.Account) uint64 {
	return storage.Pool.SaleRegistryIndex.Count(append(registryId.Bytes(), keyDelimiter))
}
