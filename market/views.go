// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"github.com/assetmart/marketd/account"
	"github.com/assetmart/marketd/asset"
	"github.com/assetmart/marketd/sale"
)

// GetSale - read one active listing
func GetSale(registryId account.Account, assetId asset.ID) (sale.Listing, error) {
	globalData.RLock()
	defer globalData.RUnlock()
	return sale.Get(registryId, assetId)
}

// SalesByOwner - page through one seller's active listings
func SalesByOwner(owner account.Account, offset uint64, limit int) ([]sale.Listing, error) {
	globalData.RLock()
	defer globalData.RUnlock()
	return sale.ListByOwner(owner, offset, limit)
}

// SalesByRegistry - page through a registry's active listings
func SalesByRegistry(registryId account.Account, offset uint64, limit int) ([]sale.Listing, error) {
	globalData.RLock()
	defer globalData.RUnlock()
	return sale.ListByRegistry(registryId, offset, limit)
}

// SupplyByOwner - number of active listings for one seller
func SupplyByOwner(owner account.Account) uint64 {
	globalData.RLock()
	defer globalData.RUnlock()
	return sale.CountByOwner(owner)
}

// SupplyByRegistry - number of active listings for one registry
func SupplyByRegistry(registryId account.Account) uint64 {
	globalData.RLock()
	defer globalData.RUnlock()
	return sale.CountByRegistry(registryId)
}
