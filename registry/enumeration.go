// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"github.com/assetmart/marketd/account"
	"github.com/assetmart/marketd/asset"
	"github.com/assetmart/marketd/fault"
	"github.com/assetmart/marketd/storage"
)

// Token - read one asset record
func Token(assetId asset.ID) (*asset.Record, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	buffer := storage.Pool.Assets.Get(assetId.Bytes())
	if nil == buffer {
		return nil, fault.ErrAssetNotFound
	}
	return asset.Unpack(buffer)
}

// TokensForOwner - page through the assets one account owns
func TokensForOwner(owner account.Account, offset uint64, limit int) []asset.ID {
	globalData.RLock()
	defer globalData.RUnlock()

	prefix := append(owner.Bytes(), 0x00)
	items := storage.Pool.AssetOwnerIndex.Scan(prefix, offset, limit)

	ids := make([]asset.ID, 0, len(items))
	for _, item := range items {
		ids = append(ids, asset.ID(item.Key[len(prefix):]))
	}
	return ids
}

// CountForOwner - number of assets one account owns
func CountForOwner(owner account.Account) uint64 {
	globalData.RLock()
	defer globalData.RUnlock()

	return storage.Pool.AssetOwnerIndex.Count(append(owner.Bytes(), 0x00))
}
