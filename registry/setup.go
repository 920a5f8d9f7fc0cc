// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package registry - the asset registry
//
// owns every asset record: current owner, the approval set with its
// monotonic sequence counter, and the royalty table fixed at mint.
// Each public operation runs to completion under the lock and writes
// through one storage transaction, so a failed call leaves no partial
// state
package registry

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/assetmart/marketd/account"
	"github.com/assetmart/marketd/amount"
	"github.com/assetmart/marketd/asset"
	"github.com/assetmart/marketd/fault"
	"github.com/assetmart/marketd/pay"
	"github.com/assetmart/marketd/storage"
)

// native units charged per byte of persistent record growth
const storageByteCost = 100

// globals
type globalDataType struct {
	sync.RWMutex
	log             *logger.L
	registryAccount account.Account
	payer           pay.Payer
}

// global storage
var globalData globalDataType

// Initialise - set the registry identity and the transfer primitive
func Initialise(registryAccount account.Account, payer pay.Payer) error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil != globalData.payer {
		return fault.ErrAlreadyInitialised
	}
	if err := registryAccount.Validate(); nil != err {
		return err
	}

	globalData.log = logger.New("registry")
	globalData.log.Info("starting…")

	globalData.registryAccount = registryAccount
	globalData.payer = payer
	return nil
}

// Finalise - shut down the registry
func Finalise() {
	globalData.Lock()
	defer globalData.Unlock()

	if nil == globalData.payer {
		return
	}
	globalData.log.Info("shutting down…")
	globalData.log.Flush()
	globalData.payer = nil
	globalData.registryAccount = ""
	globalData.log = nil
}

// Account - the registry's own account identifier
func Account() account.Account {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.registryAccount
}

// fetch a record inside a transaction
func fetchAsset(trx storage.Transaction, assetId asset.ID) (*asset.Record, error) {
	buffer := trx.Get(storage.Pool.Assets, assetId.Bytes())
	if nil == buffer {
		return nil, fault.ErrAssetNotFound
	}
	return asset.Unpack(buffer)
}

func storeAsset(trx storage.Transaction, assetId asset.ID, record *asset.Record) {
	trx.Put(storage.Pool.Assets, assetId.Bytes(), record.Pack())
}

// owner index key: owner ++ 00 ++ asset id
func ownerIndexKey(owner account.Account, assetId asset.ID) []byte {
	key := make([]byte, 0, len(owner)+1+len(assetId))
	key = append(key, owner.Bytes()...)
	key = append(key, 0x00)
	return append(key, assetId.Bytes()...)
}

// cost of n bytes of record growth
func storageCost(bytes uint64) (amount.Amount, error) {
	return amount.FromUint64(storageByteCost).MulUint64(bytes)
}
