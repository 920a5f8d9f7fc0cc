// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/assetmart/marketd/fault"
)

// exported storage pools
//
// every pool owns one single byte key prefix; see Initialise for the
// assignments
type pools struct {
	Assets            *PoolHandle
	AssetOwnerIndex   *PoolHandle
	Sales             *PoolHandle
	SaleOwnerIndex    *PoolHandle
	SaleRegistryIndex *PoolHandle
	RentBalances      *PoolHandle
	TestData          *PoolHandle
}

// Pool - the set of exported pools
var Pool pools

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentDBVersion = 0x100

// holds the database handle
var poolData struct {
	sync.RWMutex
	db *leveldb.DB
}

// Initialise - open up the database connection
//
// this must be called before any pool is accessed
func Initialise(database string) error {
	poolData.Lock()
	defer poolData.Unlock()

	if nil != poolData.db {
		return fault.ErrAlreadyInitialised
	}

	db, err := leveldb.OpenFile(database+".leveldb", &ldb_opt.Options{
		ErrorIfExist: false,
	})
	if nil != err {
		return err
	}

	// ensure no database downgrade
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		err = db.Put(versionKey, []byte{currentDBVersion >> 8, currentDBVersion & 0xff}, nil)
		if nil != err {
			db.Close()
			return err
		}
	} else if nil != err {
		db.Close()
		return err
	} else {
		version := uint16(versionValue[0])<<8 | uint16(versionValue[1])
		if version > currentDBVersion {
			db.Close()
			return fault.ErrWrongNetworkForData
		}
	}

	poolData.db = db

	Pool.Assets = newPool(db, 'A')
	Pool.AssetOwnerIndex = newPool(db, 'W')
	Pool.Sales = newPool(db, 'S')
	Pool.SaleOwnerIndex = newPool(db, 'O')
	Pool.SaleRegistryIndex = newPool(db, 'R')
	Pool.RentBalances = newPool(db, 'D')
	Pool.TestData = newPool(db, 'Z')

	return nil
}

// Finalise - close the database connection
func Finalise() {
	poolData.Lock()
	defer poolData.Unlock()

	if nil == poolData.db {
		return
	}

	poolData.db.Close()
	poolData.db = nil
	Pool = pools{}
}

// IsInitialised - for callers that need to verify the store is open
func IsInitialised() bool {
	poolData.RLock()
	defer poolData.RUnlock()
	return nil != poolData.db
}
