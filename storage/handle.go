// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/logger"
)

// PoolHandle - access to one prefixed key space of the database
type PoolHandle struct {
	prefix   byte
	database *leveldb.DB
}

// a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

func newPool(db *leveldb.DB, prefix byte) *PoolHandle {
	return &PoolHandle{
		prefix:   prefix,
		database: db,
	}
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Put - store a key/value bytes pair to the database
//
// direct write outside any transaction; only for tests and migration
func (p *PoolHandle) Put(key []byte, value []byte) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p.database {
		logger.Panic("pool.Put nil database")
		return
	}
	err := p.database.Put(p.prefixKey(key), value, nil)
	logger.PanicIfError("pool.Put", err)
}

// Delete - remove a key from the database
func (p *PoolHandle) Delete(key []byte) {
	poolData.RLock()
	defer poolData.RUnlock()
	err := p.database.Delete(p.prefixKey(key), nil)
	logger.PanicIfError("pool.Delete", err)
}

// Get - read a value for a given key
//
// this returns the actual element - copy the result if it must be preserved
func (p *PoolHandle) Get(key []byte) []byte {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p.database {
		return nil
	}
	value, err := p.database.Get(p.prefixKey(key), nil)
	if leveldb.ErrNotFound == err {
		return nil
	}
	logger.PanicIfError("pool.Get", err)
	return value
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) bool {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p.database {
		return false
	}
	value, err := p.database.Has(p.prefixKey(key), nil)
	logger.PanicIfError("pool.Has", err)
	return value
}

// Scan - fetch elements whose keys start with prefix
//
// skips offset matching elements then returns up to limit items, keys
// are returned with the pool prefix stripped
func (p *PoolHandle) Scan(prefix []byte, offset uint64, limit int) []Element {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p.database || limit <= 0 {
		return nil
	}

	iter := p.database.NewIterator(ldb_util.BytesPrefix(p.prefixKey(prefix)), nil)
	defer iter.Release()

	results := make([]Element, 0, limit)
	n := uint64(0)

	for iter.Next() {
		if n < offset {
			n += 1
			continue
		}
		if len(results) >= limit {
			break
		}

		// contents of the returned slices must not be modified, and
		// are only valid until the next call to Next
		key := iter.Key()
		value := iter.Value()

		dataKey := make([]byte, len(key)-1) // strip the prefix
		copy(dataKey, key[1:])
		dataValue := make([]byte, len(value))
		copy(dataValue, value)

		results = append(results, Element{Key: dataKey, Value: dataValue})
		n += 1
	}
	logger.PanicIfError("pool.Scan", iter.Error())
	return results
}

// Count - number of elements whose keys start with prefix
func (p *PoolHandle) Count(prefix []byte) uint64 {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p.database {
		return 0
	}

	iter := p.database.NewIterator(ldb_util.BytesPrefix(p.prefixKey(prefix)), nil)
	defer iter.Release()

	n := uint64(0)
	for iter.Next() {
		n += 1
	}
	logger.PanicIfError("pool.Count", iter.Error())
	return n
}
