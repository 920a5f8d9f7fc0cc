// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/assetmart/marketd/fault"
)

// Transaction - accumulated writes for one public operation
//
// reads observe the pending writes; nothing reaches the database
// until Commit, so returning early on a validation error discards
// every pending mutation
type Transaction interface {
	Put(pool *PoolHandle, key []byte, value []byte)
	Delete(pool *PoolHandle, key []byte)
	Get(pool *PoolHandle, key []byte) []byte
	Has(pool *PoolHandle, key []byte) bool
	Commit() error
}

type transactionData struct {
	batch   *leveldb.Batch
	pending map[string][]byte
	deleted map[string]struct{}
}

// NewTransaction - start accumulating writes
func NewTransaction() Transaction {
	return &transactionData{
		batch:   new(leveldb.Batch),
		pending: make(map[string][]byte),
		deleted: make(map[string]struct{}),
	}
}

func (t *transactionData) Put(pool *PoolHandle, key []byte, value []byte) {
	prefixed := pool.prefixKey(key)
	t.batch.Put(prefixed, value)
	t.pending[string(prefixed)] = value
	delete(t.deleted, string(prefixed))
}

func (t *transactionData) Delete(pool *PoolHandle, key []byte) {
	prefixed := pool.prefixKey(key)
	t.batch.Delete(prefixed)
	t.deleted[string(prefixed)] = struct{}{}
	delete(t.pending, string(prefixed))
}

func (t *transactionData) Get(pool *PoolHandle, key []byte) []byte {
	prefixed := string(pool.prefixKey(key))
	if _, ok := t.deleted[prefixed]; ok {
		return nil
	}
	if value, ok := t.pending[prefixed]; ok {
		return value
	}
	return pool.Get(key)
}

func (t *transactionData) Has(pool *PoolHandle, key []byte) bool {
	prefixed := string(pool.prefixKey(key))
	if _, ok := t.deleted[prefixed]; ok {
		return false
	}
	if _, ok := t.pending[prefixed]; ok {
		return true
	}
	return pool.Has(key)
}

// Commit - write the whole batch atomically
func (t *transactionData) Commit() error {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return fault.ErrNotInitialised
	}
	return poolData.db.Write(t.batch, nil)
}
