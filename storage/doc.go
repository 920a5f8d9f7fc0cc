// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// one LevelDB database split into a set of pools, each identified by
// a single byte prefix on every key
//
//	Assets            A - asset id                      -> packed asset record
//	AssetOwnerIndex   W - owner ++ 00 ++ asset id       -> nil
//	Sales             S - registry ++ 00 ++ asset id    -> packed sale record
//	SaleOwnerIndex    O - owner ++ 00 ++ sale key       -> nil
//	SaleRegistryIndex R - registry ++ 00 ++ asset id    -> nil
//	RentBalances      D - account                       -> 16 byte amount
//	TestData          Z - testing only
//
// mutations by public operations are accumulated in a Transaction and
// written in one atomic batch, so a failed call leaves no partial
// state behind
package storage
