// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/assetmart/marketd/account"
	"github.com/assetmart/marketd/fault"
	"github.com/assetmart/marketd/royalty"
)

// per approval map entry overhead in the packed record: four bytes of
// length framing plus the eight byte sequence number
const approvalEntryOverhead = 4 + 8

// Record - the persistent state of one asset
//
// NextApprovalSeq only ever increases; every approval value handed
// out was allocated from it, so a sequence number can never be
// reused within the life of the asset
type Record struct {
	Owner           account.Account            `cbor:"1,keyasint"`
	Approvals       map[account.Account]uint64 `cbor:"2,keyasint"`
	NextApprovalSeq uint64                     `cbor:"3,keyasint"`
	Royalty         royalty.Table              `cbor:"4,keyasint"`
}

// Pack - encode a record for storage
func (record *Record) Pack() []byte {
	buffer, err := cbor.Marshal(record)
	if nil != err {
		// a record assembled by the registry always encodes
		panic("asset: pack failed: " + err.Error())
	}
	return buffer
}

// Unpack - decode a stored record
func Unpack(buffer []byte) (*Record, error) {
	if 0 == len(buffer) {
		return nil, fault.ErrAssetNotFound
	}
	record := &Record{}
	err := cbor.Unmarshal(buffer, record)
	if nil != err {
		return nil, err
	}
	return record, nil
}

// ApprovalBytes - storage consumed by one approval entry
//
// charged to the owner when granting and refunded when the entry is
// removed, so the delta must be a pure function of the grantee
func ApprovalBytes(grantee account.Account) uint64 {
	return uint64(len(grantee)) + approvalEntryOverhead
}

// ApprovalsBytes - total storage consumed by a set of approvals
func ApprovalsBytes(approvals map[account.Account]uint64) uint64 {
	total := uint64(0)
	for grantee := range approvals {
		total += ApprovalBytes(grantee)
	}
	return total
}

// Snapshot - deep copy for the pre-transfer return value
func (record *Record) Snapshot() *Record {
	approvals := make(map[account.Account]uint64, len(record.Approvals))
	for grantee, seq := range record.Approvals {
		approvals[grantee] = seq
	}
	table := make(royalty.Table, len(record.Royalty))
	for acct, bps := range record.Royalty {
		table[acct] = bps
	}
	return &Record{
		Owner:           record.Owner,
		Approvals:       approvals,
		NextApprovalSeq: record.NextApprovalSeq,
		Royalty:         table,
	}
}
