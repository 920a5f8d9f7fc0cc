// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/assetmart/marketd/account"
	"github.com/assetmart/marketd/asset"
	"github.com/assetmart/marketd/royalty"
)

func TestIdValidation(t *testing.T) {

	assert.True(t, asset.ID("token-1").IsValid())
	assert.True(t, asset.ID("Edition #4 of 10").IsValid())

	assert.False(t, asset.ID("").IsValid())
	assert.False(t, asset.ID("embedded\x00byte").IsValid())
	assert.False(t, asset.ID("line\nbreak").IsValid())
}

func TestRecordRoundTrip(t *testing.T) {

	record := &asset.Record{
		Owner: "alice",
		Approvals: map[account.Account]uint64{
			"market": 3,
			"bob":    4,
		},
		NextApprovalSeq: 5,
		Royalty: royalty.Table{
			"artist": 750,
		},
	}

	unpacked, err := asset.Unpack(record.Pack())
	assert.NoError(t, err)
	assert.Equal(t, record, unpacked)

	_, err = asset.Unpack(nil)
	assert.Error(t, err)
	_, err = asset.Unpack([]byte{0xff, 0x01, 0x02})
	assert.Error(t, err)
}

func TestApprovalBytes(t *testing.T) {

	// delta is a pure function of the grantee so grant and refund
	// always balance
	assert.Equal(t, asset.ApprovalBytes("market"), asset.ApprovalBytes("market"))
	assert.True(t, asset.ApprovalBytes("a-much-longer-name") > asset.ApprovalBytes("ab"))

	approvals := map[account.Account]uint64{"market": 1, "bob": 2}
	total := asset.ApprovalBytes("market") + asset.ApprovalBytes("bob")
	assert.Equal(t, total, asset.ApprovalsBytes(approvals))
}

func TestSnapshot(t *testing.T) {

	record := &asset.Record{
		Owner:           "alice",
		Approvals:       map[account.Account]uint64{"market": 1},
		NextApprovalSeq: 2,
		Royalty:         royalty.Table{"artist": 500},
	}

	snapshot := record.Snapshot()
	record.Approvals["bob"] = 9
	record.Royalty["other"] = 1

	assert.Equal(t, 1, len(snapshot.Approvals))
	assert.Equal(t, 1, len(snapshot.Royalty))
}
