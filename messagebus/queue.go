// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"github.com/google/uuid"

	"github.com/assetmart/marketd/account"
	"github.com/assetmart/marketd/amount"
	"github.com/assetmart/marketd/asset"
	"github.com/assetmart/marketd/royalty"
)

// internal constants
const (
	queueSize = 1000
)

// Message - one queued continuation
type Message struct {
	From string
	Item interface{}
}

// TransferPayoutRequest - settlement asks the registry to move the
// asset and compute the royalty split
type TransferPayoutRequest struct {
	AttemptId     uuid.UUID
	RegistryId    account.Account
	Caller        account.Account
	Receiver      account.Account
	AssetId       asset.ID
	ApprovalId    uint64
	Memo          string
	Total         amount.Amount
	MaxRecipients int
}

// PayoutResolution - the registry's eventual answer to a
// TransferPayoutRequest; Failed covers outright remote failure, a
// malformed Payout is delivered as-is for settlement to judge
type PayoutResolution struct {
	AttemptId uuid.UUID
	Payout    royalty.Payout
	Failed    bool
}

// ApprovalNotification - fire-and-forget grant notice emitted by the
// registry when an approval carries an opaque message
type ApprovalNotification struct {
	RegistryId account.Account
	Signer     account.Account
	AssetId    asset.ID
	Owner      account.Account
	Grantee    account.Account
	ApprovalId uint64
	Message    []byte
}

var (
	// for queueing data
	queue = make(chan Message, queueSize)
)

// Send - data to queue
func Send(from string, item interface{}) {
	queue <- Message{
		From: from,
		Item: item,
	}
}

// Chan - channel to read from
func Chan() <-chan Message {
	return queue
}
