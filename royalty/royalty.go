// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package royalty - royalty tables and the payout split calculator
//
// a royalty table assigns basis point shares to accounts; the split
// calculator turns a table and a sale total into per-account payouts
// with the owner absorbing all rounding loss
package royalty

import (
	"github.com/assetmart/marketd/account"
	"github.com/assetmart/marketd/amount"
	"github.com/assetmart/marketd/fault"
)

const (
	// whole sale in basis points
	totalBasisPoints = 10000

	// table size limit applied at mint time
	MaximumTableEntries = 6
)

// Table - basis point share per account, fixed at mint time
type Table map[account.Account]uint16

// Validate - mint time restrictions on a royalty table
//
// at most six entries, shares summing to no more than 100%
func (table Table) Validate() error {
	if len(table) > MaximumTableEntries {
		return fault.ErrInvalidRoyaltyTable
	}
	sum := uint32(0)
	for acct, bps := range table {
		if err := acct.Validate(); nil != err {
			return err
		}
		sum += uint32(bps)
		if sum > totalBasisPoints {
			return fault.ErrInvalidRoyaltyTable
		}
	}
	return nil
}

// Split - compute the payout for a sale
//
// every non-owner entry receives floor(bps × total ÷ 10000); the
// owner receives the floor share of all remaining basis points. Each
// share floors independently so the emitted sum can fall short of the
// total by up to one unit per non-owner entry; Payout.Verify decides
// what settlement will accept
//
// deterministic and side-effect free; used unchanged by the read-only
// payout preview and by settlement
func Split(table Table, owner account.Account, total amount.Amount, maxRecipients int) (Payout, error) {

	if len(table) > maxRecipients {
		return nil, fault.ErrTooManyRecipients
	}

	payout := make(Payout, len(table)+1)
	paidOut := uint16(0)

	for acct, bps := range table {
		if acct == owner {
			continue
		}
		payout[acct] = total.BasisPoints(bps)
		paidOut += bps
	}

	// previous owner absorbs the rounding loss
	payout[owner] = total.BasisPoints(totalBasisPoints - paidOut)

	return payout, nil
}
