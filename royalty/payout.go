// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package royalty

import (
	"github.com/assetmart/marketd/account"
	"github.com/assetmart/marketd/amount"
	"github.com/assetmart/marketd/fault"
)

// settlement pays at most this many accounts in one purchase
const MaximumPayoutRecipients = 10

// Payout - per-account amounts for one sale, consumed exactly once
type Payout map[account.Account]amount.Amount

// Verify - the payout invariant
//
// 1 to 10 entries whose sum equals the sale total exactly or falls
// one unit short (rounding slack); anything else is malformed and the
// caller must not disburse any of it
func (payout Payout) Verify(total amount.Amount) error {

	if 0 == len(payout) || len(payout) > MaximumPayoutRecipients {
		return fault.ErrMalformedPayout
	}

	remainder := total
	for _, value := range payout {
		r, err := remainder.Sub(value)
		if nil != err {
			return fault.ErrMalformedPayout
		}
		remainder = r
	}

	if remainder.IsZero() {
		return nil
	}
	if 0 == remainder.Cmp(amount.FromUint64(1)) {
		return nil
	}
	return fault.ErrMalformedPayout
}
