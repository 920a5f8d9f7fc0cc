// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pay - the external transfer primitive
//
// the host platform executes transfers eventually; a nil error means
// only that the payment was scheduled, there is no completion signal
package pay

import (
	"sync"

	"github.com/assetmart/marketd/account"
	"github.com/assetmart/marketd/amount"
)

// Payer - schedule a payment of the native unit
type Payer interface {
	Pay(recipient account.Account, value amount.Amount) error
}

// Ledger - in-process payer accumulating balances
//
// stands in for the platform transfer primitive in tests and in the
// single-process daemon
type Ledger struct {
	sync.Mutex
	balances map[account.Account]amount.Amount
}

// NewLedger - create an empty ledger
func NewLedger() *Ledger {
	return &Ledger{
		balances: make(map[account.Account]amount.Amount),
	}
}

// Pay - credit the recipient
func (ledger *Ledger) Pay(recipient account.Account, value amount.Amount) error {
	ledger.Lock()
	defer ledger.Unlock()

	sum, err := ledger.balances[recipient].Add(value)
	if nil != err {
		return err
	}
	ledger.balances[recipient] = sum
	return nil
}

// Balance - total credited to an account so far
func (ledger *Ledger) Balance(recipient account.Account) amount.Amount {
	ledger.Lock()
	defer ledger.Unlock()
	return ledger.balances[recipient]
}
