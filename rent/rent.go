// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rent - prepaid storage rent for marketplace listings
//
// every listing must be covered by prepaid rent before it is
// published; rent is reserved, never silently spent, and withdraw
// returns everything above the minimum for the currently active
// listings
package rent

import (
	"github.com/assetmart/marketd/account"
	"github.com/assetmart/marketd/amount"
	"github.com/assetmart/marketd/fault"
	"github.com/assetmart/marketd/pay"
	"github.com/assetmart/marketd/sale"
	"github.com/assetmart/marketd/storage"
)

// rent reserved for one active listing, in native units
const storagePerSale = 10000

// StoragePerSale - minimum rent per listing
func StoragePerSale() amount.Amount {
	return amount.FromUint64(storagePerSale)
}

// Deposit - add prepaid rent for a beneficiary
//
// at least one listing's worth per deposit, matching the granularity
// the coverage check operates on
func Deposit(trx storage.Transaction, beneficiary account.Account, deposit amount.Amount) error {

	if deposit.LessThan(StoragePerSale()) {
		return fault.ErrDepositBelowMinimum
	}

	balance, err := balanceIn(trx, beneficiary)
	if nil != err {
		return err
	}
	balance, err = balance.Add(deposit)
	if nil != err {
		return err
	}

	trx.Put(storage.Pool.RentBalances, beneficiary.Bytes(), balance.Bytes())
	return nil
}

// Withdraw - refund all rent not reserved by active listings
//
// computes the exact minimum for the caller's live listings, keeps
// precisely that and pays out the rest
func Withdraw(trx storage.Transaction, caller account.Account, payer pay.Payer) error {

	balance, err := balanceIn(trx, caller)
	if nil != err {
		return err
	}

	reserved, err := StoragePerSale().MulUint64(sale.CountByOwner(caller))
	if nil != err {
		return err
	}

	excess, err := balance.Sub(reserved)
	if nil != err {
		// balance below the reservation cannot happen while every
		// listing is admitted through the coverage check
		return fault.ErrInsufficientRent
	}

	if !excess.IsZero() {
		if err := payer.Pay(caller, excess); nil != err {
			return err
		}
	}

	if reserved.IsZero() {
		trx.Delete(storage.Pool.RentBalances, caller.Bytes())
	} else {
		trx.Put(storage.Pool.RentBalances, caller.Bytes(), reserved.Bytes())
	}
	return nil
}

// Covers - check prepaid rent against live listings plus extra ones
func Covers(owner account.Account, extra uint64) (bool, error) {

	balance := BalanceOf(owner)

	required, err := StoragePerSale().MulUint64(sale.CountByOwner(owner) + extra)
	if nil != err {
		return false, err
	}
	return !balance.LessThan(required), nil
}

// BalanceOf - current prepaid rent
func BalanceOf(owner account.Account) amount.Amount {
	buffer := storage.Pool.RentBalances.Get(owner.Bytes())
	if nil == buffer {
		return amount.Zero
	}
	balance, err := amount.FromBytes(buffer)
	if nil != err {
		return amount.Zero
	}
	return balance
}

// balance as seen by an in-progress transaction
func balanceIn(trx storage.Transaction, owner account.Account) (amount.Amount, error) {
	buffer := trx.Get(storage.Pool.RentBalances, owner.Bytes())
	if nil == buffer {
		return amount.Zero, nil
	}
	return amount.FromBytes(buffer)
}
