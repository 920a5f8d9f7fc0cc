// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"github.com/assetmart/marketd/account"
	"github.com/assetmart/marketd/amount"
	"github.com/assetmart/marketd/fault"
	"github.com/assetmart/marketd/rent"
	"github.com/assetmart/marketd/storage"
)

// DepositStorage - prepay listing rent for a beneficiary
//
// a caller may fund somebody else's rent; the beneficiary defaults to
// the caller when empty
func DepositStorage(caller account.Account, beneficiary account.Account, deposit amount.Amount) error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil == globalData.payer {
		return fault.ErrNotInitialised
	}
	if "" == beneficiary {
		beneficiary = caller
	}
	if err := beneficiary.Validate(); nil != err {
		return err
	}

	trx := storage.NewTransaction()
	if err := rent.Deposit(trx, beneficiary, deposit); nil != err {
		return err
	}
	if err := trx.Commit(); nil != err {
		return err
	}

	globalData.log.Infof("rent deposit %s for %s", deposit, beneficiary)
	return nil
}

// WithdrawStorage - refund all rent above the active listing minimum
func WithdrawStorage(caller account.Account) error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil == globalData.payer {
		return fault.ErrNotInitialised
	}

	trx := storage.NewTransaction()
	if err := rent.Withdraw(trx, caller, globalData.payer); nil != err {
		return err
	}
	if err := trx.Commit(); nil != err {
		return err
	}

	globalData.log.Infof("rent withdraw for %s", caller)
	return nil
}

// StorageBalance - current prepaid rent for an account
func StorageBalance(owner account.Account) amount.Amount {
	globalData.RLock()
	defer globalData.RUnlock()
	return rent.BalanceOf(owner)
}

// StorageMinimum - rent reserved per active listing
func StorageMinimum() amount.Amount {
	return rent.StoragePerSale()
}
