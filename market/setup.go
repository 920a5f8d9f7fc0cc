// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package market - the marketplace surface
//
// listings enter through the registry's approval notification, are
// updated and removed by their sellers, and leave through a purchase
// which hands over to the settlement saga. Storage rent is the
// admission control: no covered rent, no listing
package market

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/assetmart/marketd/account"
	"github.com/assetmart/marketd/fault"
	"github.com/assetmart/marketd/pay"
)

// globals
type globalDataType struct {
	sync.RWMutex
	log           *logger.L
	marketAccount account.Account
	payer         pay.Payer
}

// global storage
var globalData globalDataType

// Initialise - set the marketplace identity and the transfer primitive
func Initialise(marketAccount account.Account, payer pay.Payer) error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil != globalData.payer {
		return fault.ErrAlreadyInitialised
	}
	if err := marketAccount.Validate(); nil != err {
		return err
	}

	globalData.log = logger.New("market")
	globalData.log.Info("starting…")

	globalData.marketAccount = marketAccount
	globalData.payer = payer
	return nil
}

// Finalise - shut down the marketplace
func Finalise() {
	globalData.Lock()
	defer globalData.Unlock()

	if nil == globalData.payer {
		return
	}
	globalData.log.Info("shutting down…")
	globalData.log.Flush()
	globalData.payer = nil
	globalData.marketAccount = ""
	globalData.log = nil
}

// Account - the marketplace's own account identifier
func Account() account.Account {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.marketAccount
}
