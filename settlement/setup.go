// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package settlement - the purchase saga
//
// a purchase cannot finish in one step: the listing is consumed
// synchronously, then the asset transfer and royalty split happen in
// the registry and the answer comes back on the message queue. Each
// attempt is tracked here from initiation to its terminal state, and
// the buyer's funds are held until exactly one of disbursement or
// refund happens
package settlement

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/logger"

	"github.com/assetmart/marketd/account"
	"github.com/assetmart/marketd/fault"
	"github.com/assetmart/marketd/pay"
)

// how long a finished attempt stays queryable
const (
	terminalRetention = time.Hour
	cleanupInterval   = 10 * time.Minute
)

// globals
type globalDataType struct {
	sync.RWMutex
	log           *logger.L
	payer         pay.Payer
	marketAccount account.Account
	attempts      *gocache.Cache
}

// global storage
var globalData globalDataType

// Initialise - set up the attempt tracker
func Initialise(marketAccount account.Account, payer pay.Payer) error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil != globalData.payer {
		return fault.ErrAlreadyInitialised
	}
	if err := marketAccount.Validate(); nil != err {
		return err
	}

	globalData.log = logger.New("settlement")
	globalData.log.Info("starting…")

	globalData.marketAccount = marketAccount
	globalData.payer = payer
	globalData.attempts = gocache.New(terminalRetention, cleanupInterval)
	return nil
}

// Finalise - shut down
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
	globalData.attempts = nil
	globalData.log = nil
}
