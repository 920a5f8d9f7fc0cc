// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bridge_test

import (
	"os"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/assetmart/marketd/bridge"
	"github.com/assetmart/marketd/market"
	"github.com/assetmart/marketd/pay"
	"github.com/assetmart/marketd/registry"
	"github.com/assetmart/marketd/settlement"
	"github.com/assetmart/marketd/storage"
)

const (
	testingDirName   = "testing"
	databaseFileName = testingDirName + "/test"

	registryAccount = "nft.registry-main"
	marketAccount   = "market.main"
)

func removeFiles() {
	os.RemoveAll(testingDirName)
}

func setup(t *testing.T) *pay.Ledger {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0o700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "test.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	if err := storage.Initialise(databaseFileName); nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}

	ledger := pay.NewLedger()
	if err := registry.Initialise(registryAccount, ledger); nil != err {
		t.Fatalf("registry initialise error: %s", err)
	}
	if err := settlement.Initialise(marketAccount, ledger); nil != err {
		t.Fatalf("settlement initialise error: %s", err)
	}
	if err := market.Initialise(marketAccount, ledger); nil != err {
		t.Fatalf("market initialise error: %s", err)
	}
	if err := bridge.Initialise(); nil != err {
		t.Fatalf("bridge initialise error: %s", err)
	}
	return ledger
}

func teardown(t *testing.T) {
	bridge.Finalise()
	market.Finalise()
	settlement.Finalise()
	registry.Finalise()
	storage.Finalise()
	logger.Finalise()
	removeFiles()
}

// poll until the condition holds, delivery is asynchronous
func waitFor(t *testing.T, what string, condition func() bool) {
	for i := 0; i < 200; i += 1 {
		if condition() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
