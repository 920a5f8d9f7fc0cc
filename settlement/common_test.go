// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package settlement_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/assetmart/marketd/pay"
	"github.com/assetmart/marketd/settlement"
)

const (
	testingDirName = "testing"

	marketAccount = "market.main"
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

	ledger := pay.NewLedger()
	if err := settlement.Initialise(marketAccount, ledger); nil != err {
		t.Fatalf("settlement initialise error: %s", err)
	}
	return ledger
}

func teardown(t *testing.T) {
	settlement.Finalise()
	logger.Finalise()
	removeFiles()
}
