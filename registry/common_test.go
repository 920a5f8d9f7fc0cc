// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/assetmart/marketd/pay"
	"github.com/assetmart/marketd/registry"
	"github.com/assetmart/marketd/storage"
)

const (
	testingDirName   = "testing"
	databaseFileName = testingDirName + "/test"

	registryAccount = "nft.registry-main"
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
	return ledger
}

func teardown(t *testing.T) {
	registry.Finalise()
	storage.Finalise()
	logger.Finalise()
	removeFiles()
}
