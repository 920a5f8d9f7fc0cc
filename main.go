// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// marketd - a two party digital asset exchange daemon
//
// an asset registry and a marketplace in one process, joined by a
// message queue that carries the cross component continuations of the
// purchase saga
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/assetmart/marketd/account"
	"github.com/assetmart/marketd/bridge"
	"github.com/assetmart/marketd/configuration"
	"github.com/assetmart/marketd/market"
	"github.com/assetmart/marketd/pay"
	"github.com/assetmart/marketd/registry"
	"github.com/assetmart/marketd/settlement"
	"github.com/assetmart/marketd/storage"
)

// set by the linker: -ldflags "-X main.version=…"
var version = "zero"

// to check if PID file was created
var lockWasCreated = false

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		fmt.Printf("%s: version: %s\n", program, version)
		return
	}
	if len(options["help"]) > 0 || len(arguments) > 0 {
		exitwithstatus.Message(
			"usage: %s [--help] [--quiet] [--version] [--config-file=FILE]",
			program)
	}

	configurationFile := "marketd.conf"
	if len(options["config-file"]) > 0 {
		configurationFile = options["config-file"][len(options["config-file"])-1]
	}
	quiet := len(options["quiet"]) > 0

	config, err := configuration.GetConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: configuration error: %s", program, err)
	}

	if err := logger.Initialise(config.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed: %s", program, err)
	}
	defer logger.Finalise()

	log := logger.New("main")
	defer log.Info("shutting down…")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("configuration: %v", config)

	// grab lock file or fail
	lf, err := os.OpenFile(config.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0o600)
	if nil != err {
		if os.IsExist(err) {
			exitwithstatus.Message("%s: another instance is already running", program)
		}
		exitwithstatus.Message("%s: PID file: %q creation failed: %s", program, config.PidFile, err)
	}
	fmt.Fprintf(lf, "%d\n", os.Getpid())
	lf.Close()
	lockWasCreated = true
	defer removeAppLock(config.PidFile)

	registryAccount := account.Account(config.RegistryAccount)
	marketAccount := account.Account(config.MarketAccount)
	log.Infof("registry: %s", registryAccount)
	log.Infof("market: %s", marketAccount)
	log.Infof("database: %s", config.Database)

	// the transfer primitive shared by every component
	ledger := pay.NewLedger()

	log.Info("initialise storage")
	if err := storage.Initialise(config.Database); nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("%s: storage initialise error: %s", program, err)
	}
	defer storage.Finalise()

	log.Info("initialise registry")
	if err := registry.Initialise(registryAccount, ledger); nil != err {
		log.Criticalf("registry initialise error: %s", err)
		exitwithstatus.Message("%s: registry initialise error: %s", program, err)
	}
	defer registry.Finalise()

	log.Info("initialise settlement")
	if err := settlement.Initialise(marketAccount, ledger); nil != err {
		log.Criticalf("settlement initialise error: %s", err)
		exitwithstatus.Message("%s: settlement initialise error: %s", program, err)
	}
	defer settlement.Finalise()

	log.Info("initialise market")
	if err := market.Initialise(marketAccount, ledger); nil != err {
		log.Criticalf("market initialise error: %s", err)
		exitwithstatus.Message("%s: market initialise error: %s", program, err)
	}
	defer market.Finalise()

	// last: the queue consumer, everything it delivers to is up
	log.Info("initialise bridge")
	if err := bridge.Initialise(); nil != err {
		log.Criticalf("bridge initialise error: %s", err)
		exitwithstatus.Message("%s: bridge initialise error: %s", program, err)
	}
	defer bridge.Finalise()

	// wait for CTRL-C before shutting down to allow manual testing
	if !quiet {
		fmt.Printf("\nwaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…\n")
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if !quiet {
		fmt.Printf("received signal: %v\nshutting down…\n", sig)
	}
}

// remove the lock file - only if this instance created it
func removeAppLock(appLockFile string) {
	if lockWasCreated {
		os.Remove(appLockFile)
		lockWasCreated = false
	}
}
