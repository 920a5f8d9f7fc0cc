// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - daemon settings from a Lua file
package configuration

import (
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/assetmart/marketd/account"
	"github.com/assetmart/marketd/fault"
)

// file defaults
const (
	defaultDataDirectory = "."
	defaultPidFile       = "marketd.pid"
	defaultDatabase      = "data/market"
	defaultLogDirectory  = "log"
	defaultLogFile       = "marketd.log"
	defaultLogSize       = 1048576
	defaultLogCount      = 10
)

// Configuration - the daemon settings
type Configuration struct {
	DataDirectory   string               `gluamapper:"data_directory"`
	PidFile         string               `gluamapper:"pidfile"`
	Database        string               `gluamapper:"database"`
	RegistryAccount string               `gluamapper:"registry_account"`
	MarketAccount   string               `gluamapper:"market_account"`
	Logging         logger.Configuration `gluamapper:"logging"`
}

// GetConfiguration - read a Lua configuration file
//
// relative paths inside the file are resolved against the data
// directory, and the data directory itself against the directory
// holding the file
func GetConfiguration(fileName string) (*Configuration, error) {

	fileName, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}

	config := &Configuration{
		DataDirectory: defaultDataDirectory,
		PidFile:       defaultPidFile,
		Database:      defaultDatabase,
		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				logger.DefaultTag: "info",
			},
		},
	}

	if err := ParseConfigurationFile(fileName, config); nil != err {
		return nil, err
	}

	if err := account.Account(config.RegistryAccount).Validate(); nil != err {
		return nil, err
	}
	if err := account.Account(config.MarketAccount).Validate(); nil != err {
		return nil, err
	}
	if config.RegistryAccount == config.MarketAccount {
		return nil, fault.ErrInvalidAccount
	}

	config.DataDirectory = ensureAbsolute(filepath.Dir(fileName), config.DataDirectory)
	config.PidFile = ensureAbsolute(config.DataDirectory, config.PidFile)
	config.Database = ensureAbsolute(config.DataDirectory, config.Database)
	config.Logging.Directory = ensureAbsolute(config.DataDirectory, config.Logging.Directory)

	return config, nil
}

func ensureAbsolute(directory string, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(directory, path)
}
