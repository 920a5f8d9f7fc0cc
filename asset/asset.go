// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package asset - per-asset ownership, approval and royalty records
//
// records are owned by the registry and persisted as CBOR; everything
// here is encoding and validation, mutation lives in the registry
package asset

import (
	"github.com/assetmart/marketd/fault"
)

const (
	minimumIdLength = 1
	maximumIdLength = 256
)

// ID - an asset identifier, unique within one registry
type ID string

// IsValid - printable, bounded, and free of the key delimiter byte
func (id ID) IsValid() bool {
	if len(id) < minimumIdLength || len(id) > maximumIdLength {
		return false
	}
	for i := 0; i < len(id); i += 1 {
		c := id[i]
		if c < 0x20 || c > 0x7e {
			return false
		}
	}
	return true
}

// Validate - error form of IsValid
func (id ID) Validate() error {
	if !id.IsValid() {
		return fault.ErrInvalidAssetId
	}
	return nil
}

// Bytes - key material for composite database keys
func (id ID) Bytes() []byte {
	return []byte(id)
}

// String - the asset identifier
func (id ID) String() string {
	return string(id)
}
