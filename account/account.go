// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - externally assigned account identifiers
//
// Accounts are opaque names owned by the host platform; key and
// signature handling stays outside this process. Identifiers are
// restricted so that a reserved zero byte can be used as an
// unforgeable delimiter in composite database keys.
package account

import (
	"github.com/assetmart/marketd/fault"
)

const (
	minimumLength = 2
	maximumLength = 64
)

// Account - a validated account identifier
type Account string

// IsValid - check an identifier against the naming rules
//
// lower case letters, digits, '.', '_' and '-' only; the zero byte
// used as the composite key delimiter can never appear
func (a Account) IsValid() bool {
	if len(a) < minimumLength || len(a) > maximumLength {
		return false
	}
	for i := 0; i < len(a); i += 1 {
		c := a[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case '.' == c || '_' == c || '-' == c:
		default:
			return false
		}
	}
	return true
}

// Validate - error form of IsValid
func (a Account) Validate() error {
	if !a.IsValid() {
		return fault.ErrInvalidAccount
	}
	return nil
}

// Bytes - key material for composite database keys
func (a Account) Bytes() []byte {
	return []byte(a)
}

// String - the account identifier
func (a Account) String() string {
	return string(a)
}
