// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// error instances
//
// Provides a single instance of errors to allow easy comparison
package fault

// error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised      = ExistsError("already initialised")
	ErrAmountOverflow          = InvalidError("amount overflow")
	ErrAmountUnderflow         = InvalidError("amount underflow")
	ErrApprovalMismatch        = InvalidError("approval sequence mismatch")
	ErrAssetAlreadyExists      = ExistsError("asset already exists")
	ErrAssetNotFound           = NotFoundError("asset not found")
	ErrDepositBelowMinimum     = InvalidError("deposit below minimum rent for one sale")
	ErrDirectCallRejected      = InvalidError("approval notification must arrive via the registry")
	ErrInsufficientOffer       = InvalidError("offer is below the listing price")
	ErrInsufficientRent        = InvalidError("insufficient prepaid rent")
	ErrInvalidAccount          = InvalidError("account identifier is invalid")
	ErrInvalidAmount           = InvalidError("amount is invalid")
	ErrInvalidAssetId          = InvalidError("asset id is invalid")
	ErrInvalidRoyaltyTable     = InvalidError("royalty table is invalid")
	ErrKeyNotFound             = NotFoundError("key not found")
	ErrMalformedPayout         = ProcessError("payout violates the payout invariant")
	ErrMalformedSaleArgs       = InvalidError("sale arguments payload is malformed")
	ErrNotInitialised          = ProcessError("not initialised")
	ErrOwnerMismatch           = InvalidError("claimed owner is not the signer")
	ErrSaleNotFound            = NotFoundError("sale not found")
	ErrSelfPurchaseRejected    = InvalidError("cannot buy own sale")
	ErrSelfTransferRejected    = InvalidError("owner and receiver must be different")
	ErrSettlementNotFound      = NotFoundError("settlement attempt not found")
	ErrSettlementNotResolvable = ProcessError("settlement attempt already resolved")
	ErrTooManyRecipients       = InvalidError("royalty table exceeds the recipient limit")
	ErrUnauthorized            = InvalidError("caller is not owner or approved")
	ErrWrongNetworkForData     = InvalidError("data does not belong to this database")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
