// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"encoding/json"

	"github.com/assetmart/marketd/amount"
	"github.com/assetmart/marketd/fault"
	"github.com/assetmart/marketd/messagebus"
	"github.com/assetmart/marketd/rent"
	"github.com/assetmart/marketd/sale"
	"github.com/assetmart/marketd/storage"
)

// the sale argument layout this marketplace understands
const saleArgsVersion = 1

// listing parameters carried inside an approval message
type saleArgs struct {
	Version int    `json:"version"`
	Price   string `json:"price"`
}

// OnApprove - intake for listings, driven by approval notifications
//
// a seller lists by approving the marketplace with a message holding
// the sale arguments; the notification must arrive from a registry on
// behalf of a distinct signer, the signer must own the asset, and the
// seller's rent must cover one more listing. The approval sequence in
// the notification is the one the eventual purchase will enforce
func OnApprove(note messagebus.ApprovalNotification) error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil == globalData.payer {
		return fault.ErrNotInitialised
	}

	// a registry relays on behalf of a signer, never for itself
	if note.RegistryId == note.Signer {
		return fault.ErrDirectCallRejected
	}
	if note.Signer != note.Owner {
		return fault.ErrOwnerMismatch
	}

	covered, err := rent.Covers(note.Owner, 1)
	if nil != err {
		return err
	}
	if !covered {
		return fault.ErrInsufficientRent
	}

	args := saleArgs{}
	if err := json.Unmarshal(note.Message, &args); nil != err {
		return fault.ErrMalformedSaleArgs
	}
	if saleArgsVersion != args.Version {
		return fault.ErrMalformedSaleArgs
	}
	price, err := parsePrice(args.Price)
	if nil != err {
		return err
	}

	trx := storage.NewTransaction()
	sale.Insert(trx, &sale.Listing{
		Owner:      note.Owner,
		ApprovalId: note.ApprovalId,
		RegistryId: note.RegistryId,
		AssetId:    note.AssetId,
		Price:      price,
	})
	if err := trx.Commit(); nil != err {
		return err
	}

	globalData.log.Infof("listed %q on %s by %s for %s",
		note.AssetId, note.RegistryId, note.Owner, price)
	return nil
}

func parsePrice(text string) (amount.Amount, error) {
	price, err := amount.FromDecimal(text)
	if nil != err {
		return amount.Zero, fault.ErrMalformedSaleArgs
	}
	return price, nil
}
