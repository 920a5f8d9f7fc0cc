// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package bridge - deliver queued continuations to their targets
//
// the single consumer of the message queue: transfer requests go to
// the registry, their resolutions come back to settlement, approval
// notices reach the marketplace. Delivery is in queue order, one
// message at a time, so a resolution can never overtake the request
// that caused it
package bridge

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/assetmart/marketd/background"
	"github.com/assetmart/marketd/fault"
	"github.com/assetmart/marketd/market"
	"github.com/assetmart/marketd/messagebus"
	"github.com/assetmart/marketd/registry"
	"github.com/assetmart/marketd/settlement"
)

// globals
type globalDataType struct {
	sync.RWMutex
	log        *logger.L
	background *background.T
	started    bool
}

// global storage
var globalData globalDataType

// Initialise - start the delivery process
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.started {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("bridge")
	globalData.log.Info("starting…")

	globalData.background = background.Start(background.Processes{
		&delivery{log: globalData.log},
	}, nil)
	globalData.started = true
	return nil
}

// Finalise - stop the delivery process
func Finalise() {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.started {
		return
	}
	globalData.log.Info("shutting down…")
	globalData.background.Stop()
	globalData.log.Flush()
	globalData.background = nil
	globalData.started = false
	globalData.log = nil
}

// the queue consumer
type delivery struct {
	log *logger.L
}

// Run - drain the queue until shutdown
func (d *delivery) Run(args interface{}, shutdown <-chan struct{}) {
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case msg := <-messagebus.Chan():
			d.deliver(msg)
		}
	}
}

func (d *delivery) deliver(msg messagebus.Message) {
	switch item := msg.Item.(type) {

	case messagebus.TransferPayoutRequest:
		d.transferPayout(item)

	case messagebus.PayoutResolution:
		if err := settlement.Resolve(item); nil != err {
			d.log.Errorf("resolution for %s rejected: %s", item.AttemptId, err)
		}

	case messagebus.ApprovalNotification:
		if item.Grantee != market.Account() {
			d.log.Debugf("approval notice for %s dropped, not ours", item.Grantee)
			return
		}
		if err := market.OnApprove(item); nil != err {
			// the grant in the registry stands, only the listing is refused
			d.log.Warnf("listing %q by %s refused: %s", item.AssetId, item.Owner, err)
		}

	default:
		d.log.Errorf("unhandled message from %q: %v", msg.From, msg.Item)
	}
}

// forward a transfer request to the registry and queue the answer
//
// any failure, including a request aimed at a registry this process
// does not host, becomes a failed resolution; settlement never waits
// forever
func (d *delivery) transferPayout(request messagebus.TransferPayoutRequest) {

	resolution := messagebus.PayoutResolution{
		AttemptId: request.AttemptId,
	}

	if request.RegistryId != registry.Account() {
		d.log.Errorf("attempt %s: unknown registry %s", request.AttemptId, request.RegistryId)
		resolution.Failed = true
	} else {
		payout, err := registry.TransferPayout(
			request.Caller,
			request.Receiver,
			request.AssetId,
			request.ApprovalId,
			request.Memo,
			request.Total,
			request.MaxRecipients,
		)
		if nil != err {
			d.log.Warnf("attempt %s: transfer failed: %s", request.AttemptId, err)
			resolution.Failed = true
		} else {
			resolution.Payout = payout
		}
	}

	messagebus.Send("bridge", resolution)
}
