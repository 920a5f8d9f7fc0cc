// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/assetmart/marketd/background"
)

type counter struct {
	started int32
	stopped int32
}

func (c *counter) Run(args interface{}, shutdown <-chan struct{}) {
	atomic.AddInt32(&c.started, 1)

	n := args.(int32)
	<-shutdown
	atomic.AddInt32(&c.stopped, n)
}

func TestStartStop(t *testing.T) {

	first := &counter{}
	second := &counter{}

	processes := background.Processes{first, second}

	handle := background.Start(processes, int32(1))
	time.Sleep(20 * time.Millisecond)

	if 1 != atomic.LoadInt32(&first.started) || 1 != atomic.LoadInt32(&second.started) {
		t.Fatalf("processes did not start")
	}

	handle.Stop()

	if 1 != atomic.LoadInt32(&first.stopped) {
		t.Errorf("first process did not finish")
	}
	if 1 != atomic.LoadInt32(&second.stopped) {
		t.Errorf("second process did not finish")
	}
}

func TestStopNil(t *testing.T) {
	var handle *background.T
	handle.Stop() // must not panic
}
