// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - scheduled continuations between the
// marketplace and the registry
//
// a call across the registry boundary never happens inline: the
// initiating operation queues an item and returns, and a separate
// worker delivers it later as an independent call. The queue is the
// whole of the cross-boundary latency model
package messagebus
