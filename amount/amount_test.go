// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package amount_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/assetmart/marketd/amount"
	"github.com/assetmart/marketd/fault"
)

func TestArithmetic(t *testing.T) {

	a := amount.FromUint64(1000000)
	b := amount.FromUint64(999999)

	sum, err := a.Add(b)
	assert.NoError(t, err)
	assert.Equal(t, "1999999", sum.String())

	diff, err := a.Sub(b)
	assert.NoError(t, err)
	assert.Equal(t, "1", diff.String())

	_, err = b.Sub(a)
	assert.Equal(t, fault.ErrAmountUnderflow, err)
}

func TestOverflow(t *testing.T) {

	// 2^128 - 1
	max, err := amount.FromDecimal("340282366920938463463374607431768211455")
	assert.NoError(t, err)

	_, err = max.Add(amount.FromUint64(1))
	assert.Equal(t, fault.ErrAmountOverflow, err)

	// 2^128 is out of range
	_, err = amount.FromDecimal("340282366920938463463374607431768211456")
	assert.Equal(t, fault.ErrInvalidAmount, err)
}

func TestBasisPoints(t *testing.T) {

	total := amount.FromUint64(10000)
	assert.Equal(t, "500", total.BasisPoints(500).String())
	assert.Equal(t, "300", total.BasisPoints(300).String())
	assert.Equal(t, "9200", total.BasisPoints(9200).String())

	// truncation towards zero
	odd := amount.FromUint64(9999)
	assert.Equal(t, "3332", odd.BasisPoints(3333).String())
}

func TestBytesRoundTrip(t *testing.T) {

	a, err := amount.FromDecimal("170141183460469231731687303715884105727")
	assert.NoError(t, err)

	buffer := a.Bytes()
	assert.Equal(t, amount.ByteLength, len(buffer))

	back, err := amount.FromBytes(buffer)
	assert.NoError(t, err)
	assert.Equal(t, 0, a.Cmp(back))

	_, err = amount.FromBytes(buffer[1:])
	assert.Equal(t, fault.ErrInvalidAmount, err)
}

func TestJSON(t *testing.T) {

	a := amount.FromUint64(500)
	buffer, err := json.Marshal(a)
	assert.NoError(t, err)
	assert.Equal(t, `"500"`, string(buffer))

	var back amount.Amount
	err = json.Unmarshal([]byte(`"750"`), &back)
	assert.NoError(t, err)
	assert.Equal(t, "750", back.String())

	// bare numbers are rejected: the wire form is a quoted decimal
	err = json.Unmarshal([]byte(`750`), &back)
	assert.Error(t, err)
}
