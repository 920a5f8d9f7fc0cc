// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package amount - unsigned 128 bit balances
//
// All prices, deposits and payouts are denominated in the smallest
// native unit of the host platform. Arithmetic is checked; overflow
// and underflow are reported as errors, never wrapped.
package amount

import (
	"github.com/holiman/uint256"

	"github.com/assetmart/marketd/fault"
)

// width restriction: the platform balance type is u128
const maximumBits = 128

// bytes in the fixed storage encoding
const ByteLength = 16

// Amount - an unsigned 128 bit quantity of the native unit
type Amount struct {
	n uint256.Int
}

// Zero - the zero amount
var Zero = Amount{}

// FromUint64 - amount from a native integer
func FromUint64(u uint64) Amount {
	var z uint256.Int
	z.SetUint64(u)
	return Amount{n: z}
}

// FromDecimal - amount from its decimal string form
func FromDecimal(s string) (Amount, error) {
	z, err := uint256.FromDecimal(s)
	if nil != err || z.BitLen() > maximumBits {
		return Zero, fault.ErrInvalidAmount
	}
	return Amount{n: *z}, nil
}

// FromBytes - amount from the fixed 16 byte big endian encoding
func FromBytes(buffer []byte) (Amount, error) {
	if ByteLength != len(buffer) {
		return Zero, fault.ErrInvalidAmount
	}
	var z uint256.Int
	z.SetBytes(buffer)
	return Amount{n: z}, nil
}

// Bytes - fixed 16 byte big endian encoding
func (a Amount) Bytes() []byte {
	b32 := a.n.Bytes32()
	buffer := make([]byte, ByteLength)
	copy(buffer, b32[16:])
	return buffer
}

// Add - checked addition
func (a Amount) Add(b Amount) (Amount, error) {
	var z uint256.Int
	_, carry := z.AddOverflow(&a.n, &b.n)
	if carry || z.BitLen() > maximumBits {
		return Zero, fault.ErrAmountOverflow
	}
	return Amount{n: z}, nil
}

// Sub - checked subtraction
func (a Amount) Sub(b Amount) (Amount, error) {
	var z uint256.Int
	_, borrow := z.SubOverflow(&a.n, &b.n)
	if borrow {
		return Zero, fault.ErrAmountUnderflow
	}
	return Amount{n: z}, nil
}

// MulUint64 - checked scalar multiplication
func (a Amount) MulUint64(n uint64) (Amount, error) {
	var z uint256.Int
	_, overflow := z.MulOverflow(&a.n, uint256.NewInt(n))
	if overflow || z.BitLen() > maximumBits {
		return Zero, fault.ErrAmountOverflow
	}
	return Amount{n: z}, nil
}

// BasisPoints - floor(a × bps ÷ 10000)
//
// intermediate product fits 256 bits so cannot overflow; the result
// never exceeds a for bps ≤ 10000
func (a Amount) BasisPoints(bps uint16) Amount {
	var z uint256.Int
	z.Mul(&a.n, uint256.NewInt(uint64(bps)))
	z.Div(&z, uint256.NewInt(10000))
	return Amount{n: z}
}

// Cmp - three way comparison
func (a Amount) Cmp(b Amount) int {
	return a.n.Cmp(&b.n)
}

// LessThan - a < b
func (a Amount) LessThan(b Amount) bool {
	return a.n.Lt(&b.n)
}

// IsZero - true for the zero amount
func (a Amount) IsZero() bool {
	return a.n.IsZero()
}

// Uint64 - native integer form, second result false on excess
func (a Amount) Uint64() (uint64, bool) {
	if !a.n.IsUint64() {
		return 0, false
	}
	return a.n.Uint64(), true
}

// String - decimal form
func (a Amount) String() string {
	return a.n.Dec()
}

// MarshalBinary - the fixed 16 byte encoding, used by CBOR records
func (a Amount) MarshalBinary() ([]byte, error) {
	return a.Bytes(), nil
}

// UnmarshalBinary - decode the fixed 16 byte encoding
func (a *Amount) UnmarshalBinary(buffer []byte) error {
	parsed, err := FromBytes(buffer)
	if nil != err {
		return err
	}
	*a = parsed
	return nil
}

// MarshalJSON - quoted decimal, the platform wire form for u128
func (a Amount) MarshalJSON() ([]byte, error) {
	s := a.String()
	buffer := make([]byte, 0, len(s)+2)
	buffer = append(buffer, '"')
	buffer = append(buffer, s...)
	return append(buffer, '"'), nil
}

// UnmarshalJSON - accept only the quoted decimal form
func (a *Amount) UnmarshalJSON(buffer []byte) error {
	if len(buffer) < 3 || '"' != buffer[0] || '"' != buffer[len(buffer)-1] {
		return fault.ErrInvalidAmount
	}
	parsed, err := FromDecimal(string(buffer[1 : len(buffer)-1]))
	if nil != err {
		return err
	}
	*a = parsed
	return nil
}
