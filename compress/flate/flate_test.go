// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package flate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitReaderReadBitsLSBFirst(t *testing.T) {
	// 0b1011_0010, LSB first: 0,1,0,0,1,1,0,1
	br := newBitReader([]byte{0xB2})
	for _, want := range []uint64{0, 1, 0, 0, 1, 1, 0, 1} {
		got, err := br.readBits(1)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestBitReaderTruncatedInput(t *testing.T) {
	br := newBitReader([]byte{0x01})
	_, err := br.readBits(8)
	require.NoError(t, err)
	_, err = br.readBits(1)
	assert.ErrorIs(t, err, ErrTruncatedInput)
}

func TestBitReaderPeekDoesNotConsume(t *testing.T) {
	br := newBitReader([]byte{0xFF, 0x00})
	v1, err := br.peekBits(8)
	require.NoError(t, err)
	v2, err := br.peekBits(8)
	require.NoError(t, err)
	assert.Equal(t, v1, v2)
	br.discardBits(8)
	v3, err := br.peekBits(8)
	require.NoError(t, err)
	assert.NotEqual(t, v1, v3)
}

func TestBitReaderAlignToByte(t *testing.T) {
	br := newBitReader([]byte{0xFF, 0xAB})
	_, err := br.readBits(3)
	require.NoError(t, err)
	br.alignToByte()
	out, ok := br.takeAlignedBytes(1)
	require.True(t, ok)
	assert.Equal(t, []byte{0xAB}, out)
}

// Stored block with a mismatched NLEN (RFC 1951 section 3.2.4).
func TestStoredBlockLengthMismatch(t *testing.T) {
	// BFINAL=1, BTYPE=00, then (unaligned padding), LEN=0x0005, NLEN
	// deliberately wrong (should be ^LEN).
	d := NewDecoder([]byte{0x01, 0x05, 0x00, 0x00, 0x00, 'h', 'e', 'l', 'l', 'o'}, Options{})
	_, err := d.Inflate()
	assert.ErrorIs(t, err, ErrInvalidStoredLength)
}

func TestInvalidBlockType(t *testing.T) {
	// BFINAL=1, BTYPE=11 (reserved).
	d := NewDecoder([]byte{0x07}, Options{})
	_, err := d.Inflate()
	assert.ErrorIs(t, err, ErrInvalidBlockType)
}

// Prefix truncation: every strict prefix of a valid block fails with
// TruncatedInput rather than a silent partial success.
func TestPrefixTruncation(t *testing.T) {
	full := []byte{0x01, 0x05, 0x00, 0xFA, 0xFF, 'H', 'e', 'l', 'l', 'o'}
	for n := 0; n < len(full); n++ {
		d := NewDecoder(full[:n], Options{})
		_, err := d.Inflate()
		assert.ErrorIsf(t, err, ErrTruncatedInput, "prefix length %d", n)
	}
	d := NewDecoder(full, Options{})
	out, err := d.Inflate()
	require.NoError(t, err)
	assert.Equal(t, []byte("Hello"), out)
}
