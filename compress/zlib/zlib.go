// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package zlib implements the RFC 1950 zlib wrapper around the
// DEFLATE decoder in github.com/purelib/zinflate/compress/flate:
// CMF/FLG header validation, the block loop, and the trailing
// Adler-32 check.
package zlib

import (
	"encoding/binary"
	"errors"
	"hash/adler32"

	"github.com/purelib/zinflate/compress/flate"
)

// Errors returned by the zlib wrapper itself; flate.Err* values from
// the block loop surface unwrapped through errors.Is.
var (
	ErrUnsupportedMethod           = errors.New("zlib: unsupported compression method")
	ErrInvalidHeaderCheck          = errors.New("zlib: invalid header check")
	ErrPresetDictionaryUnsupported = errors.New("zlib: preset dictionary unsupported")
	ErrChecksumMismatch            = errors.New("zlib: adler-32 checksum mismatch")
)

const (
	fdictMask  = 0x20
	methodMask = 0x0f
	deflateID  = 8
)

// Options configures a Decoder.
type Options struct {
	// Block configures the underlying DEFLATE decoder (buffer mode,
	// block size, resize-on-finalize).
	Block flate.Options
	// Verify enables Adler-32 trailer validation.
	Verify bool
}

// Decoder holds one zlib decode. Construct never fails; malformed
// input is reported from Inflate.
type Decoder struct {
	input  []byte
	verify bool
	opts   flate.Options
}

// Construct builds a Decoder over a complete zlib stream.
func Construct(input []byte, opts Options) *Decoder {
	return &Decoder{input: input, verify: opts.Verify, opts: opts.Block}
}

// Inflate validates the CMF/FLG header (RFC 1950 section 2.2), runs
// the DEFLATE block loop, then optionally verifies the Adler-32
// trailer (RFC 1950 section 2.3).
func (d *Decoder) Inflate() ([]byte, error) {
	if len(d.input) < 2 {
		return nil, flate.ErrTruncatedInput
	}
	cmf, flg := d.input[0], d.input[1]

	if cmf&methodMask != deflateID {
		return nil, ErrUnsupportedMethod
	}
	if (uint16(cmf)<<8|uint16(flg))%31 != 0 {
		return nil, ErrInvalidHeaderCheck
	}
	if flg&fdictMask != 0 {
		return nil, ErrPresetDictionaryUnsupported
	}

	dec := flate.NewDecoder(d.input[2:], d.opts)
	out, err := dec.Inflate()
	if err != nil {
		return nil, err
	}

	if d.verify {
		trailer := dec.Trailer()
		if len(trailer) < 4 {
			return nil, flate.ErrTruncatedInput
		}
		want := binary.BigEndian.Uint32(trailer[:4])
		got := adler32.Checksum(out)
		if want != got {
			return nil, ErrChecksumMismatch
		}
	}

	return out, nil
}

// FromString returns the raw bytes of s, for callers that need to
// feed a binary string through Construct. It is not part of the core
// decode state machine.
func FromString(s string) []byte {
	return []byte(s)
}
