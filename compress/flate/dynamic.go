// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package flate

// readDynamicTables parses HLIT/HDIST/HCLEN, decodes the code-length
// alphabet, then uses it to decode the combined literal/length and
// distance code-length vectors, as described in RFC 1951 section 3.2.7.
func (d *Decoder) readDynamicTables() (litlen, dist *huffmanTable, err error) {
	hlitV, err := d.br.readBits(5)
	if err != nil {
		return nil, nil, err
	}
	hlit := int(hlitV) + 257

	hdistV, err := d.br.readBits(5)
	if err != nil {
		return nil, nil, err
	}
	hdist := int(hdistV) + 1

	hclenV, err := d.br.readBits(4)
	if err != nil {
		return nil, nil, err
	}
	hclen := int(hclenV) + 4

	clLengths := make([]int, 19)
	for i := 0; i < hclen; i++ {
		v, err := d.br.readBits(3)
		if err != nil {
			return nil, nil, err
		}
		clLengths[codeLengthOrder[i]] = int(v)
	}
	clTable := buildHuffmanTable(clLengths)

	combined := make([]int, hlit+hdist)
	prev := 0
	havePrev := false
	for i := 0; i < len(combined); {
		sym, err := d.br.decodeSymbol(clTable)
		if err != nil {
			return nil, nil, err
		}
		switch {
		case sym <= 15:
			combined[i] = int(sym)
			prev = int(sym)
			havePrev = true
			i++
		case sym == 16:
			if !havePrev {
				return nil, nil, ErrInvalidBlockType
			}
			extra, err := d.br.readBits(2)
			if err != nil {
				return nil, nil, err
			}
			n := 3 + int(extra)
			if i+n > len(combined) {
				return nil, nil, ErrInvalidBlockType
			}
			for k := 0; k < n; k++ {
				combined[i] = prev
				i++
			}
		case sym == 17:
			extra, err := d.br.readBits(3)
			if err != nil {
				return nil, nil, err
			}
			n := 3 + int(extra)
			if i+n > len(combined) {
				return nil, nil, ErrInvalidBlockType
			}
			for k := 0; k < n; k++ {
				combined[i] = 0
				i++
			}
			prev = 0
		case sym == 18:
			extra, err := d.br.readBits(7)
			if err != nil {
				return nil, nil, err
			}
			n := 11 + int(extra)
			if i+n > len(combined) {
				return nil, nil, ErrInvalidBlockType
			}
			for k := 0; k < n; k++ {
				combined[i] = 0
				i++
			}
			prev = 0
		default:
			return nil, nil, ErrInvalidHuffmanCode
		}
	}

	litlenLengths := combined[:hlit]
	distLengths := combined[hlit:]
	return buildHuffmanTable(litlenLengths), buildHuffmanTable(distLengths), nil
}
