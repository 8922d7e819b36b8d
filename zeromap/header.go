// Copyright 2023 The zerovec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package zeromap

import (
	"encoding/binary"

	"github.com/bpowers/zerovec/ule"
)

const (
	magicMapHeader   = uint32(0x5A4D4150)
	mapFormatVersion = uint32(1)
	headerSize       = 24
	maxUint32        = ^uint32(0)
)

type header struct {
	magic         uint32
	formatVersion uint32
	level0Len     uint32
	level1Len     uint32
	keysLen       uint32
	valuesLen     uint32
}

func (h *header) MarshalTo(buf []byte) {
	_ = buf[headerSize-1]
	binary.LittleEndian.PutUint32(buf[0:4], h.magic)
	binary.LittleEndian.PutUint32(buf[4:8], h.formatVersion)
	binary.LittleEndian.PutUint32(buf[8:12], h.level0Len)
	binary.LittleEndian.PutUint32(buf[12:16], h.level1Len)
	binary.LittleEndian.PutUint32(buf[16:20], h.keysLen)
	binary.LittleEndian.PutUint32(buf[20:24], h.valuesLen)
}

func (h *header) UnmarshalBytes(headerBytes []byte) error {
	if len(headerBytes) < headerSize {
		return ule.Structuralf("header too short: %d < %d", len(headerBytes), headerSize)
	}

	h.magic = binary.LittleEndian.Uint32(headerBytes[0:4])
	if h.magic != magicMapHeader {
		return ule.Structuralf("bad magic number (%x) -- not a zeromap or corrupted", h.magic)
	}

	h.formatVersion = binary.LittleEndian.Uint32(headerBytes[4:8])
	if h.formatVersion != mapFormatVersion {
		return ule.Structuralf("this version of zeromap can only read v%d maps; found v%d", mapFormatVersion, h.formatVersion)
	}

	h.level0Len = binary.LittleEndian.Uint32(headerBytes[8:12])
	h.level1Len = binary.LittleEndian.Uint32(headerBytes[12:16])
	h.keysLen = binary.LittleEndian.Uint32(headerBytes[16:20])
	h.valuesLen = binary.LittleEndian.Uint32(headerBytes[20:24])

	return nil
}

// bodyLen is the number of bytes following the header.
func (h *header) bodyLen() uint64 {
	return 4*uint64(h.level0Len) + 4*uint64(h.level1Len) + uint64(h.keysLen) + uint64(h.valuesLen)
}
