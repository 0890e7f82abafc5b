// Package btree implements the BTreeDirectory described in spec §4.4:
// a persistent, ordered term → leaf-page-id index with split, verify,
// and crash-safe commit, backed by github.com/boltdb/bolt's
// transactional page store (the pack's own B+tree-shaped dependency).
package btree

import "encoding/binary"

// undefined is the on-disk sentinel for "no such page id" (spec §6:
// "u32=0xFFFFFFFF denotes undefined").
const undefined uint32 = 0xFFFFFFFF

// headerSize is the fixed on-disk size of a Header: five uint32 fields.
const headerSize = 20

// Header is the B-tree directory's root record (spec §4.4 "BTreeHeader"):
// {root-page-id, leftmost-leaf-id, rightmost-leaf-id, entry-count, depth}.
// depth >= 1 whenever entryCount > 0; on an empty tree all three page
// ids are undefined.
type Header struct {
	RootID          uint32
	LeftmostLeafID  uint32
	RightmostLeafID uint32
	EntryCount      uint32
	Depth           uint32
}

// emptyHeader is the header of a freshly created, empty directory.
func emptyHeader() Header {
	return Header{RootID: undefined, LeftmostLeafID: undefined, RightmostLeafID: undefined}
}

// encode renders the header as its fixed 20-byte on-disk layout
// (spec §6: "[rootId:u32][leftLeafId:u32][rightLeafId:u32][count:u32][depth:u32]").
func (h Header) encode() []byte {
	buf := make([]byte, headerSize)
	binary.BigEndian.PutUint32(buf[0:4], h.RootID)
	binary.BigEndian.PutUint32(buf[4:8], h.LeftmostLeafID)
	binary.BigEndian.PutUint32(buf[8:12], h.RightmostLeafID)
	binary.BigEndian.PutUint32(buf[12:16], h.EntryCount)
	binary.BigEndian.PutUint32(buf[16:20], h.Depth)
	return buf
}

func decodeHeader(buf []byte) Header {
	return Header{
		RootID:          binary.BigEndian.Uint32(buf[0:4]),
		LeftmostLeafID:  binary.BigEndian.Uint32(buf[4:8]),
		RightmostLeafID: binary.BigEndian.Uint32(buf[8:12]),
		EntryCount:      binary.BigEndian.Uint32(buf[12:16]),
		Depth:           binary.BigEndian.Uint32(buf[16:20]),
	}
}

func (h Header) empty() bool { return h.RootID == undefined }
