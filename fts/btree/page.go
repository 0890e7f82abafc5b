package btree

import (
	"encoding/binary"

	"github.com/dolthub/go-fulltext-index/ftserrors"
)

// Entry is one (key, payload) pair within a Page. In a leaf page,
// payload is the leaf-value the directory maps key to (spec §4.4:
// "search(key)->leafPageId"); in a non-leaf page, payload is the
// child page id and Key is the routing key: every key in that child
// is >= Key, except that the first entry's child also holds keys
// below it.
type Entry struct {
	Key     string
	Payload uint32
}

// Page is one physical B-tree page: a leaf or an internal node. Pages
// form a doubly linked chain at every level via Prev/Next, per spec
// §3 ("prev-id, next-id ... leaves form a doubly linked list").
type Page struct {
	PageID  uint32
	PrevID  uint32
	NextID  uint32
	Step    uint32 // distance from the leaf level; 0 for leaves
	IsLeaf  bool
	Entries []Entry
}

func newLeafPage(id uint32) *Page {
	return &Page{PageID: id, PrevID: undefined, NextID: undefined, Step: 0, IsLeaf: true}
}

// find returns the index of the first entry whose key is >= key, and
// whether an exact match was found at that index. Entries within a
// page are required to stay strictly ascending (spec §4.4 invariant).
func (p *Page) find(key string) (idx int, exact bool) {
	lo, hi := 0, len(p.Entries)
	for lo < hi {
		mid := (lo + hi) / 2
		if p.Entries[mid].Key < key {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(p.Entries) && p.Entries[lo].Key == key {
		return lo, true
	}
	return lo, false
}

func (p *Page) insertAt(idx int, e Entry) {
	p.Entries = append(p.Entries, Entry{})
	copy(p.Entries[idx+1:], p.Entries[idx:])
	p.Entries[idx] = e
}

func (p *Page) removeAt(idx int) {
	p.Entries = append(p.Entries[:idx], p.Entries[idx+1:]...)
}

// encode renders a page as a length-prefixed binary record: a fixed
// header followed by each entry's key length, key bytes, and payload.
func (p *Page) encode() []byte {
	buf := make([]byte, 0, 32+16*len(p.Entries))
	var hdr [17]byte
	binary.BigEndian.PutUint32(hdr[0:4], p.PageID)
	binary.BigEndian.PutUint32(hdr[4:8], p.PrevID)
	binary.BigEndian.PutUint32(hdr[8:12], p.NextID)
	binary.BigEndian.PutUint32(hdr[12:16], p.Step)
	if p.IsLeaf {
		hdr[16] = 1
	}
	buf = append(buf, hdr[:]...)

	var countBuf [2]byte
	binary.BigEndian.PutUint16(countBuf[:], uint16(len(p.Entries)))
	buf = append(buf, countBuf[:]...)

	for _, e := range p.Entries {
		var klen [2]byte
		binary.BigEndian.PutUint16(klen[:], uint16(len(e.Key)))
		buf = append(buf, klen[:]...)
		buf = append(buf, e.Key...)
		var payload [4]byte
		binary.BigEndian.PutUint32(payload[:], e.Payload)
		buf = append(buf, payload[:]...)
	}
	return buf
}

func decodePage(buf []byte) (*Page, error) {
	if len(buf) < 19 {
		return nil, ftserrors.ErrUnexpected.New("btree: truncated page record")
	}
	p := &Page{
		PageID: binary.BigEndian.Uint32(buf[0:4]),
		PrevID: binary.BigEndian.Uint32(buf[4:8]),
		NextID: binary.BigEndian.Uint32(buf[8:12]),
		Step:   binary.BigEndian.Uint32(buf[12:16]),
		IsLeaf: buf[16] == 1,
	}
	count := binary.BigEndian.Uint16(buf[17:19])
	off := 19
	p.Entries = make([]Entry, 0, count)
	for i := 0; i < int(count); i++ {
		if off+2 > len(buf) {
			return nil, ftserrors.ErrUnexpected.New("btree: truncated entry key length")
		}
		klen := int(binary.BigEndian.Uint16(buf[off : off+2]))
		off += 2
		if off+klen+4 > len(buf) {
			return nil, ftserrors.ErrUnexpected.New("btree: truncated entry body")
		}
		key := string(buf[off : off+klen])
		off += klen
		payload := binary.BigEndian.Uint32(buf[off : off+4])
		off += 4
		p.Entries = append(p.Entries, Entry{Key: key, Payload: payload})
	}
	return p, nil
}
