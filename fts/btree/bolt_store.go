package btree

import (
	"github.com/boltdb/bolt"

	"github.com/dolthub/go-fulltext-index/ftserrors"
)

var (
	pagesBucket = []byte("pages")
	metaBucket  = []byte("meta")
)

const headerKey = "header"
const nextIDKey = "nextID"

// store is the physical page layer BTreeDirectory sits on, backed by
// boltdb's own page-oriented, transactional B+tree (the pack's direct
// dependency, see DESIGN.md): bolt's Update/View transactions give the
// crash-safe commit/rollback the directory contract calls
// flushAllPages/recoverAllPages.
type store struct {
	db *bolt.DB
}

func openStore(path string) (*store, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(pagesBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(metaBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &store{db: db}, nil
}

func pageKey(id uint32) []byte {
	return []byte{byte(id >> 24), byte(id >> 16), byte(id >> 8), byte(id)}
}

func getHeader(tx *bolt.Tx) Header {
	b := tx.Bucket(metaBucket).Get([]byte(headerKey))
	if b == nil {
		return emptyHeader()
	}
	return decodeHeader(b)
}

func putHeader(tx *bolt.Tx, h Header) error {
	return tx.Bucket(metaBucket).Put([]byte(headerKey), h.encode())
}

func decodeUint32(buf []byte) uint32 {
	return uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])
}

func encodeUint32(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

// allocatePageID hands out the next unused page id, tracked in the
// meta bucket so ids stay unique across the directory's lifetime even
// after pages are deleted by merges.
func allocatePageID(tx *bolt.Tx) (uint32, error) {
	b := tx.Bucket(metaBucket)
	var next uint32
	if raw := b.Get([]byte(nextIDKey)); raw != nil {
		next = decodeUint32(raw)
	}
	if err := b.Put([]byte(nextIDKey), encodeUint32(next+1)); err != nil {
		return 0, err
	}
	return next, nil
}

func getPage(tx *bolt.Tx, id uint32) (*Page, error) {
	raw := tx.Bucket(pagesBucket).Get(pageKey(id))
	if raw == nil {
		return nil, ftserrors.ErrEntryNotFound.New("btree: page not found")
	}
	return decodePage(raw)
}

func putPage(tx *bolt.Tx, p *Page) error {
	return tx.Bucket(pagesBucket).Put(pageKey(p.PageID), p.encode())
}

func deletePage(tx *bolt.Tx, id uint32) error {
	return tx.Bucket(pagesBucket).Delete(pageKey(id))
}
