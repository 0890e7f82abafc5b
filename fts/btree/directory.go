package btree

import (
	"sync"

	"github.com/boltdb/bolt"
	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"

	"github.com/dolthub/go-fulltext-index/ftserrors"
)

// maxEntries bounds how many entries a page may hold before it is
// split (spec §4.4 gives no fixed fanout; this is the directory's own
// choice, kept small so unit tests can exercise splits without huge
// fixtures).
const maxEntries = 4

// Directory is the persistent term-index described in spec §4.4:
// an ordered-key store mapping a normalized term to a leaf page id,
// with split, verify, and crash-safe commit/rollback.
//
// A sequence of mutating calls (Insert/Expunge/Update) shares one
// bolt write transaction until FlushAllPages commits it or
// RecoverAllPages discards it — this is what lets "a sequence ending
// in flushAllPages" behave atomically per spec §4.4, using bolt's own
// transaction boundary rather than reimplementing one.
type Directory struct {
	mu     sync.Mutex
	path   string
	st     *store
	tx     *bolt.Tx
	tracer opentracing.Tracer
}

// Create opens (creating if absent) the directory at path.
func Create(path string, tracer opentracing.Tracer) (*Directory, error) {
	st, err := openStore(path)
	if err != nil {
		return nil, err
	}
	if tracer == nil {
		tracer = opentracing.NoopTracer{}
	}
	return &Directory{path: path, st: st, tracer: tracer}, nil
}

// Clear discards every page and resets the header to empty, inside
// its own committed transaction.
func (d *Directory) Clear() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.discardLocked(); err != nil {
		return err
	}
	return d.st.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(pagesBucket); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		if _, err := tx.CreateBucket(pagesBucket); err != nil {
			return err
		}
		return putHeader(tx, emptyHeader())
	})
}

// Move closes the underlying file and reopens it at newPath.
func (d *Directory) Move(newPath string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.discardLocked(); err != nil {
		return err
	}
	if err := d.st.db.Close(); err != nil {
		return err
	}
	if err := moveFile(d.path, newPath); err != nil {
		return err
	}
	st, err := openStore(newPath)
	if err != nil {
		return err
	}
	d.st = st
	d.path = newPath
	return nil
}

func (d *Directory) beginLocked() (*bolt.Tx, error) {
	if d.tx != nil {
		return d.tx, nil
	}
	tx, err := d.st.db.Begin(true)
	if err != nil {
		return nil, err
	}
	d.tx = tx
	return tx, nil
}

func (d *Directory) discardLocked() error {
	if d.tx == nil {
		return nil
	}
	err := d.tx.Rollback()
	d.tx = nil
	return err
}

// FlushAllPages commits the open mutation sequence, making it durable
// and ending the sequence (spec §4.4: "a sequence ending in
// flushAllPages is atomic").
func (d *Directory) FlushAllPages() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.tx == nil {
		return nil
	}
	err := d.tx.Commit()
	d.tx = nil
	return err
}

// SaveAllPages commits the open sequence and immediately begins a new
// transaction: work committed by the Save survives a later
// RecoverAllPages, while work done after it is rolled back.
func (d *Directory) SaveAllPages() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.tx == nil {
		return nil
	}
	if err := d.tx.Commit(); err != nil {
		return err
	}
	d.tx = nil
	tx, err := d.st.db.Begin(true)
	if err != nil {
		return err
	}
	d.tx = tx
	return nil
}

// RecoverAllPages discards every page mutation made since the last
// commit, per spec §4.4's failure semantics ("on any exception the
// directory invokes recoverAllPages and rethrows").
func (d *Directory) RecoverAllPages() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.discardLocked()
}

// Search returns the leaf-value stored for key, or found=false if key
// is absent.
func (d *Directory) Search(key string) (value uint32, found bool, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	span := d.tracer.StartSpan("btree.Search")
	defer span.Finish()

	tx, err := d.beginLocked()
	if err != nil {
		return 0, false, err
	}
	h := getHeader(tx)
	if h.empty() {
		return 0, false, nil
	}
	page, err := d.descendLocked(tx, h.RootID, key)
	if err != nil {
		return 0, false, err
	}
	idx, exact := page.find(key)
	if !exact {
		return 0, false, nil
	}
	return page.Entries[idx].Payload, true, nil
}

// descendLocked walks from a page id to the leaf that would contain
// key, following non-leaf routing entries.
func (d *Directory) descendLocked(tx *bolt.Tx, pageID uint32, key string) (*Page, error) {
	page, err := getPage(tx, pageID)
	if err != nil {
		return nil, err
	}
	for !page.IsLeaf {
		idx := routeIndex(page, key)
		page, err = getPage(tx, page.Entries[idx].Payload)
		if err != nil {
			return nil, err
		}
	}
	return page, nil
}

// routeIndex picks the child entry to descend into: the rightmost
// entry whose key is <= the search key, or 0 if key precedes every
// entry (each non-leaf entry's key is the smallest key reachable
// through its child, per spec §3's BTreePage definition).
func routeIndex(page *Page, key string) int {
	idx := 0
	for i, e := range page.Entries {
		if e.Key <= key {
			idx = i
		} else {
			break
		}
	}
	return idx
}

// path records the page ids visited during a descent, root first,
// leaf last, so split propagation can walk back up.
func (d *Directory) descendPathLocked(tx *bolt.Tx, rootID uint32, key string) ([]uint32, error) {
	ids := []uint32{rootID}
	page, err := getPage(tx, rootID)
	if err != nil {
		return nil, err
	}
	for !page.IsLeaf {
		idx := routeIndex(page, key)
		childID := page.Entries[idx].Payload
		ids = append(ids, childID)
		page, err = getPage(tx, childID)
		if err != nil {
			return nil, err
		}
	}
	return ids, nil
}

// Insert maps key to value, overwriting any existing mapping for key.
func (d *Directory) Insert(key string, value uint32) (err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	span := d.tracer.StartSpan("btree.Insert")
	defer span.Finish()

	tx, err := d.beginLocked()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			d.discardLocked()
		}
	}()

	h := getHeader(tx)
	if h.empty() {
		id, aerr := allocatePageID(tx)
		if aerr != nil {
			return aerr
		}
		leaf := newLeafPage(id)
		leaf.Entries = []Entry{{Key: key, Payload: value}}
		if perr := putPage(tx, leaf); perr != nil {
			return perr
		}
		h.RootID, h.LeftmostLeafID, h.RightmostLeafID = id, id, id
		h.Depth = 1
		h.EntryCount = 1
		return putHeader(tx, h)
	}

	ids, derr := d.descendPathLocked(tx, h.RootID, key)
	if derr != nil {
		return derr
	}
	leafID := ids[len(ids)-1]
	leaf, gerr := getPage(tx, leafID)
	if gerr != nil {
		return gerr
	}

	idx, exact := leaf.find(key)
	if exact {
		leaf.Entries[idx].Payload = value
		return putPage(tx, leaf)
	}
	leaf.insertAt(idx, Entry{Key: key, Payload: value})
	h.EntryCount++

	if len(leaf.Entries) <= maxEntries {
		if perr := putPage(tx, leaf); perr != nil {
			return perr
		}
		return putHeader(tx, h)
	}

	if serr := d.splitUpward(tx, &h, ids, leaf); serr != nil {
		return serr
	}
	return putHeader(tx, h)
}

// splitUpward splits an overflowing page and, recursively, any
// ancestor whose new routing entry overflows it in turn, finally
// growing the tree's depth if the root itself splits.
func (d *Directory) splitUpward(tx *bolt.Tx, h *Header, ids []uint32, page *Page) error {
	level := len(ids) - 1 // index of page within ids

	mid := len(page.Entries) / 2
	rightEntries := append([]Entry(nil), page.Entries[mid:]...)
	page.Entries = page.Entries[:mid]

	rightID, err := allocatePageID(tx)
	if err != nil {
		return err
	}
	right := &Page{
		PageID:  rightID,
		PrevID:  page.PageID,
		NextID:  page.NextID,
		Step:    page.Step,
		IsLeaf:  page.IsLeaf,
		Entries: rightEntries,
	}

	if right.NextID != undefined {
		next, gerr := getPage(tx, right.NextID)
		if gerr != nil {
			return gerr
		}
		next.PrevID = rightID
		if perr := putPage(tx, next); perr != nil {
			return perr
		}
	} else if page.IsLeaf && page.PageID == h.RightmostLeafID {
		h.RightmostLeafID = rightID
	}
	page.NextID = rightID

	if perr := putPage(tx, page); perr != nil {
		return perr
	}
	if perr := putPage(tx, right); perr != nil {
		return perr
	}

	separator := Entry{Key: right.Entries[0].Key, Payload: rightID}

	if level == 0 {
		// The root just split: allocate a new root one level taller.
		newRootID, aerr := allocatePageID(tx)
		if aerr != nil {
			return aerr
		}
		newRoot := &Page{
			PageID: newRootID,
			PrevID: undefined,
			NextID: undefined,
			Step:   page.Step + 1,
			IsLeaf: false,
			Entries: []Entry{
				{Key: firstKey(page), Payload: page.PageID},
				separator,
			},
		}
		if perr := putPage(tx, newRoot); perr != nil {
			return perr
		}
		h.RootID = newRootID
		h.Depth++
		return nil
	}

	parentID := ids[level-1]
	parent, gerr := getPage(tx, parentID)
	if gerr != nil {
		return gerr
	}
	idx, _ := parent.find(separator.Key)
	parent.insertAt(idx, separator)

	if len(parent.Entries) <= maxEntries {
		return putPage(tx, parent)
	}
	return d.splitUpward(tx, h, ids[:level], parent)
}

func firstKey(p *Page) string {
	if len(p.Entries) == 0 {
		return ""
	}
	return p.Entries[0].Key
}

// Expunge removes key from the directory. It is a no-op if key is
// absent.
func (d *Directory) Expunge(key string) (err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	span := d.tracer.StartSpan("btree.Expunge")
	defer span.Finish()

	tx, err := d.beginLocked()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			d.discardLocked()
		}
	}()

	h := getHeader(tx)
	if h.empty() {
		return nil
	}
	ids, derr := d.descendPathLocked(tx, h.RootID, key)
	if derr != nil {
		return derr
	}
	leaf, gerr := getPage(tx, ids[len(ids)-1])
	if gerr != nil {
		return gerr
	}
	idx, exact := leaf.find(key)
	if !exact {
		return nil
	}
	leaf.removeAt(idx)
	h.EntryCount--
	if len(leaf.Entries) == 0 && len(ids) > 1 {
		if uerr := d.unlinkEmpty(tx, &h, ids); uerr != nil {
			return uerr
		}
		return putHeader(tx, h)
	}
	if perr := putPage(tx, leaf); perr != nil {
		return perr
	}
	return putHeader(tx, h)
}

// unlinkEmpty removes an emptied page from its level's chain and from
// its parent's routing entries, recursing when the parent empties in
// turn and collapsing the root when it is left with a single child.
func (d *Directory) unlinkEmpty(tx *bolt.Tx, h *Header, ids []uint32) error {
	level := len(ids) - 1
	page, err := getPage(tx, ids[level])
	if err != nil {
		return err
	}

	if page.PrevID != undefined {
		prev, gerr := getPage(tx, page.PrevID)
		if gerr != nil {
			return gerr
		}
		prev.NextID = page.NextID
		if perr := putPage(tx, prev); perr != nil {
			return perr
		}
	} else if page.IsLeaf {
		h.LeftmostLeafID = page.NextID
	}
	if page.NextID != undefined {
		next, gerr := getPage(tx, page.NextID)
		if gerr != nil {
			return gerr
		}
		next.PrevID = page.PrevID
		if perr := putPage(tx, next); perr != nil {
			return perr
		}
	} else if page.IsLeaf {
		h.RightmostLeafID = page.PrevID
	}
	if derr := deletePage(tx, page.PageID); derr != nil {
		return derr
	}

	parent, err := getPage(tx, ids[level-1])
	if err != nil {
		return err
	}
	for i, e := range parent.Entries {
		if e.Payload == page.PageID {
			parent.removeAt(i)
			break
		}
	}
	if len(parent.Entries) == 0 {
		if level-1 == 0 {
			*h = emptyHeader()
			return deletePage(tx, parent.PageID)
		}
		return d.unlinkEmpty(tx, h, ids[:level])
	}
	if level-1 == 0 && !parent.IsLeaf && len(parent.Entries) == 1 {
		h.RootID = parent.Entries[0].Payload
		h.Depth--
		return deletePage(tx, parent.PageID)
	}
	return putPage(tx, parent)
}

// Update replaces (oldKey, oldValue) with (newKey, newValue); absent
// oldKey raises EntryNotFound (spec §4.4/§7).
func (d *Directory) Update(oldKey string, oldValue uint32, newKey string, newValue uint32) (err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	span := d.tracer.StartSpan("btree.Update")
	defer span.Finish()

	tx, err := d.beginLocked()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			d.discardLocked()
		}
	}()

	h := getHeader(tx)
	if h.empty() {
		return ftserrors.ErrEntryNotFound.New(oldKey)
	}
	ids, derr := d.descendPathLocked(tx, h.RootID, oldKey)
	if derr != nil {
		return derr
	}
	leaf, gerr := getPage(tx, ids[len(ids)-1])
	if gerr != nil {
		return gerr
	}
	idx, exact := leaf.find(oldKey)
	if !exact {
		return ftserrors.ErrEntryNotFound.New(oldKey)
	}
	leaf.removeAt(idx)
	if perr := putPage(tx, leaf); perr != nil {
		return perr
	}

	if oldKey == newKey {
		idx2, _ := leaf.find(newKey)
		leaf.insertAt(idx2, Entry{Key: newKey, Payload: newValue})
		return putPage(tx, leaf)
	}

	ids2, derr2 := d.descendPathLocked(tx, getHeader(tx).RootID, newKey)
	if derr2 != nil {
		return derr2
	}
	leaf2, gerr2 := getPage(tx, ids2[len(ids2)-1])
	if gerr2 != nil {
		return gerr2
	}
	idx2, exact2 := leaf2.find(newKey)
	if exact2 {
		// The new key already existed, so the net effect is one entry
		// removed.
		leaf2.Entries[idx2].Payload = newValue
		h.EntryCount--
		if perr := putPage(tx, leaf2); perr != nil {
			return perr
		}
		return putHeader(tx, h)
	}
	leaf2.insertAt(idx2, Entry{Key: newKey, Payload: newValue})
	if len(leaf2.Entries) <= maxEntries {
		return putPage(tx, leaf2)
	}
	if serr := d.splitUpward(tx, &h, ids2, leaf2); serr != nil {
		return serr
	}
	return putHeader(tx, h)
}

// Verify performs the integrity check described in spec §4.4: key
// ordering within every reachable page, leaf-chain left-to-right sum
// against Header.EntryCount, and that the leftmost/rightmost leaves
// have no prev/next respectively. Any discrepancy raises
// VerifyAborted after logging a structured message.
func (d *Directory) Verify() (err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	span := d.tracer.StartSpan("btree.Verify")
	defer span.Finish()

	tx, err := d.beginLocked()
	if err != nil {
		return err
	}

	h := getHeader(tx)
	if h.empty() {
		return nil
	}

	if verr := d.verifyOrdering(tx, h.RootID); verr != nil {
		return d.abortVerify(verr)
	}

	var sum uint32
	id := h.LeftmostLeafID
	var prev uint32 = undefined
	for id != undefined {
		leaf, gerr := getPage(tx, id)
		if gerr != nil {
			return d.abortVerify(gerr)
		}
		if leaf.PrevID != prev {
			return d.abortVerify(ftserrors.ErrVerifyAborted.New("leaf chain prev pointer mismatch"))
		}
		sum += uint32(len(leaf.Entries))
		prev = id
		id = leaf.NextID
	}
	if prev != h.RightmostLeafID {
		return d.abortVerify(ftserrors.ErrVerifyAborted.New("rightmost leaf mismatch"))
	}
	if sum != h.EntryCount {
		return d.abortVerify(ftserrors.ErrVerifyAborted.New("entry count mismatch"))
	}
	return nil
}

func (d *Directory) verifyOrdering(tx *bolt.Tx, pageID uint32) error {
	page, err := getPage(tx, pageID)
	if err != nil {
		return err
	}
	for i := 1; i < len(page.Entries); i++ {
		if page.Entries[i-1].Key >= page.Entries[i].Key {
			return ftserrors.ErrVerifyAborted.New("keys not strictly ascending on page")
		}
	}
	if !page.IsLeaf {
		for _, e := range page.Entries {
			if err := d.verifyOrdering(tx, e.Payload); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *Directory) abortVerify(cause error) error {
	logrus.WithError(cause).Warn("btree: verify aborted")
	if ftserrors.ErrVerifyAborted.Is(cause) {
		return cause
	}
	return ftserrors.ErrVerifyAborted.Wrap(cause, "btree verify")
}

// Close flushes any open sequence and closes the underlying store.
func (d *Directory) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.tx != nil {
		if err := d.tx.Commit(); err != nil {
			return err
		}
		d.tx = nil
	}
	return d.st.db.Close()
}
