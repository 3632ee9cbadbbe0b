package pages

import (
	"go-heapdb/pkg/customerrors"
	"go-heapdb/pkg/primitives"
	"go-heapdb/pkg/schema"
	"go-heapdb/pkg/tuple"
	"go-heapdb/util/helpers"

	"github.com/pkg/errors"
)

// HeapSlots returns how many tuples of tupleSize bytes fit on a page of
// pageSize bytes, counting one header bit per tuple.
func HeapSlots(pageSize, tupleSize int) int {
	return (pageSize * 8) / (tupleSize*8 + 1)
}

// HeapHeaderSize returns the bytes used by the occupancy bitmap.
func HeapHeaderSize(numSlots int) int {
	return helpers.CeilDiv(numSlots, 8)
}

// HeapPage is the unordered tuple page. Layout is a bitmap header with one
// bit per slot, least significant bit first, followed by the fixed size
// slots. Trailing bytes are zero.
type HeapPage struct {
	id       primitives.PageID
	desc     *schema.TupleDesc
	pageSize int
	header   []byte
	tuples   []*tuple.Tuple
}

// NewHeapPage parses data, which must be exactly one page long.
func NewHeapPage(id primitives.PageID, desc *schema.TupleDesc, data []byte) (*HeapPage, error) {
	p := EmptyHeapPage(id, desc, len(data))
	if err := p.UnmarshalBinary(data); err != nil {
		return nil, errors.Wrapf(err, "failed to parse page %v", id)
	}
	return p, nil
}

// EmptyHeapPage returns a page with every slot free.
func EmptyHeapPage(id primitives.PageID, desc *schema.TupleDesc, pageSize int) *HeapPage {
	n := HeapSlots(pageSize, desc.Size())
	return &HeapPage{
		id:       id,
		desc:     desc,
		pageSize: pageSize,
		header:   make([]byte, HeapHeaderSize(n)),
		tuples:   make([]*tuple.Tuple, n),
	}
}

func (p *HeapPage) ID() primitives.PageID {
	return p.id
}

func (p *HeapPage) Schema() *schema.TupleDesc {
	return p.desc
}

func (p *HeapPage) NumSlots() int {
	return len(p.tuples)
}

func (p *HeapPage) HeaderSize() int {
	return len(p.header)
}

func (p *HeapPage) SlotUsed(i int) bool {
	if i < 0 || i >= len(p.tuples) {
		return false
	}
	return helpers.GetBit(p.header[i/8], i%8)
}

func (p *HeapPage) NumTuples() int {
	n := 0
	for i := range p.tuples {
		if p.SlotUsed(i) {
			n++
		}
	}
	return n
}

func (p *HeapPage) NumEmptySlots() int {
	return p.NumSlots() - p.NumTuples()
}

// AddTuple stores a copy of t in the first free slot and stamps the copy
// with its record id. t itself is left untouched. It only changes the
// in-memory page.
func (p *HeapPage) AddTuple(t *tuple.Tuple) error {
	if !t.Schema().Equal(p.desc) {
		return errors.Wrapf(customerrors.ErrInvalidArgument,
			"tuple schema %v does not match page schema %v", t.Schema(), p.desc)
	}

	for i := range p.tuples {
		if p.SlotUsed(i) {
			continue
		}
		stored := t.Copy()
		stored.SetRecordID(&primitives.RecordID{PageID: p.id, Slot: i})
		helpers.SetBit(&p.header[i/8], i%8, true)
		p.tuples[i] = stored
		return nil
	}
	return errors.Errorf("page %v is full", p.id)
}

func (p *HeapPage) Iterator() TupleIterator {
	it := &heapPageIterator{page: p, slot: -1}
	it.advance()
	return it
}

func (p *HeapPage) MarshalBinary() ([]byte, error) {
	buf := make([]byte, p.pageSize)
	copy(buf, p.header)

	offset := len(p.header)
	size := p.desc.Size()
	for i, t := range p.tuples {
		if p.SlotUsed(i) {
			b, err := t.MarshalBinary()
			if err != nil {
				return nil, errors.Wrapf(err, "failed to marshal slot %d", i)
			}
			copy(buf[offset:offset+size], b)
		}
		offset += size
	}

	return buf, nil
}

func (p *HeapPage) UnmarshalBinary(d []byte) error {
	if len(d) != p.pageSize {
		return errors.Wrapf(customerrors.ErrInvalidArgument,
			"page needs %d bytes, got %d", p.pageSize, len(d))
	}

	copy(p.header, d[:len(p.header)])

	offset := len(p.header)
	size := p.desc.Size()
	for i := range p.tuples {
		p.tuples[i] = nil
		if p.SlotUsed(i) {
			t, err := tuple.Parse(p.desc, d[offset:offset+size])
			if err != nil {
				return errors.Wrapf(err, "failed to parse slot %d", i)
			}
			t.SetRecordID(&primitives.RecordID{PageID: p.id, Slot: i})
			p.tuples[i] = t
		}
		offset += size
	}

	return nil
}

type heapPageIterator struct {
	page *HeapPage
	slot int
}

func (it *heapPageIterator) advance() {
	for it.slot++; it.slot < it.page.NumSlots(); it.slot++ {
		if it.page.SlotUsed(it.slot) {
			return
		}
	}
}

func (it *heapPageIterator) HasNext() bool {
	return it.slot < it.page.NumSlots()
}

func (it *heapPageIterator) Next() (*tuple.Tuple, error) {
	if !it.HasNext() {
		return nil, customerrors.ErrNoSuchElement
	}
	t := it.page.tuples[it.slot]
	it.advance()
	return t, nil
}
