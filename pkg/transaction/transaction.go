package transaction

import (
	"strconv"
	"sync/atomic"
)

var counter atomic.Int64

// ID identifies a transaction. The zero value is not a valid id.
type ID int64

// NewID returns a process-unique, increasing transaction id.
func NewID() ID {
	return ID(counter.Add(1))
}

func (id ID) String() string {
	return "tx-" + strconv.FormatInt(int64(id), 10)
}
