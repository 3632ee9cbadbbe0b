// Package primitives holds the identifiers shared by storage and execution.
package primitives

import "fmt"

// PageID addresses a page: the identity of its file and its zero-based page
// number within the file.
type PageID struct {
	TableID int
	PageNo  int
}

func (p PageID) String() string {
	return fmt.Sprintf("%d:%d", p.TableID, p.PageNo)
}

// RecordID locates a tuple on disk.
type RecordID struct {
	PageID PageID
	Slot   int
}

func (r RecordID) String() string {
	return fmt.Sprintf("%v:%d", r.PageID, r.Slot)
}
