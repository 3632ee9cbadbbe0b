package column

import (
	"fmt"

	"go-heapdb/pkg/types"
)

// Column describes a single field of a tuple. An empty Name means the
// field is unnamed.
type Column struct {
	Name string     `json:"name,omitempty"`
	Typ  types.Type `json:"type"`
}

func New(typ types.Type, name string) Column {
	return Column{Name: name, Typ: typ}
}

func (c Column) Named() bool {
	return c.Name != ""
}

// Equal compares type and name. An unnamed column only equals another
// unnamed column.
func (c Column) Equal(o Column) bool {
	return c.Typ == o.Typ && c.Name == o.Name
}

func (c Column) String() string {
	name := c.Name
	if !c.Named() {
		name = "null"
	}
	return fmt.Sprintf("%s(%s)", name, c.Typ)
}
