package table

import (
	"fmt"
	"strconv"

	"github.com/atomicstack/stock-table/internal/stock"
)

// SortDirection specifies the direction of sorting.
type SortDirection int

const (
	// SortNone restores the default order.
	SortNone SortDirection = iota
	// SortAscending indicates ascending sort order.
	SortAscending
	// SortDescending indicates descending sort order.
	SortDescending
)

// String returns the string representation of a SortDirection.
func (sd SortDirection) String() string {
	switch sd {
	case SortNone:
		return "none"
	case SortAscending:
		return "ascending"
	case SortDescending:
		return "descending"
	default:
		return fmt.Sprintf("unknown(%d)", int(sd))
	}
}

// Next cycles none -> ascending -> descending -> ascending.
func (sd SortDirection) Next() SortDirection {
	if sd == SortAscending {
		return SortDescending
	}
	return SortAscending
}

// SortState records the most recent sort applied to the rows.
type SortState struct {
	Key       string
	Direction SortDirection
}

// FixedSide reports where a column is pinned during horizontal scrolling.
type FixedSide int

const (
	FixedNone FixedSide = iota
	FixedLeft
)

// Capabilities toggles the interactive features of a delegate.
type Capabilities struct {
	LoopSelection   bool `yaml:"loop_selection"`
	ColumnResize    bool `yaml:"column_resize"`
	ColumnOrder     bool `yaml:"column_order"`
	ColumnSort      bool `yaml:"column_sort"`
	ColumnSelection bool `yaml:"column_selection"`
	FixedColumns    bool `yaml:"fixed_columns"`
}

// DefaultCapabilities enables everything except fixed columns.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		LoopSelection:   true,
		ColumnResize:    true,
		ColumnOrder:     true,
		ColumnSort:      true,
		ColumnSelection: true,
	}
}

// Paging bounds incremental loading.
type Paging struct {
	PageSize  int `yaml:"page_size"`
	MaxRows   int `yaml:"max_rows"`
	Threshold int `yaml:"threshold"`
}

// DefaultPaging appends 200 rows per page up to 6000 rows and asks for the
// next page once the cursor is within 150 rows of the end.
func DefaultPaging() Paging {
	return Paging{PageSize: 200, MaxRows: 6000, Threshold: 150}
}

// Value is a projected cell. Text is the display form.
type Value struct {
	Raw  interface{}
	Text string
}

// Column describes one table column.
type Column struct {
	Key      string
	Name     string
	Width    int
	Sortable bool
}

// field binds a column key to its projection and, when defined, its ordering.
type field struct {
	value   func(stock.Stock) Value
	compare func(a, b stock.Stock) int
}

var fields = map[string]field{
	"id": {
		value: func(s stock.Stock) Value { return Value{Raw: s.ID, Text: strconv.Itoa(s.ID)} },
		compare: func(a, b stock.Stock) int {
			switch {
			case a.ID < b.ID:
				return -1
			case a.ID > b.ID:
				return 1
			}
			return 0
		},
	},
	"symbol": {
		value: func(s stock.Stock) Value { return Value{Raw: s.Symbol, Text: s.Symbol} },
	},
	"name": {
		value: func(s stock.Stock) Value { return Value{Raw: s.Name, Text: s.Name} },
	},
	"price": {
		value: func(s stock.Stock) Value { return Value{Raw: s.Price, Text: stock.FormatPrice(s.Price)} },
	},
}

// DefaultColumns returns the ticker columns in their initial order.
func DefaultColumns() []Column {
	return []Column{
		{Key: "id", Name: "ID", Width: 8, Sortable: true},
		{Key: "symbol", Name: "Symbol", Width: 10, Sortable: true},
		{Key: "name", Name: "Name", Width: 28},
		{Key: "price", Name: "Price", Width: 12, Sortable: true},
	}
}
