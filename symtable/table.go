// Package symtable groups values by key, keeping every value in input order.
package symtable

import (
	"fmt"

	"github.com/google/btree"
	"golang.org/x/exp/slices"
)

// Order selects the key order of Duplicates.
type Order int

const (
	// OrderFirstSeen lists keys in the order they first appeared.
	OrderFirstSeen Order = iota
	// OrderSorted lists keys lexically.
	OrderSorted
)

func (o Order) String() string {
	switch o {
	case OrderFirstSeen:
		return "first-seen"
	case OrderSorted:
		return "sorted"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

// ParseOrder is the inverse of Order.String.
func ParseOrder(s string) (Order, error) {
	switch s {
	case "first-seen", "":
		return OrderFirstSeen, nil
	case "sorted":
		return OrderSorted, nil
	}
	return 0, fmt.Errorf("unknown order %q, want first-seen or sorted", s)
}

// Entry is one duplicated key with all of its values.
type Entry struct {
	Key    string
	Values []string
}

// Table maps a key to the values seen for it.
// The zero value is not usable, call New.
type Table struct {
	groups map[string][]string
	order  []string // keys in first-seen order
	lines  int
}

func New() *Table {
	return &Table{groups: make(map[string][]string)}
}

// Add appends value to the sequence of key. Equal values are kept.
func (t *Table) Add(key, value string) {
	values, ok := t.groups[key]
	if !ok {
		t.order = append(t.order, key)
	}
	t.groups[key] = append(values, value)
	t.lines++
}

// Values returns a copy of the values recorded for key, nil for an unknown key.
func (t *Table) Values(key string) []string {
	return slices.Clone(t.groups[key])
}

// Len returns the number of distinct keys.
func (t *Table) Len() int {
	return len(t.order)
}

// Lines returns the number of Add calls.
func (t *Table) Lines() int {
	return t.lines
}

// Duplicates returns every key with at least two values.
func (t *Table) Duplicates(order Order) []Entry {
	var entries []Entry
	collect := func(key string) bool {
		if values := t.groups[key]; len(values) > 1 {
			entries = append(entries, Entry{Key: key, Values: slices.Clone(values)})
		}
		return true
	}

	switch order {
	case OrderSorted:
		index := btree.NewOrderedG[string](16)
		for _, key := range t.order {
			if len(t.groups[key]) > 1 {
				index.ReplaceOrInsert(key)
			}
		}
		index.Ascend(collect)
	default:
		for _, key := range t.order {
			collect(key)
		}
	}
	return entries
}
