package types

import (
	"fmt"
	"strconv"
)

// Table is a storable entity. The set is closed: adding an entity means
// adding a constant here and its wire name in tableNames.
type Table int

const (
	TableUser Table = iota + 1
	TableRole
	TableReport
)

var tableNames = map[Table]string{
	TableUser:   "user",
	TableRole:   "role",
	TableReport: "report",
}

// String returns the wire name of the table, or "" for an unknown value.
func (t Table) String() string {
	return tableNames[t]
}

// Valid reports whether t is one of the declared tables.
func (t Table) Valid() bool {
	_, ok := tableNames[t]
	return ok
}

// Tables returns every declared table in declaration order.
func Tables() []Table {
	return []Table{TableUser, TableRole, TableReport}
}

// ParseTable resolves a wire name to its Table.
func ParseTable(name string) (Table, error) {
	for t, n := range tableNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown table: %q", name)
}

// Edge is a traversable relationship between two tables.
type Edge int

const (
	EdgeHasRole Edge = iota + 1
	EdgeEvents
	EdgeAuther
	EdgeAssignedReviewer
	EdgeAssignedTo
	EdgeAuthoredBy
	EdgeReviewedBy
	EdgeHasPermission
)

var edgeNames = map[Edge]string{
	EdgeHasRole:          "has_role",
	EdgeEvents:           "events",
	EdgeAuther:           "auther_id",
	EdgeAssignedReviewer: "assigned_reviewer_id",
	EdgeAssignedTo:       "assigned_to",
	EdgeAuthoredBy:       "authored_by",
	EdgeReviewedBy:       "reviewed_by",
	EdgeHasPermission:    "has_permission",
}

// String returns the wire name of the edge, or "" for an unknown value.
func (e Edge) String() string {
	return edgeNames[e]
}

// Valid reports whether e is one of the declared edges.
func (e Edge) Valid() bool {
	_, ok := edgeNames[e]
	return ok
}

// HopAlias names the edge table of the n-th graph hop of a relational
// statement, counting from 1: has_role_1, authored_by_2.
func (e Edge) HopAlias(n int) string {
	return e.String() + "_" + strconv.Itoa(n)
}

// Edges returns every declared edge in declaration order.
func Edges() []Edge {
	return []Edge{
		EdgeHasRole,
		EdgeEvents,
		EdgeAuther,
		EdgeAssignedReviewer,
		EdgeAssignedTo,
		EdgeAuthoredBy,
		EdgeReviewedBy,
		EdgeHasPermission,
	}
}

// ParseEdge resolves a wire name to its Edge.
func ParseEdge(name string) (Edge, error) {
	for e, n := range edgeNames {
		if n == name {
			return e, nil
		}
	}
	return 0, fmt.Errorf("unknown edge: %q", name)
}
