package model

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/chatstore/internal/ident"
)

// compareID orders identifiers by id, then lineage.
func compareID(a, b ident.UUID) int {
	return ident.Compare(a, b)
}

// compareTime orders by instant. Equal instants compare equal regardless
// of location.
func compareTime(a, b time.Time) int {
	return a.Compare(b)
}

// compareText orders keys produced by foldText. Comparing folded keys
// gives case-insensitive lexicographic order.
func compareText(a, b string) int {
	return strings.Compare(a, b)
}

// foldText NFC-normalizes and Unicode case-folds s. It runs once per
// insert and once per text lookup, never inside the tree.
// Casers are not safe for concurrent use, so each call gets its own.
func foldText(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}
