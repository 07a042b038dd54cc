// Package section implements the fixed-size structural layer of the
// codec: the 210-byte file header and the size_of_item-strided item
// table, plus the bit-packed projections that turn an item's raw
// integer fields into the semantic enumerations in package format.
package section
