// Copyright (c) 2026 D42X. All rights reserved.

// Package catlist encodes category name lists into the delimited column
// format used by the meme table.
//
// # Format
//
// A list is stored as ";name1;name2;" with leading and trailing delimiters,
// so membership tests reduce to a single LIKE "%;name;%" match regardless of
// position. An empty list encodes to the empty string.
package catlist

import "strings"

// Delimiter separates names inside an encoded list.
const Delimiter = ";"

// Encode serializes names into the delimited column format.
func Encode(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return Delimiter + strings.Join(names, Delimiter) + Delimiter
}

// Decode parses an encoded column value back into names.
// Empty segments produced by stray delimiters are dropped.
func Decode(encoded string) []string {
	names := make([]string, 0)
	for _, part := range strings.Split(encoded, Delimiter) {
		if part != "" {
			names = append(names, part)
		}
	}
	return names
}

// Pattern returns the LIKE pattern matching rows whose list contains name.
func Pattern(name string) string {
	return "%" + Delimiter + name + Delimiter + "%"
}
