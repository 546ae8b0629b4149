/*
Package value provides the parsed document tree consumed by the graph builder.

A Value is an object, array, string, number, bool or null. Objects keep their
members in document order and do not collapse repeated keys, so a consumer can
detect and reject duplicates that a map-based decoder would silently drop.

Documents can be produced by ParseJSON, ParseYAML or FromAny (for data already
decoded into Go maps and slices, e.g. by a storage adapter).
*/
package value
