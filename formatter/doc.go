// Package formatter provides response wrapping and serialization for departure boards.
//
// This package is organized into:
// - wrapper.go: mapping upcoming services to the response shape
// - json.go: JSON serialization
// - xml.go: XML serialization with proper escaping
//
// XML is written by hand for precise control over element order.
package formatter
