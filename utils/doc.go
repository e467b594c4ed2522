// Package utils provides time formatting helpers shared by the response
// builders and the CLI.
package utils
