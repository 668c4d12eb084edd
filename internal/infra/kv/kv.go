// Package kv holds the key-value backends that stand in for the browser's
// local storage. Every backend stores whole documents under a single key.
package kv

import "errors"

var ErrNotFound = errors.New("kv: key not found")
