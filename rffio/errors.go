// Package rffio implements the RFF binary wire format: a LEB128 varint
// codec plus a Serializer/Deserializer pair that reads and writes
// flatfile.RawFlatFile values.
package rffio

import "errors"

// CurrentVersion is the only version byte this package writes or accepts.
const CurrentVersion = 1

// ErrBadVersion is the sentinel wrapped when Deserialize encounters a
// version byte other than CurrentVersion.
var ErrBadVersion = errors.New("rffio: unknown version number")

// ErrShortRead is the sentinel wrapped when the source returns fewer bytes
// than required during deserialization.
var ErrShortRead = errors.New("rffio: short read")
