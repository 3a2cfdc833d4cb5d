// Package uuidgen provides gopter generators for random (version 4) UUIDs.
package uuidgen

import (
	"encoding/binary"
	"math"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
)

// V4 generates version 4 UUIDs. Each 64-bit half is built from two independent
// 32-bit draws; the version and variant bits are then fixed per RFC 4122.
func V4() gopter.Gen {
	return gopter.CombineGens(half(), half()).Map(func(v []interface{}) uuid.UUID {
		return fromHalves(v[0].(uint64), v[1].(uint64))
	})
}

// V4String generates version 4 UUIDs in their canonical string form.
func V4String() gopter.Gen {
	return V4().Map(func(u uuid.UUID) string {
		return u.String()
	})
}

func half() gopter.Gen {
	return gopter.CombineGens(word(), word()).Map(func(v []interface{}) uint64 {
		return uint64(v[0].(int64))<<32 | uint64(v[1].(int64))
	})
}

func word() gopter.Gen {
	return gen.Int64Range(0, math.MaxUint32)
}

func fromHalves(hi, lo uint64) uuid.UUID {
	var u uuid.UUID
	binary.BigEndian.PutUint64(u[:8], hi)
	binary.BigEndian.PutUint64(u[8:], lo)

	// version nibble: hex digit 13
	u[6] = u[6]&0x0f | 0x40
	// variant 10xx: hex digit 17 is one of 8, 9, a, b
	u[8] = u[8]&0x3f | 0x80
	return u
}
