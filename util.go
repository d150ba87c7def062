// (c) Copyright Tracelet Inc. 2026

package tracelet

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	seededIDGen  = rand.New(rand.NewSource(time.Now().UnixNano()))
	seededIDLock sync.Mutex
)

func randomID() int64 {
	seededIDLock.Lock()
	defer seededIDLock.Unlock()

	// 0 is reserved to mean "absent"
	for {
		if id := seededIDGen.Int63(); id != 0 {
			return id
		}
	}
}

// FormatID converts a span or trace ID to a value that can be used in
// context propagation (such as HTTP headers). More specifically, this
// converts a signed 64 bit integer into an unsigned hex string. The
// resulting string is always padded with 0 to be 16 characters long.
func FormatID(id int64) string {
	return padHexString(strconv.FormatUint(uint64(id), 16), 64)
}

func padHexString(s string, bitSize int) string {
	if len(s) >= bitSize>>2 {
		return s
	}

	return strings.Repeat("0", bitSize>>2-len(s)) + s
}

// ParseID converts a header context value into a span or trace ID. More
// specifically, this converts an unsigned 64 bit hex value into a signed
// 64 bit integer.
func ParseID(header string) (int64, error) {
	unsignedID, err := strconv.ParseUint(header, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("context corrupted; could not convert value: %s", err)
	}

	return int64(unsignedID), nil
}
