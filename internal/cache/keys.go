package cache

import "fmt"

// OracleSnapshotKey returns the key holding the mirrored session snapshot.
// There is a single shared oracle, so the key is fixed.
func OracleSnapshotKey() string {
	return "oracle:snapshot"
}

func RateLimitKey(clientIP string) string {
	return fmt.Sprintf("ratelimit:%s", clientIP)
}

func FixturesSyncKey() string {
	return "fixtures:last_sync"
}
