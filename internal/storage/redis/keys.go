package redis

import "fmt"

// Key prefix for all leaderboard data
const keyPrefix = "cwtimes"

// recordKey returns the Redis key for a Record
func recordKey(id int) string {
	return fmt.Sprintf("%s:record:%d", keyPrefix, id)
}

// recordIndexKey returns the Redis key for the ZSET ordering records by ID
func recordIndexKey() string {
	return fmt.Sprintf("%s:idx:records_by_id", keyPrefix)
}
