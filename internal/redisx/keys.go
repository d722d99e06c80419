package redisx

import "time"

const (
	// Dashboard aggregates: dash:stats -> stats JSON
	KeyDashboardStats = "dash:stats"

	// Recent orders projection: dash:recent:{limit} -> orders JSON
	KeyRecentOrders = "dash:recent:%d"

	// Dedup for consumed events: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLStats  = 1 * time.Minute
	TTLRecent = 30 * time.Second
	TTLDedup  = 48 * time.Hour
)
