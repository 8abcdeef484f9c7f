package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the longest a verified token is trusted without re-verification.
const AuthCacheTTL = 10 * time.Minute
