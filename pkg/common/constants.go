package common

const (
	RedisKeyTraderScore = "trader:score:%d"

	CacheKeyFinanceSummary = "finance:summary:%d"

	LargeTransactionThreshold = 1000.0
)
