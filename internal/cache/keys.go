package cache

// Ключи снимков в Redis.
const (
	// AnalyticsRevenueKey агрегаты выручки. Сбрасывается при любом изменении платежей.
	AnalyticsRevenueKey = "analytics:revenue"
	// FingerprintsKey список зарегистрированных отпечатков. Сбрасывается при изменении участников.
	FingerprintsKey = "fingerprints:list"
)
