package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "backoffice",
	Pass: "backoffice",
	Name: "backoffice_db",
}

var defaultKafka = Kafka{
	GroupID: "dispatch-worker",
	Topic:   "order-events",
}

var defaultRabbit = Rabbit{
	Exchange: "notifications",
}

var defaultRateLimit = RateLimit{
	Enabled:    false,
	Rate:       5,
	Burst:      10,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

var defaultDispatch = Dispatch{
	MaxDistanceKm:      10,
	MinRating:          3.0,
	AutoAssignInterval: 60 * time.Second,
	InterAssignDelay:   100 * time.Millisecond,
	OperationTimeout:   3 * time.Second,
}

// DefaultPort returns the default HTTP port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultDispatch returns the default dispatch settings.
func DefaultDispatch() Dispatch {
	return defaultDispatch
}
