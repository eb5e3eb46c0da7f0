package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "rider_db",
}

var defaultOrders = Orders{
	Transport:   TransportGraphQL,
	GraphQLURL:  "http://localhost:4000/graphql",
	GRPCAddr:    "localhost:50051",
	Timeout:     2 * time.Second,
	MaxAttempts: 4,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    time.Second,
}

var defaultKafka = Kafka{
	GroupID:     "service-rider-worker",
	OrdersTopic: "orders.events",
	OffersTopic: "rider.delivery-offers",
}

var defaultRedis = Redis{
	IdempotencyTTL: 24 * time.Hour,
}

var defaultDelivery = Delivery{
	PollInterval:      10 * time.Second,
	TransitionTimeout: 3 * time.Second,
}

var defaultRateLimit = RateLimit{
	Enabled:    false,
	Rate:       10,
	Burst:      20,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

var defaultPprof = PprofConfig{
	Enabled: false,
	Addr:    "127.0.0.1:6060",
}

var defaultTelemetry = Telemetry{
	Endpoint:    "localhost:4317",
	ServiceName: "service-rider",
}

var defaultLog = Log{
	Backend: "slog",
	Level:   "info",
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultOrders returns the default orders gateway settings.
func DefaultOrders() Orders {
	return defaultOrders
}

// DefaultDelivery returns the default delivery settings.
func DefaultDelivery() Delivery {
	return defaultDelivery
}
