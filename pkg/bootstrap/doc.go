// Package bootstrap resolves which table backend to use from configuration
// and returns ready-to-use accessors. Settings come from LIMELIGHT_* environment
// variables (LIMELIGHT_MODE, LIMELIGHT_TABLE, LIMELIGHT_HTTP_URL,
// LIMELIGHT_REDIS_ADDR, LIMELIGHT_NATS_URL, LIMELIGHT_MOCK_SEED, ...) or any
// viper instance the caller has already populated.
//
// In "auto" mode the first configured backend wins, in the order http, redis,
// nats. Without any of them an in-memory mock is used, optionally seeded from
// LIMELIGHT_MOCK_SEED, so code written against the accessors runs unchanged
// on a laptop.
package bootstrap
