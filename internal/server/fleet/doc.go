// Package fleet keeps the mock server's operational data in memory: drivers,
// orders, the tariff, promotions, support tickets and uploaded images. It
// also derives the dashboard counters and the report series from them.
package fleet
