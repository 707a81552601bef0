// Package models holds the console's domain records: roles, the signed-in
// user's profile, and the persisted profile record.
package models
