// Package model contains domain models/data structures.
// Keep them free of persistence and transport concerns.
package model
