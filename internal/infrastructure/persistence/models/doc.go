// Package models contains GORM persistence models for the event log and the
// read-model tables. Domain and report types stay free of ORM tags; the
// mappers in this package convert between the two.
package models
