// Package alarm contains core domain types for the alarm scheduling logic.
//
// It defines Clock (a validated "HH:MM" time of day), Entry (one configured
// alarm with a stable identity and transient fired state) and Registry (the
// ordered entry collection whose display order is also the firing-evaluation
// order).
package alarm
