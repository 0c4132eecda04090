// Package models defines the data model for the ad creative submission flow:
// the ad draft and its enums, music validation verdicts, token lifecycle
// state, and the typed application error taxonomy.
package models
