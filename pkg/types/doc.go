// Package types defines the client and interaction records, the field
// names accepted by edits, configuration, and the standard error types
// for the InsuraPro CRM.
//
// Interactions are a tagged variant: one Interaction value carries a Kind
// and the payload for that kind. Code that renders or serializes an
// interaction switches on Kind.
package types
