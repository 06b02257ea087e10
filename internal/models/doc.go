// Package models defines the persisted domain models for Splitledger.
//
// Three records are stored: User, Group, and Transaction. Everything else
// (net balances, settlement plans) is derived fresh per summary request and
// never persisted.
//
// All monetary fields use decimal arithmetic (shopspring/decimal); the
// zero-sum invariants on payable maps do not survive binary floating point.
// Relationships are held as ID strings rather than pointers, matching how
// the records are laid out in storage.
package models
