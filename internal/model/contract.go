package model

import "main/internal/model/enum"

// Economics carries the catalog terms of a contract.
type Economics struct {
	CurrencyPair string      `json:"currencyPair"`
	Expiry       ExpiryStamp `json:"expiry"`
	Strike       float64     `json:"strike"`
}

// Contract is an exchange catalog entry. Sourced from the catalog fetch,
// never created or mutated by this process.
type Contract struct {
	ContractID int64       `json:"contractId"`
	Payoff     enum.Payoff `json:"payoff"`
	Economics  Economics   `json:"economics"`
}
