package domain

import "strings"

// TierID identifies a deployment plan.
type TierID string

const (
	TierBronze  TierID = "bronze"
	TierSilver  TierID = "silver"
	TierGold    TierID = "gold"
	TierDiamond TierID = "diamond"
)

// Tier gates which catalog source and checks are active.
type Tier struct {
	ID            TierID
	RemoteCatalog bool // catalog may come from the remote feed
	StockCheck    bool // tracked stock of 0 blocks adding to cart
}

var tiers = map[TierID]Tier{
	TierBronze:  {ID: TierBronze},
	TierSilver:  {ID: TierSilver, RemoteCatalog: true},
	TierGold:    {ID: TierGold, RemoteCatalog: true, StockCheck: true},
	TierDiamond: {ID: TierDiamond, RemoteCatalog: true, StockCheck: true},
}

// LookupTier returns bronze for unknown plans.
func LookupTier(plan string) Tier {
	if t, ok := tiers[TierID(strings.ToLower(strings.TrimSpace(plan)))]; ok {
		return t
	}
	return tiers[TierBronze]
}
