package catalog

import (
	"context"
	"time"

	"main/internal/model"
	"main/internal/model/enum"

	"github.com/yanun0323/errors"
)

// Contracts settle at 08:00 UTC; catalog stamps carry that time of day.
const settlementHour = 8

// Lister fetches the full contract catalog.
type Lister interface {
	ContractList(ctx context.Context) ([]model.Contract, error)
}

// Resolver answers static contract lookups against a fresh catalog scan.
// It holds no cache: the catalog is authoritative and cheap to re-fetch
// at the rate diagnostic lookups happen.
type Resolver struct {
	lister Lister
}

func New(lister Lister) *Resolver {
	return &Resolver{lister: lister}
}

// Resolve returns the contract id matching payoff, expiry date
// ("2006-01-02") and strike exactly. The boolean reports presence;
// absence is not an error.
func (r *Resolver) Resolve(ctx context.Context, payoff enum.Payoff, expiryDate string, strike float64) (int64, bool, error) {
	day, err := time.Parse("2006-01-02", expiryDate)
	if err != nil {
		return 0, false, errors.Wrapf(err, "parse expiry date: %q", expiryDate)
	}
	stamp := model.StampFromTime(day.Add(settlementHour * time.Hour))

	contracts, err := r.lister.ContractList(ctx)
	if err != nil {
		return 0, false, errors.Wrap(err, "fetch contract list")
	}

	for _, contract := range contracts {
		if contract.Payoff == payoff &&
			contract.Economics.Expiry == stamp &&
			contract.Economics.Strike == strike {
			return contract.ContractID, true, nil
		}
	}
	return 0, false, nil
}
