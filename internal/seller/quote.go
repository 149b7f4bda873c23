package seller

import "errors"

// MinOfferCoins is the smallest listable offer.
const MinOfferCoins = 1000

var (
	ErrMinCoins         = errors.New("offer must be at least 1000 coins")
	ErrInvalidPrice     = errors.New("price per 100k must be positive")
	ErrInactivePlatform = errors.New("platform is not accepting offers")
)

// FeePlatform is a platform a seller can list on, with the marketplace fee
// charged per 100.000 coins.
type FeePlatform struct {
	ID         int64
	Name       string
	FeePer100k float64
	Active     bool
}

// Platforms is the marketplace fee table.
func Platforms() []FeePlatform {
	return []FeePlatform{
		{ID: 1, Name: "PC", FeePer100k: 2.50, Active: true},
		{ID: 2, Name: "PlayStation 5", FeePer100k: 3.00, Active: true},
		{ID: 3, Name: "Xbox Series X", FeePer100k: 3.00, Active: true},
		{ID: 4, Name: "PlayStation 4", FeePer100k: 2.75, Active: true},
		{ID: 5, Name: "Xbox One", FeePer100k: 2.75, Active: true},
	}
}

// PlatformByID looks a platform up in the fee table.
func PlatformByID(id int64) (FeePlatform, bool) {
	for _, p := range Platforms() {
		if p.ID == id {
			return p, true
		}
	}
	return FeePlatform{}, false
}

// Quote is the price preview shown to a seller before listing an offer.
type Quote struct {
	Coins        int64
	PricePer100k float64
	FeePer100k   float64
	TotalFee     float64
	FinalPrice   float64
	SellerProfit float64
}

// NewQuote prices an offer: fee and base price both scale linearly per
// 100.000 coins, the buyer pays base plus fee, and the seller keeps the base.
func NewQuote(platform FeePlatform, coins int64, pricePer100k float64) (Quote, error) {
	if !platform.Active {
		return Quote{}, ErrInactivePlatform
	}
	if coins < MinOfferCoins {
		return Quote{}, ErrMinCoins
	}
	if pricePer100k <= 0 {
		return Quote{}, ErrInvalidPrice
	}

	totalFee := float64(coins) * platform.FeePer100k / 100000
	base := float64(coins) * pricePer100k / 100000
	final := base + totalFee

	return Quote{
		Coins:        coins,
		PricePer100k: pricePer100k,
		FeePer100k:   platform.FeePer100k,
		TotalFee:     totalFee,
		FinalPrice:   final,
		SellerProfit: final - totalFee,
	}, nil
}
