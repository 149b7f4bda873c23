package domain

// Platform is a hardware/storefront category the catalog groups packages by.
type Platform struct {
	ID   int64
	Name string
}

// CoinPackage is a purchasable bundle of coins for one platform.
type CoinPackage struct {
	ID           int64
	PlatformID   int64
	Coins        int64
	Price        float64
	PlatformName string
}
