package dto

type ItemOutput struct {
	Key        string
	Title      string
	Icon       string
	Price      int
	Owned      bool
	Affordable bool
}

type AchievementOutput struct {
	Key       string
	Title     string
	Icon      string
	Kind      string
	Threshold int
	Current   int
	Unlocked  bool
}

type PurchaseOutput struct {
	Item      ItemOutput
	XP        int
	Inventory []string
}
