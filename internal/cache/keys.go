package cache

import "fmt"

func SelectedShopKey(userID uint) string {
	return fmt.Sprintf("user:%d:selected_shop", userID)
}

func UserKey(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}

func RefreshTokenKey(userID uint) string {
	return fmt.Sprintf("auth:refresh:%d", userID)
}

func DashboardKey(shopID uint, field, period string) string {
	return fmt.Sprintf("dashboard:%d:%s:%s", shopID, field, period)
}
