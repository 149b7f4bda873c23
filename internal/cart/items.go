package cart

import (
	"fmt"
	"strconv"

	"github.com/S41T4M4/fc-front/internal/api"
	"github.com/S41T4M4/fc-front/internal/domain"
)

// itemsFromDTO transforms the server's item shape into the local one.
func itemsFromDTO(dtos []api.CartItemDTO) []domain.CartItem {
	if len(dtos) == 0 {
		return nil
	}
	items := make([]domain.CartItem, len(dtos))
	for i, dto := range dtos {
		amount := formatCoinAmount(dto.Moeda.Quantidade)
		items[i] = domain.CartItem{
			ID:        dto.IDItem,
			CoinID:    dto.IDMoeda,
			Name:      fmt.Sprintf("%s Coins", amount),
			Amount:    amount,
			UnitPrice: dto.Moeda.Valor,
			Platform:  dto.Moeda.Plataforma,
			Quantity:  dto.Quantidade,
		}
	}
	return items
}

// formatCoinAmount renders a coin quantity with dot thousand separators,
// e.g. 100000 -> "100.000".
func formatCoinAmount(coins int64) string {
	digits := strconv.FormatInt(coins, 10)
	if coins < 0 || len(digits) <= 3 {
		return digits
	}
	var out []byte
	lead := len(digits) % 3
	if lead > 0 {
		out = append(out, digits[:lead]...)
	}
	for i := lead; i < len(digits); i += 3 {
		if len(out) > 0 {
			out = append(out, '.')
		}
		out = append(out, digits[i:i+3]...)
	}
	return string(out)
}
