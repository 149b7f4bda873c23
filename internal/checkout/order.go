package checkout

import (
	"time"

	"github.com/S41T4M4/fc-front/internal/api"
	"github.com/S41T4M4/fc-front/internal/domain"
)

func orderFromDTO(dto api.OrderDTO) domain.Order {
	placedAt, err := time.Parse(time.RFC3339, dto.DataPedido)
	if err != nil {
		placedAt = time.Now()
	}
	return domain.Order{
		ID:       dto.IDPedido,
		UserID:   dto.IDUser,
		PlacedAt: placedAt,
		Total:    dto.Total,
		Status:   dto.Status,
	}
}
