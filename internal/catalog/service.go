package catalog

import (
	"context"
	"fmt"

	"github.com/S41T4M4/fc-front/internal/api"
	"github.com/S41T4M4/fc-front/internal/domain"
)

// Service reads the purchasable catalog. It is read-only from the client's
// perspective and does not cache.
type Service struct {
	api *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{api: client}
}

func (s *Service) Platforms(ctx context.Context) ([]domain.Platform, error) {
	resp, err := s.api.Platforms(ctx)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("platform listing failed: %s", resp.Message)
	}
	platforms := make([]domain.Platform, len(resp.Platforms))
	for i, dto := range resp.Platforms {
		platforms[i] = domain.Platform{ID: dto.IDPlataforma, Name: dto.DescricaoPlataforma}
	}
	return platforms, nil
}

// PlatformByID fetches a single platform. An unknown id reports ok=false
// rather than an error.
func (s *Service) PlatformByID(ctx context.Context, id int64) (domain.Platform, bool, error) {
	resp, err := s.api.PlatformByID(ctx, id)
	if err != nil {
		if api.IsNotFound(err) {
			return domain.Platform{}, false, nil
		}
		return domain.Platform{}, false, err
	}
	if !resp.Success || len(resp.Platforms) == 0 {
		return domain.Platform{}, false, nil
	}
	dto := resp.Platforms[0]
	return domain.Platform{ID: dto.IDPlataforma, Name: dto.DescricaoPlataforma}, true, nil
}

func (s *Service) PackagesByPlatform(ctx context.Context, platformID int64) ([]domain.CoinPackage, error) {
	resp, err := s.api.CoinPackagesByPlatform(ctx, platformID)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("coin package listing failed: %s", resp.Message)
	}
	return packagesFromDTO(resp.Packages), nil
}

// Packages lists every coin package regardless of platform.
func (s *Service) Packages(ctx context.Context) ([]domain.CoinPackage, error) {
	resp, err := s.api.CoinPackages(ctx)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("coin package listing failed: %s", resp.Message)
	}
	return packagesFromDTO(resp.Packages), nil
}

func packagesFromDTO(dtos []api.CoinPackageDTO) []domain.CoinPackage {
	packages := make([]domain.CoinPackage, len(dtos))
	for i, dto := range dtos {
		packages[i] = domain.CoinPackage{
			ID:           dto.IDMoeda,
			PlatformID:   dto.PlataformaID,
			Coins:        dto.Quantidade,
			Price:        dto.Valor,
			PlatformName: dto.PlataformaNome,
		}
	}
	return packages
}
