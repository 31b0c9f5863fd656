package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jcsalazar/abasto-api/internal/application/dto"
	"github.com/jcsalazar/abasto-api/internal/domain"
	"github.com/jcsalazar/abasto-api/internal/domain/entity"
	"github.com/jcsalazar/abasto-api/internal/domain/repository"
)

// UnitUseCase casos de uso CRUD para unidades organizacionales.
type UnitUseCase struct {
	repo repository.UnitRepository
}

// NewUnitUseCase construye el caso de uso.
func NewUnitUseCase(repo repository.UnitRepository) *UnitUseCase {
	return &UnitUseCase{repo: repo}
}

// Create crea una nueva unidad.
func (uc *UnitUseCase) Create(in dto.CreateUnitRequest) (*dto.UnitResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	unit := &entity.Unit{
		ID:                   uuid.New().String(),
		Name:                 in.Name,
		Address:              in.Address,
		IsDistributionCenter: in.IsDistributionCenter,
		Active:               true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := uc.repo.Create(unit); err != nil {
		return nil, err
	}
	return toUnitResponse(unit), nil
}

// GetByID obtiene una unidad por ID.
func (uc *UnitUseCase) GetByID(id string) (*dto.UnitResponse, error) {
	unit, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, nil
	}
	return toUnitResponse(unit), nil
}

// Update actualiza una unidad. El flag de CD no se toca: cambiar el rol de una
// sede con stock y solicitudes en vuelo corrompe el ruteo de abastecimiento.
func (uc *UnitUseCase) Update(id string, in dto.UpdateUnitRequest) (*dto.UnitResponse, error) {
	unit, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, nil
	}
	if in.Name != nil {
		unit.Name = *in.Name
	}
	if in.Address != nil {
		unit.Address = *in.Address
	}
	if in.Active != nil {
		unit.Active = *in.Active
	}
	unit.UpdatedAt = time.Now()
	if err := uc.repo.Update(unit); err != nil {
		return nil, err
	}
	return toUnitResponse(unit), nil
}

// List lista unidades con paginación.
func (uc *UnitUseCase) List(limit, offset int) (*dto.UnitListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UnitResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUnitResponse(u))
	}
	return &dto.UnitListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListDistributionCenters lista solo las unidades marcadas como CD.
func (uc *UnitUseCase) ListDistributionCenters() ([]dto.UnitResponse, error) {
	list, err := uc.repo.ListDistributionCenters()
	if err != nil {
		return nil, err
	}
	items := make([]dto.UnitResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUnitResponse(u))
	}
	return items, nil
}

func toUnitResponse(u *entity.Unit) *dto.UnitResponse {
	if u == nil {
		return nil
	}
	return &dto.UnitResponse{
		ID:                   u.ID,
		Name:                 u.Name,
		Address:              u.Address,
		IsDistributionCenter: u.IsDistributionCenter,
		Active:               u.Active,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}
