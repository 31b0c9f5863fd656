package entity

import "time"

// Unit representa una unidad organizacional (sede). Las unidades marcadas como
// centro de distribución (CD) mantienen stock y atienden solicitudes de las demás.
type Unit struct {
	ID                   string
	Name                 string
	Address              string
	IsDistributionCenter bool
	Active               bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
