package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// GlobalScope alcance de la configuración de alertas por defecto.
const GlobalScope = ""

// AlertSettings umbrales de alerta y preferencias de notificación.
// Scope vacío = configuración global; si no, es el ProductID al que aplica el override.
type AlertSettings struct {
	Scope             string
	LowThreshold      decimal.Decimal
	CriticalThreshold decimal.Decimal
	NotifyLow         bool
	NotifyCritical    bool
	NotifyOutOfStock  bool
	UpdatedBy         string
	UpdatedAt         time.Time
}
