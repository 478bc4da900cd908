package metrics

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rkaliyev/fractional-inventory/pkg/domain/entities"
	"github.com/rkaliyev/fractional-inventory/pkg/infrastructure/events"
)

// Options holds the tunables of the metrics projector.
type Options struct {
	// DefaultDailyConsumption is the estimated daily consumption used for
	// ingredients whose stock level carries no rate of its own. This is a
	// placeholder until historical consumption rates are integrated; the
	// projection it produces is an estimate, not a forecast.
	DefaultDailyConsumption decimal.Decimal
	// EventStore, when set, receives a StockAlertRaised event per alert.
	EventStore events.EventStore
}

// Projector turns a live inventory snapshot into stock-status metrics and
// alerts for dashboards. It only reads the snapshot; projection is safe to
// run while no batch owns the snapshot.
type Projector struct {
	opts Options
}

// NewProjector creates a metrics projector
func NewProjector(opts Options) *Projector {
	return &Projector{opts: opts}
}

// Project classifies every ingredient in the snapshot and emits alerts for
// the non-adequate ones. Status thresholds come from each ingredient's
// stock level: out-of-stock at zero quantity, critical at or below the
// critical level, low at or below the reorder point. Absent thresholds are
// zero, so an ingredient without parameters only ever reports out-of-stock.
func (p *Projector) Project(location string, snapshot *entities.InventorySnapshot, asOf time.Time) *entities.RealTimeConsumptionMetrics {
	metrics := &entities.RealTimeConsumptionMetrics{
		Location:        location,
		GeneratedAt:     asOf,
		Items:           make([]entities.IngredientStockMetric, 0, snapshot.Len()),
		Alerts:          []entities.StockAlert{},
		TotalStockValue: decimal.Zero,
	}

	for _, id := range snapshot.IngredientIDs() {
		level, _ := snapshot.Level(id)
		status := classify(level)

		item := entities.IngredientStockMetric{
			IngredientID:   id,
			QuantityOnHand: level.Quantity,
			UnitCost:       level.UnitCost,
			StockValue:     level.Quantity.Mul(level.UnitCost),
			Status:         status,
		}

		rate := level.DailyConsumption
		if rate.IsZero() {
			rate = p.opts.DefaultDailyConsumption
		}
		if rate.IsPositive() {
			item.DaysOfCover = level.Quantity.Div(rate).InexactFloat64()
			depletion := asOf.Add(time.Duration(item.DaysOfCover * 24 * float64(time.Hour)))
			item.EstimatedDepletion = &depletion
		}

		metrics.Items = append(metrics.Items, item)
		metrics.TotalStockValue = metrics.TotalStockValue.Add(item.StockValue)

		switch status {
		case entities.StockOutOfStock:
			metrics.OutOfStockCount++
		case entities.StockCritical:
			metrics.CriticalCount++
		case entities.StockLow:
			metrics.LowCount++
		}

		if status != entities.StockAdequate {
			alert := entities.StockAlert{
				ID:           uuid.NewString(),
				IngredientID: id,
				Status:       status,
				Severity:     severityFor(status),
				Message:      alertMessage(id, location, level, status),
				RaisedAt:     asOf,
			}
			metrics.Alerts = append(metrics.Alerts, alert)

			if p.opts.EventStore != nil {
				event := events.NewEvent(events.StockAlertRaisedEvent, location, events.StockAlertRaised{
					Location: location,
					Alert:    alert,
				})
				// Alerts are advisory; a failed append does not fail projection.
				_ = p.opts.EventStore.AppendEvent(location, event)
			}
		}
	}

	return metrics
}

// classify orders statuses by severity: out-of-stock wins over critical,
// critical over low.
func classify(level entities.StockLevel) entities.StockStatus {
	switch {
	case level.Quantity.IsZero():
		return entities.StockOutOfStock
	case level.Quantity.LessThanOrEqual(level.CriticalLevel):
		return entities.StockCritical
	case level.Quantity.LessThanOrEqual(level.ReorderPoint):
		return entities.StockLow
	default:
		return entities.StockAdequate
	}
}

func severityFor(status entities.StockStatus) entities.AlertSeverity {
	switch status {
	case entities.StockOutOfStock:
		return entities.SeverityCritical
	case entities.StockCritical:
		return entities.SeverityWarning
	default:
		return entities.SeverityInfo
	}
}

func alertMessage(id entities.IngredientID, location string, level entities.StockLevel, status entities.StockStatus) string {
	switch status {
	case entities.StockOutOfStock:
		return fmt.Sprintf("%s is out of stock at %s", id, location)
	case entities.StockCritical:
		return fmt.Sprintf("%s is at critical level at %s: %s on hand, critical level %s",
			id, location, level.Quantity, level.CriticalLevel)
	default:
		return fmt.Sprintf("%s is below reorder point at %s: %s on hand, reorder at %s",
			id, location, level.Quantity, level.ReorderPoint)
	}
}
