package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/myorders/internal/domain"
	"github.com/jafarshop/myorders/internal/metrics"
)

const (
	historyDateLayout  = "2006-01-02T15:04:05"
	terminalDateLayout = "02.01.2006"
	stateDateLayout    = "02.01.2006 15:04"
)

// TimelineBuilder turns a customer-service status history into a fulfillment timeline
type TimelineBuilder struct {
	metrics *metrics.Registry
	logger  *zap.Logger
}

// NewTimelineBuilder creates a new timeline builder
func NewTimelineBuilder(reg *metrics.Registry, logger *zap.Logger) *TimelineBuilder {
	return &TimelineBuilder{
		metrics: reg,
		logger:  logger,
	}
}

// Build converts a newest-first status history into a fulfillment timeline.
// The history slice is not modified.
func (b *TimelineBuilder) Build(history []domain.StateEntry, taxonomy domain.StatusTaxonomy) domain.FulfillmentTimeline {
	states := make([]domain.TimelineState, 0, len(history)+2)
	index := make(map[int64]int, len(history))

	for i := len(history) - 1; i >= 0; i-- {
		entry := history[i]
		def, ok := taxonomy.Lookup(entry.StatusCode)
		if !ok {
			b.logger.Warn("History status has no configuration, dropping",
				zap.Int64("status_code", entry.StatusCode),
			)
			b.metrics.Miss("status")
			continue
		}

		state := stateFrom(def)
		state.Active = entry.Date != ""
		state.Date = b.formatDate(entry.Date, def.Position)

		if pos, seen := index[def.ID]; seen {
			states[pos] = state
			continue
		}
		index[def.ID] = len(states)
		states = append(states, state)
	}

	if pickup, ok := taxonomy.Pickup(); ok {
		if _, seen := index[pickup.ID]; !seen {
			states = append([]domain.TimelineState{stateFrom(pickup)}, states...)
		}
	}
	if last, ok := taxonomy.Last(); ok {
		if _, seen := index[last.ID]; !seen {
			states = append([]domain.TimelineState{stateFrom(last)}, states...)
		}
	}

	timeline := domain.FulfillmentTimeline{States: states}
	for i := range states {
		if !states[i].Active {
			continue
		}
		timeline.TotalActive++
		if timeline.Current == nil {
			id := states[i].ID
			timeline.Current = &id
		}
		color := states[i].Color
		timeline.Color = &color
		timeline.Image = states[i].ImageList
	}
	timeline.Percent = ProgressPercent(timeline.TotalActive, len(states))

	return timeline
}

// stateFrom builds an inactive state carrying the display fields of def
func stateFrom(def domain.StatusDefinition) domain.TimelineState {
	return domain.TimelineState{
		ID:        def.ID,
		Title:     def.Title,
		Image:     def.Image,
		ImageList: def.ImageList,
		Color:     def.Color,
		Position:  def.Position,
	}
}

func (b *TimelineBuilder) formatDate(raw string, position domain.Position) *string {
	if raw == "" {
		return nil
	}
	t, err := time.Parse(historyDateLayout, raw)
	if err != nil {
		b.logger.Warn("Unparseable history date", zap.String("date", raw), zap.Error(err))
		return nil
	}

	layout := stateDateLayout
	if position == domain.PositionLast {
		layout = terminalDateLayout
	}
	formatted := t.Format(layout)
	return &formatted
}

// ProgressPercent computes the timeline progress for active of count states,
// clamped to [0, 100]. Timelines shorter than two states report 0.
func ProgressPercent(active, count int) int {
	if count < 2 {
		return 0
	}

	percent := (active - 1) * (100 / (count - 1))
	if count > 6 {
		percent += active - 2
	}

	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}
