package journey

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/blackroad/journeymap/internal/domain"
	"github.com/blackroad/journeymap/internal/store"
)

// AnalyzeFunnel computes per-stage funnel metrics over sessions started in
// the last `days` days. Exits from stage i are entries into stage i+1; exits
// from the last stage are converted sessions that reached it. Conversion and
// drop-off rates always sum to 100.
func (m *Mapper) AnalyzeFunnel(ctx context.Context, days int) ([]domain.StageMetrics, error) {
	cutoff := store.Cutoff(time.Duration(days) * 24 * time.Hour)

	stages, err := m.stages.ListByPosition(ctx)
	if err != nil {
		return nil, err
	}

	var results []domain.StageMetrics
	for i, stage := range stages {
		entry, err := m.analytics.StageEntryCount(ctx, stage.EntryEvent, cutoff)
		if err != nil {
			return nil, err
		}

		var exit int
		if i+1 < len(stages) {
			exit, err = m.analytics.StageEntryCount(ctx, stages[i+1].EntryEvent, cutoff)
		} else {
			exit, err = m.analytics.ConvertedExitCount(ctx, stage.EntryEvent, cutoff)
		}
		if err != nil {
			return nil, err
		}

		var conversionRate float64
		if entry > 0 {
			conversionRate = float64(exit) / float64(entry) * 100
		}

		avgDur, err := m.analytics.StageAvgDuration(ctx, stage.EntryEvent, cutoff)
		if err != nil {
			return nil, err
		}

		results = append(results, domain.StageMetrics{
			StageID:        stage.ID,
			StageName:      stage.Name,
			Position:       stage.Position,
			EntryCount:     entry,
			ExitCount:      exit,
			ConversionRate: round2(conversionRate),
			DropOffRate:    round2(100 - conversionRate),
			AvgDurationMS:  round2(avgDur),
		})
	}
	return results, nil
}

// TopConversionPaths returns path signatures ranked by occurrence count,
// truncated to limit.
func (m *Mapper) TopConversionPaths(ctx context.Context, limit int) ([]domain.PathGroup, error) {
	return m.paths.TopBySignature(ctx, limit)
}

// AnalyzeDropoffs aggregates the dropoff events recorded at one stage by
// reason, hour of day, and session channel. An unknown stage id yields empty
// aggregates, not an error.
func (m *Mapper) AnalyzeDropoffs(ctx context.Context, stageID string) (*domain.DropoffBreakdown, error) {
	return m.dropoffs.Breakdown(ctx, stageID)
}

// ChannelAttribution groups sessions started in the last `days` days by
// channel.
func (m *Mapper) ChannelAttribution(ctx context.Context, days int) ([]domain.ChannelStats, error) {
	cutoff := store.Cutoff(time.Duration(days) * 24 * time.Hour)
	return m.analytics.ChannelAttribution(ctx, cutoff)
}

// LTVSegments buckets customers by total converted-session value into
// equal-width segments. The width degenerates to 1.0 when all totals are
// equal. Every bucket is half-open [lo, hi) except the last, which is closed
// so the maximum value lands in range. Returns nil when no customer has
// converted.
func (m *Mapper) LTVSegments(ctx context.Context, buckets int) ([]domain.LTVSegment, error) {
	if buckets < 1 {
		return nil, fmt.Errorf("buckets must be positive, got %d", buckets)
	}

	ltvs, err := m.analytics.CustomerLTVs(ctx)
	if err != nil {
		return nil, err
	}
	if len(ltvs) == 0 {
		return nil, nil
	}

	minLTV, maxLTV := ltvs[0].LTV, ltvs[0].LTV
	for _, c := range ltvs[1:] {
		if c.LTV < minLTV {
			minLTV = c.LTV
		}
		if c.LTV > maxLTV {
			maxLTV = c.LTV
		}
	}

	width := 1.0
	if maxLTV > minLTV {
		width = (maxLTV - minLTV) / float64(buckets)
	}

	segments := make([]domain.LTVSegment, 0, buckets)
	for i := 0; i < buckets; i++ {
		lo := minLTV + float64(i)*width
		hi := lo + width
		last := i == buckets-1

		count := 0
		for _, c := range ltvs {
			if c.LTV >= lo && (c.LTV < hi || (last && c.LTV <= hi)) {
				count++
			}
		}

		segments = append(segments, domain.LTVSegment{
			Bucket:        i + 1,
			LTVMin:        round2(lo),
			LTVMax:        round2(hi),
			CustomerCount: count,
			Label:         fmt.Sprintf("Segment %d", i+1),
		})
	}
	return segments, nil
}

// JourneyHeatmap buckets touchpoints from the last `hours` hours into a 7×24
// day-of-week × hour-of-day matrix, day 0 = Monday. Touchpoints with
// malformed timestamps are skipped.
func (m *Mapper) JourneyHeatmap(ctx context.Context, hours int) (*domain.Heatmap, error) {
	cutoff := store.Cutoff(time.Duration(hours) * time.Hour)

	timestamps, err := m.analytics.TouchpointTimestamps(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	matrix := make([][]int, 7)
	for d := range matrix {
		matrix[d] = make([]int, 24)
	}

	total := 0
	for _, ts := range timestamps {
		t, err := store.ParseTime(ts)
		if err != nil {
			continue
		}
		day := (int(t.Weekday()) + 6) % 7 // Go weeks start Sunday; ours start Monday
		matrix[day][t.Hour()]++
		total++
	}

	hourLabels := make([]string, 24)
	for h := range hourLabels {
		hourLabels[h] = fmt.Sprintf("%02d:00", h)
	}

	return &domain.Heatmap{
		Matrix:           matrix,
		DayLabels:        []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
		HourLabels:       hourLabels,
		TotalTouchpoints: total,
	}, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
