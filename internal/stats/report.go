// Package stats contains statistics calculations and reporting.
package stats

import (
	"context"
	"io"

	"github.com/verte-zerg/typist/internal/model"
	"github.com/verte-zerg/typist/internal/store"
)

const trendWindow = 5

// Report contains precomputed data for stats rendering.
type Report struct {
	Sessions []model.SessionAggregate
	Mistakes []model.SessionMistake
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}
	mistakes, err := st.ListMistakes(ctx, cfg, cfg.Mistakes)
	if err != nil {
		return Report{}, err
	}
	return Report{Sessions: sessions, Mistakes: mistakes}, nil
}

// Render writes the full report; width bounds the trend line.
func (r Report) Render(w io.Writer, width int) error {
	if err := RenderSummary(w, r.Sessions); err != nil {
		return err
	}
	if err := RenderTrend(w, r.Sessions, trendWindow, width); err != nil {
		return err
	}
	if err := RenderSessionTable(w, r.Sessions); err != nil {
		return err
	}
	return RenderMistakes(w, r.Mistakes)
}
