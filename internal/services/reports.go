package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"autodrive/internal/config"
	"autodrive/internal/repository"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"go.uber.org/zap"
)

// ReportService renders the weekly team performance report as a standalone
// HTML page: a bar chart of trait averages and a line chart of daily XP.
type ReportService struct {
	log *zap.Logger
}

func NewReportService(log *zap.Logger) *ReportService {
	return &ReportService{log: log}
}

// GenerateTeamReport builds the report for one team and writes it under the
// configured report directory. Returns the file path.
func (s *ReportService) GenerateTeamReport(team string) (string, error) {
	ctx := context.Background()

	overview, err := repository.GetTeamOverview(ctx, team)
	if err != nil {
		return "", fmt.Errorf("team overview for report: %w", err)
	}
	timeline, err := repository.GetTeamXPTimeline(ctx, team, 7)
	if err != nil {
		return "", fmt.Errorf("xp timeline for report: %w", err)
	}

	traitBar := charts.NewBar()
	traitBar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Average CX trait scores",
			Subtitle: "Team " + team,
		}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	traitNames := make([]string, 0, len(overview.TraitAverages))
	traitValues := make([]opts.BarData, 0, len(overview.TraitAverages))
	for _, avg := range overview.TraitAverages {
		traitNames = append(traitNames, avg.Trait)
		traitValues = append(traitValues, opts.BarData{Value: avg.AvgScore})
	}
	traitBar.SetXAxis(traitNames).AddSeries("avg score", traitValues)

	xpLine := charts.NewLine()
	xpLine.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "XP earned, last 7 days",
			Subtitle: "Team " + team,
		}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Scale: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)
	dates := make([]string, 0, len(timeline))
	xpValues := make([]opts.LineData, 0, len(timeline))
	for _, point := range timeline {
		dates = append(dates, point.Date.Format("2006-01-02"))
		xpValues = append(xpValues, opts.LineData{Value: point.XP})
	}
	xpLine.SetXAxis(dates).AddSeries("xp", xpValues)

	reportDir := config.Conf.Digest.ReportDir
	if err := os.MkdirAll(reportDir, 0755); err != nil {
		return "", fmt.Errorf("could not create report directory: %w", err)
	}

	path := filepath.Join(reportDir, team+".html")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("could not create report file: %w", err)
	}
	defer f.Close()

	if err := traitBar.Render(f); err != nil {
		return "", fmt.Errorf("render trait chart: %w", err)
	}
	if err := xpLine.Render(f); err != nil {
		return "", fmt.Errorf("render xp chart: %w", err)
	}

	s.log.Info("Generated weekly team report", zap.String("team", team), zap.String("path", path))
	return path, nil
}
