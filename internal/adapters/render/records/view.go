// Package records formats temperature records for the terminal.
package records

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/emetic/internal/domain"
)

// FeverThreshold is the temperature from which a reading is highlighted.
const FeverThreshold = 37.5

type RenderOptions struct {
	Now time.Time
}

// FormatTSV renders one record as date, time, temperature, symptoms and note
// separated by tabs.
func FormatTSV(record domain.Record) string {
	local := record.Timestamp.In(domain.Zone)
	return strings.Join([]string{
		local.Format("2006-01-02"),
		local.Format("15:04"),
		shownTemperature(record.Temperature),
		record.Symptoms.String(),
		record.Note,
	}, "\t")
}

// shownTemperature keeps every digit the server returned, with at least one decimal.
func shownTemperature(t float64) string {
	text := strconv.FormatFloat(t, 'f', -1, 64)
	if !strings.Contains(text, ".") {
		text += ".0"
	}
	return text
}

func renderView(records []domain.Record, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Temperature records"),
		s.header.Render(headerLine(len(records), opts.Now)),
	}

	if len(records) == 0 {
		lines = append(lines, s.empty.Render("No records this month."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	rows := []string{
		lipgloss.JoinHorizontal(lipgloss.Top,
			s.column.Width(12).Render("date"),
			s.column.Width(7).Render("time"),
			s.column.Width(6).Render("temp"),
			s.column.Width(8).Render("symptoms"),
			s.column.Render("note"),
		),
	}
	for _, record := range records {
		rows = append(rows, renderRow(record, opts, s))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func headerLine(count int, now time.Time) string {
	if now.IsZero() {
		return fmt.Sprintf("records: %d", count)
	}
	return fmt.Sprintf("records: %d, checkpoint %s", count, domain.Checkpoint(now).Format("2006-01-02 15:04"))
}

func renderRow(record domain.Record, opts RenderOptions, s styles) string {
	local := record.Timestamp.In(domain.Zone)

	temperature := s.normal
	if record.Temperature >= FeverThreshold {
		temperature = s.elevated
	}
	symptoms := s.cell
	if record.Symptoms.Any() {
		symptoms = s.symptom
	}

	note := record.Note
	if !opts.Now.IsZero() && !record.Timestamp.Before(domain.Checkpoint(opts.Now)) {
		note = strings.TrimSpace(note + " " + s.current.Render("[current]"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		s.cell.Width(12).Render(local.Format("2006-01-02")),
		s.cell.Width(7).Render(local.Format("15:04")),
		temperature.Width(6).Render(shownTemperature(record.Temperature)),
		symptoms.Width(8).Render(record.Symptoms.String()),
		s.cell.Render(note),
	)
}
