package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/vinquery/internal/nhtsa"
)

const labelWidth = 10

// RenderReport renders the outcome of the last Get on q. info and ok are the
// values Get returned.
func RenderReport(s Styles, q *nhtsa.Query, info nhtsa.VehicleInfo, ok bool) string {
	if q == nil {
		return ""
	}
	if ok {
		return s.Panel.Render(renderVehicle(s, q, info))
	}
	return s.Panel.Render(renderFailure(s, q))
}

func renderVehicle(s Styles, q *nhtsa.Query, info nhtsa.VehicleInfo) string {
	title := strings.Join(nonEmpty(info.Year, info.Make, info.Model), " ")
	if title == "" {
		title = q.VIN()
	}
	lines := []string{
		s.Title.Render(title),
		row(s, "VIN", q.VIN()),
		row(s, "Type", info.Type),
		row(s, "Body", info.BodyStyle),
	}
	if info.Doors > 0 {
		lines = append(lines, row(s, "Doors", strconv.Itoa(info.Doors)))
	}
	if resp := q.Response(); resp != nil && len(resp.Results) > 0 {
		record := resp.Results[0]
		if trim := strings.TrimSpace(record.Trim); trim != "" {
			lines = append(lines, row(s, "Trim", trim))
		}
		if plant := strings.Join(nonEmpty(record.Field("PlantCity"), record.Field("PlantCountry")), ", "); plant != "" {
			lines = append(lines, row(s, "Plant", plant))
		}
	}
	lines = append(lines, s.KindBadge(nhtsa.KindNone).Render("decoded"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderFailure(s Styles, q *nhtsa.Query) string {
	lines := []string{
		s.DangerText.Render("Decode failed"),
		row(s, "VIN", q.VIN()),
		s.Label.Render("Kind") + s.KindBadge(q.Kind()).Render(q.Kind().String()),
	}
	if q.ErrorCode() != 0 {
		lines = append(lines, row(s, "Code", strconv.Itoa(q.ErrorCode())))
	}
	lines = append(lines, row(s, "Error", q.Error()))
	if q.UpstreamTimeout() {
		lines = append(lines, s.WarningText.Render("The API timed out on its side; try again shortly."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func row(s Styles, label, value string) string {
	if value == "" {
		value = "-"
	}
	return s.Label.Render(label) + s.Value.Render(value)
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
