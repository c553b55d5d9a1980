package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/agrovision/portal/dashboard"
)

const dashboardDateLayout = "2006-01-02"

// MailDailyPageData carries everything the daily mail-report page needs.
type MailDailyPageData struct {
	PageData
	ImageTypes   []string
	SelectedType string
	SelectedDate string
	MinDate      string
	MaxDate      string
	ImageURL     string
}

// MailDailyHandler renders the daily mail-report dashboard
// (GET /dashboard_email). The report type and date come from query
// parameters; dates outside the selectable window clamp to its edges.
func (s *Server) MailDailyHandler() http.HandlerFunc {
	dashTmpl, err := ParseTemplate("dashboard_mail_daily.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse daily mail dashboard template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := MailDailyPageData{PageData: s.pageData(r)}

		orgName := s.deps.Sessions.Session(SessionID(r)).Organization
		if orgName == "" {
			orgName = s.deps.Branding.Default().Name
		}
		maps := s.deps.ImageMaps[orgName]
		data.ImageTypes = maps.Types()

		minDate, maxDate := dashboard.Window(time.Now())
		data.MinDate = minDate.Format(dashboardDateLayout)
		data.MaxDate = maxDate.Format(dashboardDateLayout)

		selected := maxDate
		if raw := r.URL.Query().Get("date"); raw != "" {
			if parsed, err := time.Parse(dashboardDateLayout, raw); err == nil {
				selected = clampDate(parsed, minDate, maxDate)
			}
		}
		data.SelectedDate = selected.Format(dashboardDateLayout)

		data.SelectedType = r.URL.Query().Get("type")
		if _, ok := maps[data.SelectedType]; !ok {
			data.SelectedType = ""
			if len(data.ImageTypes) > 0 {
				data.SelectedType = data.ImageTypes[0]
			}
		}

		if data.SelectedType != "" {
			id := maps.ImageID(data.SelectedType, selected)
			data.ImageURL = dashboard.ImageURL(s.config.GetImageHostBaseURL(), id)
		}

		render(w, dashTmpl, data)
	}
}

func clampDate(date, min, max time.Time) time.Time {
	if date.Before(min) {
		return min
	}
	if date.After(max) {
		return max
	}
	return date
}
