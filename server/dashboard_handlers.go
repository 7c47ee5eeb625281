package server

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/updeals/retailer-portal/deals"
)

// DashboardPageData contains data for rendering the retailer dashboard
type DashboardPageData struct {
	AppName      string
	Email        string
	BusinessName string
	Deals        []*deals.Deal
}

// DashboardHandler renders the retailer dashboard with the retailer's
// deals. Middleware guarantees an approved-retailer access in context.
func (s *Server) DashboardHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("dashboard.html")
	if err != nil {
		panic("Failed to parse dashboard template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		access := AccessFromContext(r.Context())
		if access == nil {
			http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
			return
		}

		data := DashboardPageData{
			AppName: s.config.GetAppName(),
			Email:   access.Session.Email,
		}

		if retailer, err := s.repos.Retailers.GetByID(r.Context(), access.RetailerID); err == nil && retailer != nil {
			data.BusinessName = retailer.BusinessName
		}

		dealList, err := s.repos.Deals.ListByRetailer(r.Context(), access.RetailerID)
		if err != nil {
			log.Error().Err(err).Str("retailer_id", access.RetailerID).Msg("failed to list deals")
			http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
			return
		}
		data.Deals = dealList

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render dashboard template")
		}
	}
}

// DealFormData contains data for rendering the new-deal form
type DealFormData struct {
	AppName string
	Error   string
	Title   string
}

// DealNewPageHandler renders the new-deal form (GET /dashboard/deals/new)
func (s *Server) DealNewPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("deal_new.html")
	if err != nil {
		panic("Failed to parse deal form template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := DealFormData{
			AppName: s.config.GetAppName(),
			Error:   r.URL.Query().Get("error"),
			Title:   r.URL.Query().Get("title"),
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render deal form template")
			http.Error(w, "Failed to render deal form", http.StatusInternalServerError)
		}
	}
}

// DealCreateHandler processes the new-deal form. The retailer id comes
// from the guard's access result, never from the form, so a retailer can
// only ever write deals under its own account.
func (s *Server) DealCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		access := AccessFromContext(r.Context())
		if access == nil {
			http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		title := r.FormValue("title")
		if title == "" {
			redirectWithError(w, r, RouteDealNew, "Title is required")
			return
		}

		price, err := strconv.ParseFloat(r.FormValue("price"), 64)
		if err != nil || price < 0 {
			redirectWithError(w, r, RouteDealNew, "A valid price is required")
			return
		}

		var originalPrice float64
		if raw := r.FormValue("original_price"); raw != "" {
			originalPrice, err = strconv.ParseFloat(raw, 64)
			if err != nil || originalPrice < 0 {
				redirectWithError(w, r, RouteDealNew, "Original price must be a number")
				return
			}
		}

		params := deals.CreateParams{
			RetailerID:    access.RetailerID,
			Title:         title,
			Description:   r.FormValue("description"),
			Price:         price,
			OriginalPrice: originalPrice,
		}

		deal, err := s.repos.Deals.Create(r.Context(), params)
		if err != nil {
			log.Error().Err(err).Str("retailer_id", access.RetailerID).Msg("failed to create deal")
			redirectWithError(w, r, RouteDealNew, "Failed to create deal, please try again")
			return
		}

		log.Info().Str("deal_id", deal.ID).Str("retailer_id", access.RetailerID).Msg("deal created")
		redirectSuccess(w, r, RouteDashboard)
	}
}
