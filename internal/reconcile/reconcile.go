// Package reconcile merges pushed status updates into the locally held site
// list. The backend may emit partial updates covering only the routes it just
// checked, so the merge is field-level and keyed by identifier: a wholesale
// replacement would blank the status of every route the push left out.
package reconcile

import "appwatch/internal/models"

// Apply returns the site list with upd folded in. The input and its nested
// values are never mutated; the view layer relies on fresh values to detect
// the change.
//
// Rules:
//   - unknown siteUuid: no-op, the input is returned as-is
//   - the matched site gets the pushed status tag, every other field kept
//   - routes are matched by uuid; matched ones get the pushed status and last
//     response, unmatched ones keep their previous status
//   - nothing is inserted or deleted on either level
func Apply(sites []models.Website, upd models.StatusUpdate) []models.Website {
	idx := -1
	for i := range sites {
		if sites[i].UUID == upd.SiteUUID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return sites
	}

	byRoute := make(map[string]models.RouteStatusUpdate, len(upd.Routes))
	for _, r := range upd.Routes {
		byRoute[r.RouteID] = r
	}

	out := make([]models.Website, len(sites))
	copy(out, sites)

	site := sites[idx]
	site.SiteStatus.Status = upd.Status

	routes := make([]models.Route, len(site.Routes))
	copy(routes, site.Routes)
	for i, rt := range routes {
		if ru, ok := byRoute[rt.UUID]; ok {
			rt.Status = models.RouteStatus{Status: ru.Status, Response: ru.Response}
			routes[i] = rt
		}
	}
	site.Routes = routes

	out[idx] = site
	return out
}
