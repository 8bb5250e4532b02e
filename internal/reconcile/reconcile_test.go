package reconcile

import (
	"reflect"
	"testing"

	"appwatch/internal/models"
)

func sampleSites() []models.Website {
	return []models.Website{
		{
			UUID:      "A",
			Name:      "Create Burger",
			URL:       "https://createburger.com.br/",
			UserID:    "u1",
			CreatedAt: "2024-05-01T10:00:00Z",
			SiteStatus: models.SiteStatus{
				UUID:   "ss1",
				SiteID: "A",
				Status: "checking",
			},
			Routes: []models.Route{
				{UUID: "r1", WebsiteID: "A", Method: "GET", Route: "/health", Status: models.RouteStatus{Status: "pending"}},
				{UUID: "r2", WebsiteID: "A", Method: "POST", Route: "/orders", Body: `{"q":1}`, Status: models.RouteStatus{Status: "pending"}},
			},
		},
		{
			UUID: "B",
			Name: "Other Site",
			URL:  "https://other.example",
			SiteStatus: models.SiteStatus{Status: "online"},
			Routes: []models.Route{
				{UUID: "r9", WebsiteID: "B", Method: "GET", Route: "/", Status: models.RouteStatus{Status: "success", Response: "200 OK"}},
			},
		},
	}
}

func TestApplyUpdatesSiteAndRoutes(t *testing.T) {
	sites := sampleSites()
	upd := models.StatusUpdate{
		SiteUUID: "A",
		Status:   "online",
		Routes: []models.RouteStatusUpdate{
			{RouteID: "r1", Status: "success", Response: "200 OK"},
		},
	}

	got := Apply(sites, upd)

	site := got[0]
	if site.SiteStatus.Status != "online" {
		t.Errorf("site status = %q, expected %q", site.SiteStatus.Status, "online")
	}
	if site.Routes[0].Status.Status != "success" || site.Routes[0].Status.Response != "200 OK" {
		t.Errorf("route r1 status = %+v, expected success/200 OK", site.Routes[0].Status)
	}

	// r2 was not in the push: its status must survive untouched.
	if site.Routes[1].Status.Status != "pending" {
		t.Errorf("route r2 status = %q, expected previous %q", site.Routes[1].Status.Status, "pending")
	}

	// Non-status fields are preserved through the partial update.
	if site.Name != "Create Burger" || site.URL != "https://createburger.com.br/" || site.CreatedAt != "2024-05-01T10:00:00Z" {
		t.Errorf("site fields changed during merge: %+v", site)
	}
	if site.Routes[1].Body != `{"q":1}` || site.Routes[1].Method != "POST" {
		t.Errorf("route fields changed during merge: %+v", site.Routes[1])
	}

	// Untouched sites come through as-is.
	if !reflect.DeepEqual(got[1], sites[1]) {
		t.Errorf("unrelated site changed: %+v", got[1])
	}
}

func TestApplyUnknownSiteIsNoop(t *testing.T) {
	sites := sampleSites()
	upd := models.StatusUpdate{SiteUUID: "Z", Status: "offline",
		Routes: []models.RouteStatusUpdate{{RouteID: "r1", Status: "error"}}}

	got := Apply(sites, upd)
	if !reflect.DeepEqual(got, sites) {
		t.Errorf("unknown site must leave the list unchanged, got %+v", got)
	}
}

func TestApplyUnknownRouteIsIgnored(t *testing.T) {
	sites := sampleSites()
	upd := models.StatusUpdate{
		SiteUUID: "A",
		Status:   "online",
		Routes:   []models.RouteStatusUpdate{{RouteID: "nope", Status: "error", Response: "boom"}},
	}

	got := Apply(sites, upd)
	if len(got[0].Routes) != 2 {
		t.Fatalf("route count changed: %d", len(got[0].Routes))
	}
	for i, rt := range got[0].Routes {
		if rt.Status.Status != "pending" {
			t.Errorf("route %d status = %q, expected pending", i, rt.Status.Status)
		}
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	sites := sampleSites()
	upd := models.StatusUpdate{
		SiteUUID: "A",
		Status:   "online",
		Routes:   []models.RouteStatusUpdate{{RouteID: "r1", Status: "success", Response: "200 OK"}},
	}

	once := Apply(sites, upd)
	twice := Apply(once, upd)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("applying the same message twice diverged:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	sites := sampleSites()
	snapshot := sampleSites()

	Apply(sites, models.StatusUpdate{
		SiteUUID: "A",
		Status:   "offline",
		Routes:   []models.RouteStatusUpdate{{RouteID: "r1", Status: "error", Response: "timeout"}},
	})

	if !reflect.DeepEqual(sites, snapshot) {
		t.Errorf("input list was mutated in place:\ngot:  %+v\nwant: %+v", sites, snapshot)
	}
}

func TestApplySpecScenario(t *testing.T) {
	sites := []models.Website{{
		UUID:       "A",
		SiteStatus: models.SiteStatus{Status: "checking"},
		Routes:     []models.Route{{UUID: "r1", Status: models.RouteStatus{Status: "pending"}}},
	}}

	got := Apply(sites, models.StatusUpdate{
		SiteUUID: "A",
		Status:   "online",
		Routes:   []models.RouteStatusUpdate{{RouteID: "r1", Status: "success", Response: "200 OK"}},
	})

	if got[0].SiteStatus.Status != "online" {
		t.Errorf("site status = %q", got[0].SiteStatus.Status)
	}
	if got[0].Routes[0].Status.Status != "success" || got[0].Routes[0].Status.Response != "200 OK" {
		t.Errorf("route status = %+v", got[0].Routes[0].Status)
	}
}

func TestApplyLastProcessedWins(t *testing.T) {
	sites := sampleSites()

	first := models.StatusUpdate{SiteUUID: "A", Status: "online",
		Routes: []models.RouteStatusUpdate{{RouteID: "r1", Status: "success", Response: "200 OK"}}}
	second := models.StatusUpdate{SiteUUID: "A", Status: "offline",
		Routes: []models.RouteStatusUpdate{{RouteID: "r1", Status: "error", Response: "503"}}}

	got := Apply(Apply(sites, first), second)
	if got[0].SiteStatus.Status != "offline" {
		t.Errorf("site status = %q, expected offline", got[0].SiteStatus.Status)
	}
	if got[0].Routes[0].Status.Response != "503" {
		t.Errorf("route response = %q, expected 503", got[0].Routes[0].Status.Response)
	}
}
