package models

// Wire types for the App-Watch backend. Field names follow the backend's JSON.
// Status tags are backend-owned strings and are passed through untouched.

type RouteStatus struct {
	Status   string `json:"status"`
	Response string `json:"response,omitempty"`
}

type Route struct {
	UUID      string      `json:"uuid"`
	WebsiteID string      `json:"websiteId"`
	Method    string      `json:"method"`
	Route     string      `json:"route"`
	Body      string      `json:"body,omitempty"`
	CreatedAt string      `json:"createdAt,omitempty"`
	UpdatedAt string      `json:"updatedAt,omitempty"`
	Status    RouteStatus `json:"routeStatus"`
}

type SiteStatus struct {
	UUID        string `json:"uuid"`
	SiteID      string `json:"siteId"`
	Status      string `json:"status"`
	LastChecked string `json:"lastChecked"`
}

type Website struct {
	UUID       string     `json:"uuid"`
	Name       string     `json:"name"`
	URL        string     `json:"url"`
	Token      string     `json:"token,omitempty"`
	UserID     string     `json:"userId"`
	CreatedAt  string     `json:"createdAt,omitempty"`
	UpdatedAt  string     `json:"updatedAt,omitempty"`
	Routes     []Route    `json:"routes"`
	SiteStatus SiteStatus `json:"siteStatus"`
}

type WebsiteList struct {
	Total    int       `json:"total"`
	Websites []Website `json:"websites"`
}

type UserDetails struct {
	UUID            string `json:"uuid"`
	Name            string `json:"name"`
	ProfileImageURL string `json:"profileImageUrl"`
	Notifications   bool   `json:"notifications"`
}

type UserData struct {
	UUID        string      `json:"uuid"`
	Email       string      `json:"email"`
	Type        string      `json:"type"`
	UserDetails UserDetails `json:"userDetails"`
}

func (u UserData) IsAdmin() bool { return u.Type == "admin" }

type AuthResponse struct {
	AccessToken string   `json:"accessToken"`
	UserData    UserData `json:"userData"`
}

// StatusUpdate is the single realtime message kind. The backend may push
// partial updates covering only the routes it just finished checking.
type StatusUpdate struct {
	SiteUUID string              `json:"siteUuid"`
	Status   string              `json:"status"`
	Routes   []RouteStatusUpdate `json:"routes"`
}

type RouteStatusUpdate struct {
	RouteID  string `json:"routeId"`
	Status   string `json:"status"`
	Response string `json:"response"`
}

// Admin listing rows.

type ErrorLog struct {
	UUID      string `json:"uuid"`
	Message   string `json:"message"`
	Origin    string `json:"origin"`
	CreatedAt string `json:"createdAt"`
}

type ErrorLogList struct {
	Total int        `json:"total"`
	Logs  []ErrorLog `json:"errorLogs"`
}

type AdminWebsite struct {
	UUID       string `json:"uuid"`
	Name       string `json:"name"`
	URL        string `json:"url"`
	UserEmail  string `json:"userEmail"`
	RouteCount int    `json:"routeCount"`
	CreatedAt  string `json:"createdAt"`
}

type AdminWebsiteList struct {
	Total    int            `json:"total"`
	Websites []AdminWebsite `json:"websites"`
}

type AdminRoute struct {
	UUID        string `json:"uuid"`
	WebsiteName string `json:"websiteName"`
	Method      string `json:"method"`
	Route       string `json:"route"`
	UserEmail   string `json:"userEmail"`
	CreatedAt   string `json:"createdAt"`
}

type AdminRouteList struct {
	Total  int          `json:"total"`
	Routes []AdminRoute `json:"routes"`
}

type AdminUser struct {
	UUID      string `json:"uuid"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	CreatedAt string `json:"createdAt"`
}

type AdminUserList struct {
	Total int         `json:"total"`
	Users []AdminUser `json:"users"`
}
