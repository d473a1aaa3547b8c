// Package addon defines the addon record and the hosting services it links to.
package addon

import "fmt"

// Service identifies an addon hosting service.
type Service string

const (
	ServiceCurse Service = "curse"
	ServiceWowi  Service = "wowi"
	ServiceRepo  Service = "repo"
)

// PreferredService is the pseudo service that resolves to each row's preferred service.
const PreferredService = "preferred"

// Services lists the known services in preference order.
var Services = []Service{ServiceCurse, ServiceWowi, ServiceRepo}

// Title returns the display name of the service.
func (s Service) Title() string {
	switch s {
	case ServiceCurse:
		return "Curse Forge"
	case ServiceWowi:
		return "WoW Interface"
	case ServiceRepo:
		return "GitHub"
	default:
		return string(s)
	}
}

// ParseService converts a service id to a Service.
func ParseService(s string) (Service, error) {
	switch Service(s) {
	case ServiceCurse, ServiceWowi, ServiceRepo:
		return Service(s), nil
	}
	return "", &UnknownServiceError{Service: s}
}

// UnknownServiceError is returned when a service id has no templates.
type UnknownServiceError struct {
	Service string
}

func (e *UnknownServiceError) Error() string {
	return fmt.Sprintf("unknown service %q", e.Service)
}

// Record is one row of an addon data file. Absent cells are zero values.
type Record struct {
	Name      string
	Website   string
	Hidden    bool
	Supported bool
	Spotlight string
	Curse     string
	Wowi      string
	Repo      string
	Preferred string
}

// Slug returns the record's slug for the service, empty when absent.
func (r Record) Slug(s Service) string {
	switch s {
	case ServiceCurse:
		return r.Curse
	case ServiceWowi:
		return r.Wowi
	case ServiceRepo:
		return r.Repo
	default:
		return ""
	}
}

// HasService reports whether the record has a slug for the service.
func (r Record) HasService(s Service) bool {
	return r.Slug(s) != ""
}

// ResolvePreferred returns the service to emphasize for the record.
// A stated preference only counts when its slug is populated; otherwise the
// first populated service in curse, wowi, repo order wins.
func ResolvePreferred(r Record) (Service, bool) {
	if p := Service(r.Preferred); p != "" && r.HasService(p) {
		return p, true
	}
	for _, s := range Services {
		if r.HasService(s) {
			return s, true
		}
	}
	return "", false
}
