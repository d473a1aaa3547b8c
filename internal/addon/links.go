package addon

const spotlightBase = "https://classic.wowhead.com/news="

var linkTemplates = map[Service]func(slug string) string{
	ServiceCurse: func(slug string) string { return "https://curseforge.com/wow/addons/" + slug },
	ServiceWowi:  func(slug string) string { return "https://wowinterface.com/downloads/info" + slug },
	ServiceRepo:  func(slug string) string { return "https://github.com/" + slug },
}

var commandTemplates = map[Service]func(slug string) string{
	ServiceCurse: func(slug string) string { return "wowa add curse:" + slug },
	ServiceWowi:  func(slug string) string { return "wowa add wowinterface:" + slug },
	ServiceRepo:  func(slug string) string { return "wowa add " + slug },
}

// Link builds the web link for a slug on the given service.
func Link(s Service, slug string) (string, error) {
	tmpl, ok := linkTemplates[s]
	if !ok {
		return "", &UnknownServiceError{Service: string(s)}
	}
	return tmpl(slug), nil
}

// Command builds the wowa CLI command that installs a slug from the given service.
func Command(s Service, slug string) (string, error) {
	tmpl, ok := commandTemplates[s]
	if !ok {
		return "", &UnknownServiceError{Service: string(s)}
	}
	return tmpl(slug), nil
}

// SpotlightLink returns the Wowhead spotlight article link, or "" when id is empty.
func SpotlightLink(id string) string {
	if id == "" {
		return ""
	}
	return spotlightBase + id
}

// ServiceLinks is a link and command pair for one populated service of a record.
type ServiceLinks struct {
	Service   Service
	Link      string
	Command   string
	Preferred bool
}

// LinksFor returns the link pairs of every populated service of r, in service order.
func LinksFor(r Record) []ServiceLinks {
	preferred, _ := ResolvePreferred(r)
	out := make([]ServiceLinks, 0, len(Services))
	for _, s := range Services {
		slug := r.Slug(s)
		if slug == "" {
			continue
		}
		out = append(out, ServiceLinks{
			Service:   s,
			Link:      linkTemplates[s](slug),
			Command:   commandTemplates[s](slug),
			Preferred: s == preferred,
		})
	}
	return out
}
