package filter

import (
	"addonlist/internal/addon"
	"addonlist/internal/clipboard"
)

// Bundle holds the links and wowa commands collected for a bulk copy.
type Bundle struct {
	Service  string
	Links    []string
	Commands []string
}

// Len returns the number of collected rows.
func (b Bundle) Len() int { return len(b.Links) }

// LinksText returns the links as clipboard text.
func (b Bundle) LinksText() string { return clipboard.JoinLines(b.Links) }

// CommandsText returns the wowa commands as clipboard text.
func (b Bundle) CommandsText() string { return clipboard.JoinLines(b.Commands) }

// CollectAll builds link and command lists for every row matching m.
// For addon.PreferredService each row contributes its resolved preferred
// service; for a concrete service only rows with that slug contribute.
// Order follows rows and nothing is de-duplicated.
func CollectAll(rows []addon.Record, m Matcher, service string) (Bundle, error) {
	b := Bundle{Service: service}

	var fixed addon.Service
	if service != addon.PreferredService {
		s, err := addon.ParseService(service)
		if err != nil {
			return Bundle{}, err
		}
		fixed = s
	}

	for _, r := range rows {
		if !m.Match(r.Name) {
			continue
		}

		s := fixed
		if service == addon.PreferredService {
			p, ok := addon.ResolvePreferred(r)
			if !ok {
				continue
			}
			s = p
		}

		slug := r.Slug(s)
		if slug == "" {
			continue
		}

		link, err := addon.Link(s, slug)
		if err != nil {
			return Bundle{}, err
		}
		cmd, err := addon.Command(s, slug)
		if err != nil {
			return Bundle{}, err
		}
		b.Links = append(b.Links, link)
		b.Commands = append(b.Commands, cmd)
	}
	return b, nil
}
