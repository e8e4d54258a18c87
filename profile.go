package sitesnap

// Profile holds the site-specific settings for discovery and extraction.
type Profile struct {
	Name string `yaml:"name"`

	// BaseURL is the site origin, used as the default discovery seed.
	BaseURL string `yaml:"base_url,omitempty"`

	// Sections are root paths below BaseURL crawled by default.
	Sections []string `yaml:"sections,omitempty"`

	// Pages is a fixed page list used instead of link discovery.
	Pages []string `yaml:"pages,omitempty"`

	// Mode is the default discovery mode, "hierarchy" or "pathtree".
	Mode string `yaml:"mode,omitempty"`

	// ContentSelector identifies the main content region.
	ContentSelector string `yaml:"content_selector,omitempty"`

	// FallbackSelector is tried when ContentSelector matches nothing.
	// The document body is used when both fail.
	FallbackSelector string `yaml:"fallback_selector,omitempty"`

	// Strict disables the body fallback: pages whose content region is
	// missing are skipped.
	Strict bool `yaml:"strict,omitempty"`

	// LinkRegions are tried in order to find the region whose links are
	// followed during discovery. The document body is used when none match.
	LinkRegions []string `yaml:"link_regions,omitempty"`

	// Boilerplate lists text fragments dropped from the rendering.
	Boilerplate *PhraseFilter `yaml:"boilerplate,omitempty"`

	// Roles overrides entries of DefaultRoles by tag name.
	Roles map[string]string `yaml:"roles,omitempty"`

	// DocumentExtensions mark links recorded as referenced documents.
	DocumentExtensions []string `yaml:"document_extensions,omitempty"`

	// BlockedExtensions mark links never crawled during discovery.
	BlockedExtensions []string `yaml:"blocked_extensions,omitempty"`
}

// Validate returns an error if the profile contains invalid fields.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return Errorf(EINVALID, "profile name required")
	}
	if p.ContentSelector == "" {
		return Errorf(EINVALID, "profile %q: content selector required", p.Name)
	}
	for tag, role := range p.Roles {
		if _, err := ParseTagRole(role); err != nil {
			return Errorf(EINVALID, "profile %q: tag %q: %s", p.Name, tag, ErrorMessage(err))
		}
	}
	return nil
}

// RoleTable returns DefaultRoles with the profile's overrides applied.
// It assumes the profile has been validated.
func (p *Profile) RoleTable() map[string]TagRole {
	roles := DefaultRoles()
	for tag, name := range p.Roles {
		if role, err := ParseTagRole(name); err == nil {
			roles[tag] = role
		}
	}
	return roles
}

// Documents returns the document extensions, defaulting to
// DefaultDocumentExtensions.
func (p *Profile) Documents() []string {
	if len(p.DocumentExtensions) == 0 {
		return DefaultDocumentExtensions()
	}
	return p.DocumentExtensions
}

// Blocked returns the blocked extensions, defaulting to
// DefaultBlockedExtensions.
func (p *Profile) Blocked() []string {
	if len(p.BlockedExtensions) == 0 {
		return DefaultBlockedExtensions()
	}
	return p.BlockedExtensions
}

// DefaultLinkRegions returns the link regions used when a profile lists none.
func DefaultLinkRegions() []string {
	return []string{"main", "div#main", "div.region-content"}
}

// Regions returns the link regions, defaulting to DefaultLinkRegions.
func (p *Profile) Regions() []string {
	if len(p.LinkRegions) == 0 {
		return DefaultLinkRegions()
	}
	return p.LinkRegions
}
