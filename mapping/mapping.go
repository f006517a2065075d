// Package mapping provides the schema profiles that select which P1-PIO
// wire variant a message is built with.
package mapping

import (
	"fmt"
)

// Recipient strategies for the message header.
const (
	// RecipientNone omits header.to; the server resolves the recipient.
	RecipientNone = ""
	// RecipientFirstAuthorROR addresses the message to the first author's
	// institution ROR id.
	RecipientFirstAuthorROR = "first_author_ror"
)

// Defaults applied to empty profile fields.
const (
	DefaultMessageType       = "p1"
	DefaultMessageVersion    = "v2"
	DefaultTiming            = "VoR"
	DefaultArticleType       = "research-article"
	DefaultDOIBaseURL        = "https://doi.org/"
	DefaultPublicationPolicy = "pure OA journal"
)

// Profile describes one P1-PIO schema variant.
type Profile struct {
	// Name is the profile identifier
	Name string `yaml:"name" json:"name"`

	// Version is the Switchboard API version this profile targets
	Version string `yaml:"version,omitempty" json:"version,omitempty"`

	// Description provides human-readable documentation
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	Header  HeaderOptions  `yaml:"header" json:"header"`
	Timing  string         `yaml:"timing,omitempty" json:"timing,omitempty"`
	Authors AuthorOptions  `yaml:"authors" json:"authors"`
	Article ArticleOptions `yaml:"article" json:"article"`
	Journal JournalOptions `yaml:"journal" json:"journal"`
}

// HeaderOptions configures the message header.
type HeaderOptions struct {
	Type       string `yaml:"type,omitempty" json:"type,omitempty"`
	Version    string `yaml:"version,omitempty" json:"version,omitempty"`
	Persistent *bool  `yaml:"persistent,omitempty" json:"persistent,omitempty"`
	PIO        *bool  `yaml:"pio,omitempty" json:"pio,omitempty"`

	// Recipient selects how header.to is resolved (see Recipient* constants)
	Recipient string `yaml:"recipient,omitempty" json:"recipient,omitempty"`
}

// AuthorOptions configures the authors section.
type AuthorOptions struct {
	// Extended adds orcid, email, isCorrespondingAuthor and listingorder
	Extended bool `yaml:"extended,omitempty" json:"extended,omitempty"`
}

// ArticleOptions configures the article section.
type ArticleOptions struct {
	Type              string `yaml:"type,omitempty" json:"type,omitempty"`
	DOIBaseURL        string `yaml:"doi_base_url,omitempty" json:"doi_base_url,omitempty"`
	PublicationPolicy string `yaml:"publication_policy,omitempty" json:"publication_policy,omitempty"`

	// ManuscriptID emits manuscript.id from the article text galley
	ManuscriptID bool `yaml:"manuscript_id,omitempty" json:"manuscript_id,omitempty"`

	// ManuscriptDates emits manuscript.dates (submission, publication)
	ManuscriptDates bool `yaml:"manuscript_dates,omitempty" json:"manuscript_dates,omitempty"`
}

// JournalOptions configures the journal section.
type JournalOptions struct {
	// ISSNFields adds explicit eissn and issn fields
	ISSNFields bool `yaml:"issn_fields,omitempty" json:"issn_fields,omitempty"`
}

// VersionedName returns the profile name with version (e.g., "server@v2")
func (p *Profile) VersionedName() string {
	if p.Version != "" {
		return p.Name + "@" + p.Version
	}
	return p.Name
}

// UsesRecipient reports whether messages carry a header.to address.
func (p *Profile) UsesRecipient() bool {
	return p.Header.Recipient == RecipientFirstAuthorROR
}

// IsPersistent returns header.persistent, true unless set otherwise.
func (p *Profile) IsPersistent() bool {
	return p.Header.Persistent == nil || *p.Header.Persistent
}

// IsPIO returns header.pio, true unless set otherwise.
func (p *Profile) IsPIO() bool {
	return p.Header.PIO == nil || *p.Header.PIO
}

// ApplyDefaults fills empty string fields with the package defaults.
func (p *Profile) ApplyDefaults() {
	if p.Header.Type == "" {
		p.Header.Type = DefaultMessageType
	}
	if p.Header.Version == "" {
		p.Header.Version = DefaultMessageVersion
	}
	if p.Timing == "" {
		p.Timing = DefaultTiming
	}
	if p.Article.Type == "" {
		p.Article.Type = DefaultArticleType
	}
	if p.Article.DOIBaseURL == "" {
		p.Article.DOIBaseURL = DefaultDOIBaseURL
	}
	if p.Article.PublicationPolicy == "" {
		p.Article.PublicationPolicy = DefaultPublicationPolicy
	}
}

// Validate checks that the profile is usable.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile has no name")
	}
	switch p.Header.Recipient {
	case RecipientNone, RecipientFirstAuthorROR:
	default:
		return fmt.Errorf("profile %s: unknown recipient strategy %q", p.Name, p.Header.Recipient)
	}
	return nil
}
