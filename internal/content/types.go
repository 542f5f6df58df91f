package content

import "github.com/tasneemkhan/portfolio/internal/icons"

// Skill is one progress-bar card.
type Skill struct {
	Name  string     `validate:"required"`
	Level int        `validate:"gte=0,lte=100"`
	Icon  icons.Name `validate:"required,glyph"`
}

// Project is one gallery card. Image is a CSS background value.
type Project struct {
	Title       string   `validate:"required"`
	Description string   `validate:"required"`
	Tech        []string `validate:"min=1,dive,required"`
	GitHub      string   `validate:"required"`
	Live        string   `validate:"required"`
	Image       string   `validate:"required"`
}

// Experience is one timeline entry. Period is free text.
type Experience struct {
	Company     string `validate:"required"`
	Position    string `validate:"required"`
	Period      string `validate:"required"`
	Description string `validate:"required"`
}

// SocialLink is an icon link in the about and contact sections.
type SocialLink struct {
	Label string     `validate:"required"`
	Href  string     `validate:"required"`
	Icon  icons.Name `validate:"required,glyph"`
}

// Profile is the prose around the tables.
type Profile struct {
	Name           string       `validate:"required"`
	Headline       string       `validate:"required"`
	Tagline        string
	About          []string     `validate:"min=1"`
	Email          string       `validate:"required"`
	Socials        []SocialLink `validate:"dive"`
	ContactHeading string
	ContactBlurb   string
	Footer         string
}

// MailTo is the href of the contact button.
func (p Profile) MailTo() string {
	return "mailto:" + p.Email
}

// ContactSocials are the links shown beside the contact button. The mail
// link is left out since the button already is one.
func (p Profile) ContactSocials() []SocialLink {
	out := make([]SocialLink, 0, len(p.Socials))
	for _, s := range p.Socials {
		if s.Icon == icons.Mail {
			continue
		}
		out = append(out, s)
	}
	return out
}
