package content

import "github.com/tasneemkhan/portfolio/internal/icons"

var (
	aboutMe = []string{
		`I'm a passionate software engineer with 5+ years of experience building
web applications and mobile solutions. I love turning complex problems
into simple, beautiful, and intuitive solutions.`,

		`When I'm not coding, you'll find me exploring new technologies,
contributing to open source projects, or sharing knowledge through
technical writing and mentoring.`,
	}

	tagline = `Turning ideas into smooth, scalable web experiences — with clean code, clear structure, and a passion for building things that matter.`

	contactBlurb = `I'm always open to discussing new opportunities and interesting projects.
Let's create something amazing together!`
)

// DefaultProfile is the profile the site ships with.
func DefaultProfile() Profile {
	return Profile{
		Name:     "Tasneem Khan",
		Headline: "Full Stack Software Engineer",
		Tagline:  tagline,
		About:    append([]string(nil), aboutMe...),
		Email:    "alex@example.com",
		Socials: []SocialLink{
			{Label: "GitHub", Href: "#", Icon: icons.Github},
			{Label: "LinkedIn", Href: "#", Icon: icons.Linkedin},
			{Label: "Email", Href: "#", Icon: icons.Mail},
		},
		ContactHeading: "Let's Work Together",
		ContactBlurb:   contactBlurb,
		Footer:         "© 2025 Tasneem Khan. Built with Go and Tailwind CSS.",
	}
}
