// Package content holds the fixed tables the portfolio page is built from.
// The tables are compiled in and never change at runtime; accessors hand
// out copies.
package content

import "github.com/tasneemkhan/portfolio/internal/icons"

var skills = []Skill{
	{Name: "JavaScript/TypeScript", Level: 95, Icon: icons.Code},
	{Name: "React/Next.js", Level: 90, Icon: icons.Globe},
	{Name: "Node.js/Express", Level: 85, Icon: icons.Database},
	{Name: "Python/Django", Level: 80, Icon: icons.Code},
	{Name: "React Native", Level: 75, Icon: icons.Smartphone},
	{Name: "PostgreSQL/MongoDB", Level: 85, Icon: icons.Database},
}

var projects = []Project{
	{
		Title:       "E-Commerce Platform",
		Description: "Full-stack e-commerce solution with React, Node.js, and Stripe integration. Features include real-time inventory, user authentication, and admin dashboard.",
		Tech:        []string{"React", "Node.js", "PostgreSQL", "Stripe", "AWS"},
		GitHub:      "#",
		Live:        "#",
		Image:       "linear-gradient(135deg, #667eea 0%, #764ba2 100%)",
	},
	{
		Title:       "Task Management App",
		Description: "Collaborative project management tool with real-time updates, drag-and-drop functionality, and team collaboration features.",
		Tech:        []string{"Next.js", "Socket.io", "MongoDB", "Tailwind CSS"},
		GitHub:      "#",
		Live:        "#",
		Image:       "linear-gradient(135deg, #f093fb 0%, #f5576c 100%)",
	},
	{
		Title:       "AI-Powered Analytics Dashboard",
		Description: "Business intelligence dashboard with machine learning insights, data visualization, and predictive analytics capabilities.",
		Tech:        []string{"Python", "FastAPI", "React", "TensorFlow", "D3.js"},
		GitHub:      "#",
		Live:        "#",
		Image:       "linear-gradient(135deg, #4facfe 0%, #00f2fe 100%)",
	},
}

// experience is newest first by convention.
var experience = []Experience{
	{
		Company:     "3Di Systems Solutions Pvt. Ltd.",
		Position:    "Software Engineer",
		Period:      "09/2023 - 06/2025",
		Description: "Lead development of microservices architecture serving 100K+ users. Mentored junior developers and implemented CI/CD pipelines.",
	},
	{
		Company:     "House of Gaming",
		Position:    "Software Engineer",
		Period:      "12/2022 - 06/2023",
		Description: "Built scalable web applications from scratch. Collaborated with design team to create responsive, user-friendly interfaces.",
	},
	{
		Company:     "Homesfy - Craft Financial Advisors Pvt. Ltd",
		Position:    "Software Engineer",
		Period:      "10/2020 - 11/2022",
		Description: "Developed client websites and web applications using modern JavaScript frameworks. Optimized performance and SEO.",
	},
	{
		Company:     "Homesfy - Craft Financial Advisors Pvt. Ltd",
		Position:    "Internship",
		Period:      "03/2020 - 10/2020",
		Description: "Developed client websites and web applications using modern JavaScript frameworks. Optimized performance and SEO.",
	},
}

// Skills returns the skill table in display order.
func Skills() []Skill {
	out := make([]Skill, len(skills))
	copy(out, skills)
	return out
}

// Projects returns the project table in display order.
func Projects() []Project {
	out := make([]Project, len(projects))
	for i, p := range projects {
		p.Tech = append([]string(nil), p.Tech...)
		out[i] = p
	}
	return out
}

// Experiences returns the work history in display order.
func Experiences() []Experience {
	out := make([]Experience, len(experience))
	copy(out, experience)
	return out
}
