package skills

// CatalogEntry is a predefined skill offered when the user has no skills
// of their own yet.
type CatalogEntry struct {
	Name        string
	Icon        string
	Description string
}

// Catalog lists the predefined skills, in display order.
var Catalog = []CatalogEntry{
	{Name: "Python", Icon: "🐍", Description: "Python Programming"},
	{Name: "SQL", Icon: "🗄", Description: "Database & SQL"},
	{Name: "Networking", Icon: "📡", Description: "Network Protocols"},
	{Name: "Linux", Icon: "🖥", Description: "Linux System Admin"},
	{Name: "AWS", Icon: "☁", Description: "AWS Services"},
	{Name: "JavaScript", Icon: "💻", Description: "JavaScript & Web Dev"},
}
