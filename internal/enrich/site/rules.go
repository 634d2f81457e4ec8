package site

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/venturescout/dealflow/internal/model"
)

// Rule is one independent extraction pass over a parsed page. Rules are
// heuristic by nature; each fills its slice of the SiteFacts and must
// tolerate missing structure.
type Rule struct {
	Name  string
	Apply func(doc *goquery.Document, facts *model.SiteFacts)
}

// DefaultRules returns the standard extraction battery in execution order.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "basics", Apply: extractBasics},
		{Name: "technologies", Apply: extractTechnologies},
		{Name: "team", Apply: extractTeam},
		{Name: "contact", Apply: extractContact},
		{Name: "social", Apply: extractSocial},
		{Name: "meta", Apply: extractMeta},
	}
}

func classContains(sel *goquery.Selection, needles ...string) bool {
	class, ok := sel.Attr("class")
	if !ok {
		return false
	}
	class = strings.ToLower(class)
	for _, n := range needles {
		if strings.Contains(class, n) {
			return true
		}
	}
	return false
}

func extractBasics(doc *goquery.Document, facts *model.SiteFacts) {
	facts.Title = strings.TrimSpace(doc.Find("title").First().Text())
	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		facts.Description = desc
	}
	doc.Find("article, main, div").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !classContains(s, "content", "main") {
			return true
		}
		facts.MainContent = strings.TrimSpace(s.Text())
		return false
	})
}

// techVocabulary is the fixed keyword list matched against page text and
// script sources.
var techVocabulary = []string{
	"react", "angular", "vue", "python", "django", "flask",
	"node", "aws", "azure", "gcp", "kubernetes", "docker",
	"tensorflow", "pytorch", "ai", "ml", "blockchain",
}

func extractTechnologies(doc *goquery.Document, facts *model.SiteFacts) {
	text := strings.ToLower(doc.Text())

	var sources []string
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok {
			sources = append(sources, strings.ToLower(src))
		}
	})

	seen := make(map[string]bool)
	for _, tech := range techVocabulary {
		if strings.Contains(text, tech) {
			seen[tech] = true
			continue
		}
		for _, src := range sources {
			if strings.Contains(src, tech) {
				seen[tech] = true
				break
			}
		}
	}
	for _, tech := range techVocabulary {
		if seen[tech] {
			facts.Technologies = append(facts.Technologies, tech)
		}
	}
}

func extractTeam(doc *goquery.Document, facts *model.SiteFacts) {
	doc.Find("div, section").Each(func(_ int, section *goquery.Selection) {
		if !classContains(section, "team", "about") {
			return
		}
		section.Find("div, article").Each(func(_ int, person *goquery.Selection) {
			if !classContains(person, "person", "member") {
				return
			}
			name := strings.TrimSpace(person.Find("h2, h3, h4").First().Text())
			if name == "" {
				return
			}
			member := model.TeamMember{Name: name}
			person.Find("p, span").EachWithBreak(func(_ int, t *goquery.Selection) bool {
				if !classContains(t, "title", "role") {
					return true
				}
				member.Title = strings.TrimSpace(t.Text())
				return false
			})
			facts.TeamMembers = append(facts.TeamMembers, member)
		})
	})
}

var (
	emailScanPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phoneScanPattern = regexp.MustCompile(`[+(]?[1-9][0-9 .\-()]{8,}[0-9]`)
)

func extractContact(doc *goquery.Document, facts *model.SiteFacts) {
	serialized, err := doc.Html()
	if err != nil {
		serialized = doc.Text()
	}

	facts.Contact.Emails = dedupe(emailScanPattern.FindAllString(serialized, -1))
	facts.Contact.Phones = dedupe(phoneScanPattern.FindAllString(serialized, -1))

	doc.Find("div, section").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !classContains(s, "address") {
			return true
		}
		facts.Contact.Address = strings.TrimSpace(s.Text())
		return false
	})
}

var socialPlatforms = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"linkedin", regexp.MustCompile(`linkedin\.com`)},
	{"twitter", regexp.MustCompile(`twitter\.com|x\.com`)},
	{"facebook", regexp.MustCompile(`facebook\.com`)},
	{"instagram", regexp.MustCompile(`instagram\.com`)},
	{"github", regexp.MustCompile(`github\.com`)},
}

func extractSocial(doc *goquery.Document, facts *model.SiteFacts) {
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		for _, platform := range socialPlatforms {
			if platform.pattern.MatchString(href) {
				if facts.SocialLinks == nil {
					facts.SocialLinks = make(map[string]string)
				}
				// last match per platform wins
				facts.SocialLinks[platform.name] = href
			}
		}
	})
}

func extractMeta(doc *goquery.Document, facts *model.SiteFacts) {
	doc.Find("meta").Each(func(_ int, m *goquery.Selection) {
		content, ok := m.Attr("content")
		if !ok || content == "" {
			return
		}
		if name, ok := m.Attr("name"); ok && name != "" {
			if facts.MetaTags == nil {
				facts.MetaTags = make(map[string]string)
			}
			facts.MetaTags[name] = content
		}
		if prop, ok := m.Attr("property"); ok && strings.HasPrefix(prop, "og:") {
			if facts.OGTags == nil {
				facts.OGTags = make(map[string]string)
			}
			facts.OGTags[prop] = content
		}
	})
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
