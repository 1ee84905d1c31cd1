package fetch

import (
	"net/url"
	"strings"
)

// Platform identifies the applicant tracking system hosting a job posting.
type Platform string

// Known platforms
const (
	PlatformGreenhouse      Platform = "greenhouse"
	PlatformLever           Platform = "lever"
	PlatformWorkday         Platform = "workday"
	PlatformAshby           Platform = "ashby"
	PlatformSmartRecruiters Platform = "smartrecruiters"
	PlatformUnknown         Platform = "unknown"
)

// platformRule maps hosting domains to the selectors that isolate a posting's text.
type platformRule struct {
	platform Platform
	domains  []string // matched as the host or a parent domain of it
	content  []string
	noise    []string
}

var platformRules = []platformRule{
	{
		platform: PlatformGreenhouse,
		domains:  []string{"greenhouse.io"},
		content:  []string{".job__description.body", ".job__description", ".job-description__content", "#content", ".job-post-container"},
		noise:    []string{".application--wrapper", ".voluntary-self-id", ".voluntary-self-id-wrapper", "#usa_self_id_section", ".post-apply"},
	},
	{
		platform: PlatformLever,
		domains:  []string{"lever.co"},
		content:  []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
		noise:    []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	{
		platform: PlatformWorkday,
		domains:  []string{"myworkdayjobs.com", "workday.com"},
		content:  []string{"[data-automation-id='jobDescription']", ".gwt-HTML", ".job-description"},
		noise:    []string{"[data-automation-id='applyButton']", ".application-section"},
	},
	{
		platform: PlatformAshby,
		domains:  []string{"ashbyhq.com"},
		content:  []string{"[class*='_descriptionText']", "[class*='_description']", "main"},
		noise:    []string{"[class*='_applicationForm']", "[class*='_navigation']"},
	},
	{
		platform: PlatformSmartRecruiters,
		domains:  []string{"smartrecruiters.com"},
		content:  []string{".job-sections", "[itemprop='description']", ".job-description"},
		noise:    []string{".job-apply", ".apply-button", ".social-sharing"},
	},
}

// sharedNoise is removed from every posting: application forms, EEO notices, share
// widgets and consent banners.
var sharedNoise = []string{
	"form", "#application-form", ".application-form", ".application--container",
	".apply-button-container", "[data-testid='application-form']",
	".voluntary-disclosure", ".eeo-statement", ".eeo-section", "[data-testid='eeo']",
	".legal-disclosure", ".self-identification",
	".social-share", ".share-buttons", ".social-links",
	".cookie-banner", ".cookie-consent", ".gdpr-notice",
}

// DetectPlatform identifies the platform from a posting URL's host.
func DetectPlatform(urlStr string) Platform {
	if rule := ruleFor(urlStr); rule != nil {
		return rule.platform
	}
	return PlatformUnknown
}

func ruleFor(urlStr string) *platformRule {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil
	}
	host := strings.ToLower(parsed.Hostname())
	for i := range platformRules {
		for _, domain := range platformRules[i].domains {
			if host == domain || strings.HasSuffix(host, "."+domain) {
				return &platformRules[i]
			}
		}
	}
	return nil
}

func lookupRule(p Platform) *platformRule {
	for i := range platformRules {
		if platformRules[i].platform == p {
			return &platformRules[i]
		}
	}
	return nil
}

// PlatformContentSelectors returns the content selectors for p, most specific first.
// Unknown platforms use JobPostingSelectors.
func PlatformContentSelectors(p Platform) []string {
	if rule := lookupRule(p); rule != nil {
		return append([]string(nil), rule.content...)
	}
	return JobPostingSelectors()
}

// PlatformNoiseSelectors returns the shared noise selectors plus those specific to p.
func PlatformNoiseSelectors(p Platform) []string {
	out := append([]string(nil), sharedNoise...)
	if rule := lookupRule(p); rule != nil {
		out = append(out, rule.noise...)
	}
	return out
}
