package vanilla

import (
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	fragmentPolicyOnce sync.Once
	fragmentPolicy     *bluemonday.Policy

	classPattern      = regexp.MustCompile(`^[A-Za-z0-9_\- ]*$`)
	buttonTypePattern = regexp.MustCompile(`^button$`)
)

// sanitizeFragment strips anything the element templates never emit. Text is
// escaped by the template engine already; this pass guards against custom
// template bundles and hostile media URLs.
func sanitizeFragment(fragment string) string {
	return getFragmentPolicy().Sanitize(fragment)
}

func getFragmentPolicy() *bluemonday.Policy {
	fragmentPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("div", "h3", "p", "img", "button")
		policy.AllowAttrs("class").Matching(classPattern).Globally()
		policy.AllowDataAttributes()
		policy.AllowAttrs("type").Matching(buttonTypePattern).OnElements("button")
		policy.AllowAttrs("src", "alt").OnElements("img")
		policy.AllowURLSchemes("http", "https")
		policy.RequireParseableURLs(true)
		fragmentPolicy = policy
	})
	return fragmentPolicy
}
