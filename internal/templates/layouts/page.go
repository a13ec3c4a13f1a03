package layouts

import "strings"

const siteName = "Score Challenge"

func pageTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return siteName
	}
	return title + " | " + siteName
}
