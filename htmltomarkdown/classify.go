package htmltomarkdown

// Fixed tag taxonomy. These are pure lookup tables; everything not
// listed here is inline by default, including unknown tags.

// blockTags start a new block when encountered in a sibling run.
var blockTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"p": true, "pre": true, "ul": true, "ol": true, "dl": true,
	"table": true, "blockquote": true, "hr": true, "figcaption": true,
	"div": true, "aside": true, "figure": true, "article": true,
	"section": true, "main": true, "header": true, "footer": true,
	"nav": true, "body": true, "html": true,
}

// containerTags are transparent: they contribute no markup of their
// own and simply pass their children through as blocks.
var containerTags = map[string]bool{
	"div": true, "aside": true, "figure": true, "article": true,
	"section": true, "main": true, "header": true, "footer": true,
	"nav": true, "body": true, "html": true,
}

// ignoredTags contribute nothing to the output at all.
var ignoredTags = map[string]bool{
	"head": true, "script": true, "style": true, "noscript": true,
	"template": true, "meta": true, "link": true, "base": true,
	"title": true,
}

// headingLevels maps heading tags to their markdown level.
var headingLevels = map[string]int{
	"h1": 1, "h2": 2, "h3": 3, "h4": 4, "h5": 5, "h6": 6,
}

// safeSchemes is the link destination allow-list. Relative
// destinations (#..., /..., ./..., ../... and bare paths) are always
// allowed; anything with an unlisted scheme is rejected.
var safeSchemes = map[string]bool{
	"http": true, "https": true, "mailto": true, "ftp": true, "tel": true,
}

// isBlock reports whether a node starts a new block. Text, comments,
// and unknown elements flow inline.
func isBlock(n Node) bool {
	if n.Kind() != KindElement {
		return false
	}
	return blockTags[n.Tag()]
}
