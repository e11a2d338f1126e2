package static

import _ "embed"

// IndexHTML contains the embedded landing page with the live activity feed.
//
//go:embed index.html
var IndexHTML string
