package ox

// Version identifies the front-end release; BuildDate is stamped by the
// release workflow via -ldflags.
var (
	Version   = "0.3.0"
	BuildDate = "unknown"
)
