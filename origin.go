package moodle2pdf

import (
	"fmt"
	"strconv"
	"strings"
)

// URL scheme prefixes recognized by ParseOrigin.
const (
	securePrefix   = "https://"
	insecurePrefix = "http://"
)

// Default ports for each scheme.
const (
	defaultSecurePort   = 443
	defaultInsecurePort = 80
)

// Origin is the scheme, host and port of the site being exported.
type Origin struct {
	Secure bool
	Host   string
	Port   int
}

// ParseOrigin extracts the origin of an attempt URL of the form
// http(s)://host[:port]/... It is a prefix parse, not a URI parser.
func ParseOrigin(link string) (Origin, error) {
	var o Origin
	var rest string

	switch {
	case strings.HasPrefix(link, securePrefix):
		o.Secure = true
		o.Port = defaultSecurePort
		rest = link[len(securePrefix):]
	case strings.HasPrefix(link, insecurePrefix):
		o.Port = defaultInsecurePort
		rest = link[len(insecurePrefix):]
	default:
		return Origin{}, configError(fmt.Errorf("%w: %q: missing http:// or https:// prefix", ErrInvalidURL, link))
	}

	address, _, _ := strings.Cut(rest, "/")
	host, port, hasPort := strings.Cut(address, ":")
	if host == "" {
		return Origin{}, configError(fmt.Errorf("%w: %q: empty host", ErrInvalidURL, link))
	}
	o.Host = host

	if hasPort {
		p, err := strconv.Atoi(port)
		if err != nil || p < 1 || p > 65535 {
			return Origin{}, configError(fmt.Errorf("%w: %q: bad port %q", ErrInvalidURL, link, port))
		}
		o.Port = p
	}

	return o, nil
}

// Scheme returns "https" or "http".
func (o Origin) Scheme() string {
	if o.Secure {
		return "https"
	}
	return "http"
}

// String returns the canonical scheme://host:port address.
func (o Origin) String() string {
	return o.Scheme() + "://" + o.Host + ":" + strconv.Itoa(o.Port)
}
