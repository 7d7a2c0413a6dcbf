package detect

import (
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/clientdetect/pkg/apikey"
	"github.com/dmitrymomot/clientdetect/pkg/useragent"
)

const redacted = "[redacted]"

// sensitiveHeaders are echoed with their value masked.
var sensitiveHeaders = map[string]struct{}{
	http.CanonicalHeaderKey(apikey.HeaderName): {},
	"Authorization":       {},
	"Proxy-Authorization": {},
	"Cookie":              {},
}

// Record is the metadata assembled for one request.
type Record struct {
	Timestamp      float64              `json:"timestamp"`
	IPAddress      string               `json:"ip_address"`
	UserAgentInfo  useragent.Facets     `json:"user_agent_info"`
	RequestMethod  string               `json:"request_method"`
	RequestURL     string               `json:"request_url"`
	RequestPath    string               `json:"request_path"`
	RequestHeaders map[string]string    `json:"request_headers"`
	QueryParams    map[string]string    `json:"query_params"`
	ContentType    string               `json:"content_type,omitempty"`
	ContentLength  *int64               `json:"content_length,omitempty"`
	RemotePort     string               `json:"remote_port,omitempty"`
	ServerProtocol string               `json:"server_protocol"`
	ServerName     string               `json:"server_name"`
	ServerPort     string               `json:"server_port,omitempty"`
	Referer        string               `json:"referer,omitempty"`
	AcceptLanguage string               `json:"accept_language,omitempty"`
	AcceptEncoding string               `json:"accept_encoding,omitempty"`
	Connection     string               `json:"connection,omitempty"`
	CacheControl   string               `json:"cache_control,omitempty"`
	UserAgentRaw   string               `json:"user_agent_raw"`
	ClientType     useragent.ClientType `json:"client_type"`
}

// buildRecord extracts everything about r that does not require a lookup.
// requestURL is the absolute URL the fingerprint was computed over; the copy
// kept in the record has the api_key parameter masked.
func buildRecord(r *http.Request, ip, requestURL string, now time.Time) Record {
	ua := r.UserAgent()
	facets, clientType := useragent.Classify(ua)
	facets.Raw = ua

	serverName, serverPort := splitHostPort(r.Host)
	if serverPort == "" {
		serverPort = localPort(r)
	}
	_, remotePort := splitHostPort(r.RemoteAddr)

	rec := Record{
		Timestamp:      unixSeconds(now),
		IPAddress:      ip,
		UserAgentInfo:  facets,
		RequestMethod:  r.Method,
		RequestURL:     redactURL(requestURL),
		RequestPath:    r.URL.Path,
		RequestHeaders: flattenHeaders(r.Header),
		QueryParams:    flattenQuery(r),
		ContentType:    r.Header.Get("Content-Type"),
		RemotePort:     remotePort,
		ServerProtocol: r.Proto,
		ServerName:     serverName,
		ServerPort:     serverPort,
		Referer:        r.Referer(),
		AcceptLanguage: r.Header.Get("Accept-Language"),
		AcceptEncoding: r.Header.Get("Accept-Encoding"),
		Connection:     r.Header.Get("Connection"),
		CacheControl:   r.Header.Get("Cache-Control"),
		UserAgentRaw:   ua,
		ClientType:     clientType,
	}
	if r.ContentLength >= 0 && r.Header.Get("Content-Length") != "" {
		n := r.ContentLength
		rec.ContentLength = &n
	}
	return rec
}

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for name, values := range h {
		if _, ok := sensitiveHeaders[name]; ok {
			out[name] = redacted
			continue
		}
		out[name] = strings.Join(values, ", ")
	}
	return out
}

// flattenQuery keeps the first value of each parameter, masking the API key.
func flattenQuery(r *http.Request) map[string]string {
	q := r.URL.Query()
	out := make(map[string]string, len(q))
	for name, values := range q {
		switch {
		case name == apikey.QueryParam:
			out[name] = redacted
		case len(values) > 0:
			out[name] = values[0]
		default:
			out[name] = ""
		}
	}
	return out
}

// redactURL masks every api_key value in the query of raw. The rest of the
// URL is left byte for byte as it was.
func redactURL(raw string) string {
	base, query, ok := strings.Cut(raw, "?")
	if !ok || query == "" {
		return raw
	}
	pairs := strings.Split(query, "&")
	for i, pair := range pairs {
		key, _, _ := strings.Cut(pair, "=")
		if name, err := url.QueryUnescape(key); err == nil && name == apikey.QueryParam {
			pairs[i] = key + "=" + redacted
		}
	}
	return base + "?" + strings.Join(pairs, "&")
}

func splitHostPort(hostport string) (host, port string) {
	if hostport == "" {
		return "", ""
	}
	h, p, err := net.SplitHostPort(hostport)
	if err != nil {
		return strings.Trim(hostport, "[]"), ""
	}
	return h, p
}

func localPort(r *http.Request) string {
	addr, ok := r.Context().Value(http.LocalAddrContextKey).(net.Addr)
	if !ok {
		return ""
	}
	_, port := splitHostPort(addr.String())
	return port
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
